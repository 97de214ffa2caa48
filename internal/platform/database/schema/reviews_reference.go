package schema

// ReferenceTable describes the shape shared by 'categories' and 'genres'
type ReferenceTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// Category is the schema definition for categories
var Category = ReferenceTable{
	Table: "categories",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

// Genre is the schema definition for genres
var Genre = ReferenceTable{
	Table: "genres",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

func (t ReferenceTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug}
}
