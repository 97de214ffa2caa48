package schema

// TitleTable represents the 'titles' table
type TitleTable struct {
	Table       string
	ID          string
	Name        string
	Year        string
	Description string
	CategoryID  string
}

// Title is the schema definition for titles
var Title = TitleTable{
	Table:       "titles",
	ID:          "id",
	Name:        "name",
	Year:        "year",
	Description: "description",
	CategoryID:  "category_id",
}

func (t TitleTable) Columns() []string {
	return []string{t.ID, t.Name, t.Year, t.Description, t.CategoryID}
}

// TitleGenreTable represents the 'title_genres' join table
type TitleGenreTable struct {
	Table   string
	ID      string
	TitleID string
	GenreID string
}

// TitleGenre is the schema definition for title_genres
var TitleGenre = TitleGenreTable{
	Table:   "title_genres",
	ID:      "id",
	TitleID: "title_id",
	GenreID: "genre_id",
}
