package schema

// ImportRecordTable represents the 'import_records' audit table
type ImportRecordTable struct {
	Table     string
	ID        string
	Entity    string
	FileKey   string
	RowCount  string
	DateAdded string
}

// ImportRecord is the schema definition for import_records
var ImportRecord = ImportRecordTable{
	Table:     "import_records",
	ID:        "id",
	Entity:    "entity",
	FileKey:   "file_key",
	RowCount:  "row_count",
	DateAdded: "date_added",
}
