package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Bio         string
	Role        string
	IsSuperuser string
	DateJoined  string
	LastLogin   string
}

// User is the schema definition for users
var User = UserTable{
	Table:       "users",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	FirstName:   "first_name",
	LastName:    "last_name",
	Bio:         "bio",
	Role:        "role",
	IsSuperuser: "is_superuser",
	DateJoined:  "date_joined",
	LastLogin:   "last_login",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.FirstName, t.LastName, t.Bio,
		t.Role, t.IsSuperuser, t.DateJoined, t.LastLogin,
	}
}
