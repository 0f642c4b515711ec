package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table            string
	ID               string
	Username         string
	Email            string
	Role             string
	FirstName        string
	LastName         string
	Bio              string
	ConfirmationCode string
	IsStaff          string
	IsSuperuser      string
	CreatedAt        string
	UpdatedAt        string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:            "users.account",
	ID:               "id",
	Username:         "username",
	Email:            "email",
	Role:             "role",
	FirstName:        "firstname",
	LastName:         "lastname",
	Bio:              "bio",
	ConfirmationCode: "confirmationcode",
	IsStaff:          "isstaff",
	IsSuperuser:      "issuperuser",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Role, t.FirstName, t.LastName, t.Bio,
		t.ConfirmationCode, t.IsStaff, t.IsSuperuser, t.CreatedAt, t.UpdatedAt,
	}
}
