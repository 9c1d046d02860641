package models

// Role names seeded at startup. The first account registered into an empty
// store receives RoleElevated in addition to RoleStandard.
const (
	RoleStandard = "USER"
	RoleElevated = "ADMIN"
)

type Role struct {
	ID   int64
	Name string
}

type Account struct {
	ID           int64
	FirstName    string
	LastName     string
	DateOfBirth  string // dd/MM/yyyy, calendar-ordered via to_date in queries
	PhoneNumber  string
	Email        string // unique across all accounts
	PasswordHash string
	RegisterDate string
	Country      string
	Currency     string
	City         string
	Roles        []Role
}

// RoleNames returns the names of all roles held by the account.
func (a *Account) RoleNames() []string {
	names := make([]string, 0, len(a.Roles))
	for _, r := range a.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasElevatedRole reports whether the role set contains the elevated role.
// This is the whole of the authorization policy: two fixed roles, matched
// by name.
func HasElevatedRole(roles []Role) bool {
	for _, r := range roles {
		if r.Name == RoleElevated {
			return true
		}
	}
	return false
}
