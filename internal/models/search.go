package models

// SearchField is the closed enumeration of selectors usable to filter the
// account collection. Anything outside the four variants is rejected with
// ErrMissingParameter before a query is built.
type SearchField string

const (
	SearchByFirstName   SearchField = "firstName"
	SearchByLastName    SearchField = "lastName"
	SearchByPhoneNumber SearchField = "phoneNumber"
	SearchByEmail       SearchField = "email"
)

// ParseSearchField maps a raw selector string to a SearchField.
func ParseSearchField(s string) (SearchField, error) {
	switch SearchField(s) {
	case SearchByFirstName, SearchByLastName, SearchByPhoneNumber, SearchByEmail:
		return SearchField(s), nil
	default:
		return "", ErrMissingParameter
	}
}
