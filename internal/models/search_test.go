package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSearchField_KnownSelectors(t *testing.T) {
	cases := map[string]SearchField{
		"firstName":   SearchByFirstName,
		"lastName":    SearchByLastName,
		"phoneNumber": SearchByPhoneNumber,
		"email":       SearchByEmail,
	}

	for raw, want := range cases {
		field, err := ParseSearchField(raw)
		assert.NoError(t, err)
		assert.Equal(t, want, field)
	}
}

func TestParseSearchField_UnknownSelector(t *testing.T) {
	_, err := ParseSearchField("INVALID_OPTION")

	assert.ErrorIs(t, err, ErrMissingParameter)
}

func TestParseSearchField_EmptySelector(t *testing.T) {
	_, err := ParseSearchField("")

	assert.ErrorIs(t, err, ErrMissingParameter)
}

func TestParseSearchField_CaseSensitive(t *testing.T) {
	_, err := ParseSearchField("FIRSTNAME")

	assert.ErrorIs(t, err, ErrMissingParameter)
}
