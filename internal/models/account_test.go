package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasElevatedRole_ElevatedPresent(t *testing.T) {
	roles := []Role{
		{ID: 1, Name: RoleStandard},
		{ID: 2, Name: RoleElevated},
	}

	assert.True(t, HasElevatedRole(roles))
}

func TestHasElevatedRole_StandardOnly(t *testing.T) {
	roles := []Role{{ID: 1, Name: RoleStandard}}

	assert.False(t, HasElevatedRole(roles))
}

func TestHasElevatedRole_EmptySet(t *testing.T) {
	assert.False(t, HasElevatedRole(nil))
	assert.False(t, HasElevatedRole([]Role{}))
}

func TestHasElevatedRole_MatchesByNameNotID(t *testing.T) {
	// The policy matches by name; the row id carries no meaning.
	roles := []Role{{ID: 99, Name: RoleElevated}}

	assert.True(t, HasElevatedRole(roles))
}

func TestAccount_RoleNames(t *testing.T) {
	account := &Account{
		Roles: []Role{
			{ID: 1, Name: RoleStandard},
			{ID: 2, Name: RoleElevated},
		},
	}

	assert.Equal(t, []string{RoleStandard, RoleElevated}, account.RoleNames())
}

func TestAccount_RoleNames_Empty(t *testing.T) {
	account := &Account{}

	assert.Empty(t, account.RoleNames())
}
