package services

import (
	"sync"
	"testing"

	"github.com/ivstoyanov/rolodex/internal/models"
	pkgauth "github.com/ivstoyanov/rolodex/pkg/auth"
)

var (
	hashCache   = map[string]string{}
	hashCacheMu sync.Mutex
)

// mustHash hashes a password, caching results so repeated bcrypt runs do not
// slow the suite down.
func mustHash(t *testing.T, password string) string {
	t.Helper()

	hashCacheMu.Lock()
	defer hashCacheMu.Unlock()

	if hash, ok := hashCache[password]; ok {
		return hash
	}

	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	hashCache[password] = hash
	return hash
}

// newTestAccount builds a fully populated account that passes projection
// validation.
func newTestAccount(t *testing.T, id int64, email, password string, roles ...models.Role) *models.Account {
	t.Helper()

	if len(roles) == 0 {
		roles = []models.Role{{ID: 1, Name: models.RoleStandard}}
	}

	return &models.Account{
		ID:           id,
		FirstName:    "Ivan",
		LastName:     "Petrov",
		DateOfBirth:  "15/03/1990",
		PhoneNumber:  "+359881234567",
		Email:        email,
		PasswordHash: mustHash(t, password),
		RegisterDate: "01/06/2024 10:30",
		Country:      "Bulgaria",
		Currency:     "BGN",
		City:         "Sofia",
		Roles:        roles,
	}
}
