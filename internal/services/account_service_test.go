package services

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivstoyanov/rolodex/internal/auth"
	"github.com/ivstoyanov/rolodex/internal/models"
	pkgauth "github.com/ivstoyanov/rolodex/pkg/auth"
	pkglogger "github.com/ivstoyanov/rolodex/pkg/logger"
)

func newAccountService(repo *MockAccountRepository) *AccountService {
	return NewAccountService(repo, newCredentialValidator(repo), discardLogger(), discardAuditLogger())
}

func elevatedRoles() []models.Role {
	return []models.Role{
		{ID: 1, Name: models.RoleStandard},
		{ID: 2, Name: models.RoleElevated},
	}
}

func TestDeleteElevatedCallerStandardTarget(t *testing.T) {
	caller := newTestAccount(t, 1, "admin@example.com", "password123", elevatedRoles()...)
	target := newTestAccount(t, 2, "ivan@example.com", "password123")

	var deletedID int64
	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller, target),
		DeleteFunc: func(ctx context.Context, id int64) error {
			deletedID = id
			return nil
		},
	}

	service := newAccountService(repo)

	err := service.Delete(context.Background(), "admin@example.com", "password123", "ivan@example.com")
	require.NoError(t, err)
	assert.Equal(t, target.ID, deletedID)
}

func TestDeleteRolePolicyMatrix(t *testing.T) {
	admin := newTestAccount(t, 1, "admin@example.com", "password123", elevatedRoles()...)
	otherAdmin := newTestAccount(t, 2, "root@example.com", "password123", elevatedRoles()...)
	standard := newTestAccount(t, 3, "ivan@example.com", "password123")
	otherStandard := newTestAccount(t, 4, "maria@example.com", "password123")

	tests := []struct {
		name   string
		caller *models.Account
		target *models.Account
	}{
		{"elevated caller, elevated target", admin, otherAdmin},
		{"standard caller, standard target", standard, otherStandard},
		{"standard caller, elevated target", standard, admin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockAccountRepository{
				GetByEmailFunc: withCaller(tt.caller, tt.target),
				DeleteFunc: func(ctx context.Context, id int64) error {
					t.Fatal("delete must not reach the repository")
					return nil
				},
			}

			service := newAccountService(repo)

			err := service.Delete(context.Background(), tt.caller.Email, "password123", tt.target.Email)
			assert.ErrorIs(t, err, models.ErrAccessDenied)
		})
	}
}

func TestDeleteRunsUnderCallerPrincipal(t *testing.T) {
	caller := newTestAccount(t, 1, "admin@example.com", "password123", elevatedRoles()...)
	target := newTestAccount(t, 2, "ivan@example.com", "password123")

	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller, target),
		DeleteFunc: func(ctx context.Context, id int64) error {
			principal := auth.FromContext(ctx)
			require.NotNil(t, principal)
			assert.Equal(t, caller.ID, principal.AccountID)
			assert.Equal(t, caller.Email, principal.Email)
			assert.NotEqual(t, uuid.Nil, principal.SessionID)
			return nil
		},
	}

	service := newAccountService(repo)

	err := service.Delete(context.Background(), "admin@example.com", "password123", "ivan@example.com")
	require.NoError(t, err)
}

func TestDeleteAuditRecordsSessionID(t *testing.T) {
	caller := newTestAccount(t, 1, "admin@example.com", "password123", elevatedRoles()...)
	target := newTestAccount(t, 2, "ivan@example.com", "password123")

	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller, target),
	}

	var buf bytes.Buffer
	audit := pkglogger.NewAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	service := NewAccountService(repo, newCredentialValidator(repo), discardLogger(), audit)

	err := service.Delete(context.Background(), "admin@example.com", "password123", "ivan@example.com")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"event_type":"account_deleted"`)
	assert.Contains(t, buf.String(), `"session_id"`)
}

func TestDeleteTargetNotFound(t *testing.T) {
	caller := newTestAccount(t, 1, "admin@example.com", "password123", elevatedRoles()...)

	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller),
	}

	service := newAccountService(repo)

	err := service.Delete(context.Background(), "admin@example.com", "password123", "nobody@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// A blank target identifier misses the lookup like any other unknown email.
func TestDeleteBlankTargetNotFound(t *testing.T) {
	caller := newTestAccount(t, 1, "admin@example.com", "password123", elevatedRoles()...)

	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller),
	}

	service := newAccountService(repo)

	err := service.Delete(context.Background(), "admin@example.com", "password123", "")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLogoutClearsPrincipal(t *testing.T) {
	caller := newTestAccount(t, 1, "ivan@example.com", "password123")

	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller),
	}

	service := newAccountService(repo)

	ctx := auth.WithPrincipal(context.Background(), auth.NewPrincipal(caller))
	require.NotNil(t, auth.FromContext(ctx))

	cleared, err := service.Logout(ctx, "ivan@example.com", "password123")
	require.NoError(t, err)

	assert.Nil(t, auth.FromContext(cleared))
}

func TestLogoutBadCredentials(t *testing.T) {
	repo := &MockAccountRepository{}
	service := newAccountService(repo)

	_, err := service.Logout(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, models.ErrAccessDenied)
}

func TestEditDetailsSelfOnly(t *testing.T) {
	caller := newTestAccount(t, 1, "ivan@example.com", "password123")
	target := newTestAccount(t, 2, "maria@example.com", "password123")

	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller, target),
		UpdateFunc: func(ctx context.Context, account *models.Account) (*models.Account, error) {
			t.Fatal("update must not reach the repository")
			return nil, nil
		},
	}

	service := newAccountService(repo)

	_, err := service.EditDetails(context.Background(), "ivan@example.com", "password123", "maria@example.com", EditPatch{FirstName: "Georgi"})
	assert.ErrorIs(t, err, models.ErrAccessDenied)
}

func TestEditDetailsEmailConflict(t *testing.T) {
	caller := newTestAccount(t, 1, "ivan@example.com", "password123")

	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller),
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return email == "taken@example.com", nil
		},
	}

	service := newAccountService(repo)

	_, err := service.EditDetails(context.Background(), "ivan@example.com", "password123", "ivan@example.com", EditPatch{Email: "taken@example.com"})
	assert.ErrorIs(t, err, models.ErrAlreadyExists)
}

// The uniqueness check runs before the not-found check, so a conflicting new
// email wins over a missing target.
func TestEditDetailsConflictMasksMissingTarget(t *testing.T) {
	caller := newTestAccount(t, 1, "ivan@example.com", "password123")

	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller),
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return email == "taken@example.com", nil
		},
	}

	service := newAccountService(repo)

	_, err := service.EditDetails(context.Background(), "ivan@example.com", "password123", "ghost@example.com", EditPatch{Email: "taken@example.com"})
	assert.ErrorIs(t, err, models.ErrAlreadyExists)
}

func TestEditDetailsTargetNotFound(t *testing.T) {
	caller := newTestAccount(t, 1, "ivan@example.com", "password123")

	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller),
	}

	service := newAccountService(repo)

	_, err := service.EditDetails(context.Background(), "ivan@example.com", "password123", "ghost@example.com", EditPatch{FirstName: "Georgi"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestEditDetailsBlankTargetNotFound(t *testing.T) {
	caller := newTestAccount(t, 1, "ivan@example.com", "password123")

	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller),
	}

	service := newAccountService(repo)

	_, err := service.EditDetails(context.Background(), "ivan@example.com", "password123", "", EditPatch{FirstName: "Georgi"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestEditDetailsResubmittingOwnEmailIsNotAConflict(t *testing.T) {
	caller := newTestAccount(t, 1, "ivan@example.com", "password123")

	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller),
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			t.Fatal("existence check must be skipped for an unchanged email")
			return false, nil
		},
		UpdateFunc: func(ctx context.Context, account *models.Account) (*models.Account, error) {
			return account, nil
		},
	}

	service := newAccountService(repo)

	view, err := service.EditDetails(context.Background(), "ivan@example.com", "password123", "ivan@example.com", EditPatch{Email: "ivan@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ivan@example.com", view.Email)
}

func TestEditDetailsAllBlankPatchLeavesAccountUnchanged(t *testing.T) {
	caller := newTestAccount(t, 1, "ivan@example.com", "password123")
	original := *caller

	var saved *models.Account
	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller),
		UpdateFunc: func(ctx context.Context, account *models.Account) (*models.Account, error) {
			saved = account
			return account, nil
		},
	}

	service := newAccountService(repo)

	view, err := service.EditDetails(context.Background(), "ivan@example.com", "password123", "ivan@example.com", EditPatch{
		FirstName: "  ",
		Email:     "",
		Password:  " ",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, original.FirstName, saved.FirstName)
	assert.Equal(t, original.LastName, saved.LastName)
	assert.Equal(t, original.Email, saved.Email)
	assert.Equal(t, original.PhoneNumber, saved.PhoneNumber)
	assert.Equal(t, original.PasswordHash, saved.PasswordHash)

	assert.Empty(t, view.Email)
	assert.Empty(t, view.Password)
	assert.Empty(t, view.FirstName)
	assert.Equal(t, []string{models.RoleStandard}, view.Roles)
}

func TestEditDetailsAppliesFieldsAndRehashesPassword(t *testing.T) {
	caller := newTestAccount(t, 1, "ivan@example.com", "password123")
	oldHash := caller.PasswordHash

	var saved *models.Account
	repo := &MockAccountRepository{
		GetByEmailFunc: withCaller(caller),
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		UpdateFunc: func(ctx context.Context, account *models.Account) (*models.Account, error) {
			saved = account
			return account, nil
		},
	}

	service := newAccountService(repo)

	view, err := service.EditDetails(context.Background(), "ivan@example.com", "password123", "ivan@example.com", EditPatch{
		FirstName: "Georgi",
		Email:     "georgi@example.com",
		Password:  "newsecret",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, "Georgi", saved.FirstName)
	assert.Equal(t, "georgi@example.com", saved.Email)
	assert.NotEqual(t, oldHash, saved.PasswordHash)
	require.NoError(t, pkgauth.ComparePassword(saved.PasswordHash, "newsecret"))

	assert.Equal(t, "georgi@example.com", view.Email)
	assert.Equal(t, "newsecret", view.Password)
	assert.Equal(t, "Georgi", view.FirstName)
}
