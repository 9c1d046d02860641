package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/ivstoyanov/rolodex/internal/geo"
	"github.com/ivstoyanov/rolodex/internal/models"
	pkglogger "github.com/ivstoyanov/rolodex/pkg/logger"
)

// MockAccountRepository implements AccountRepository for testing
type MockAccountRepository struct {
	GetByEmailFunc                          func(ctx context.Context, email string) (*models.Account, error)
	ExistsByEmailFunc                       func(ctx context.Context, email string) (bool, error)
	ListFunc                                func(ctx context.Context, page *models.PageRequest) ([]*models.Account, int64, error)
	ListOrderedByLastNameAndDateOfBirthFunc func(ctx context.Context, page *models.PageRequest) ([]*models.Account, int64, error)
	ListByFieldFunc                         func(ctx context.Context, field models.SearchField, value string, page *models.PageRequest) ([]*models.Account, int64, error)
	CreateFunc                              func(ctx context.Context, account *models.Account, roleIDs []int64) (*models.Account, error)
	UpdateFunc                              func(ctx context.Context, account *models.Account) (*models.Account, error)
	DeleteFunc                              func(ctx context.Context, id int64) error
	CountFunc                               func(ctx context.Context) (int64, error)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockAccountRepository) List(ctx context.Context, page *models.PageRequest) ([]*models.Account, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page)
	}
	return []*models.Account{}, 0, nil
}

func (m *MockAccountRepository) ListOrderedByLastNameAndDateOfBirth(ctx context.Context, page *models.PageRequest) ([]*models.Account, int64, error) {
	if m.ListOrderedByLastNameAndDateOfBirthFunc != nil {
		return m.ListOrderedByLastNameAndDateOfBirthFunc(ctx, page)
	}
	return []*models.Account{}, 0, nil
}

func (m *MockAccountRepository) ListByField(ctx context.Context, field models.SearchField, value string, page *models.PageRequest) ([]*models.Account, int64, error) {
	if m.ListByFieldFunc != nil {
		return m.ListByFieldFunc(ctx, field, value, page)
	}
	return []*models.Account{}, 0, nil
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account, roleIDs []int64) (*models.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account, roleIDs)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAccountRepository) Update(ctx context.Context, account *models.Account) (*models.Account, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAccountRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAccountRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockRoleRepository implements RoleRepository for testing
type MockRoleRepository struct {
	GetByNameFunc func(ctx context.Context, name string) (*models.Role, error)
	CountFunc     func(ctx context.Context) (int64, error)
}

func (m *MockRoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	switch name {
	case models.RoleStandard:
		return &models.Role{ID: 1, Name: models.RoleStandard}, nil
	case models.RoleElevated:
		return &models.Role{ID: 2, Name: models.RoleElevated}, nil
	}
	return nil, models.ErrNotFound
}

func (m *MockRoleRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 2, nil
}

// MockLocator implements Locator for testing
type MockLocator struct {
	LocateFunc func(ctx context.Context, ip string) (geo.Location, error)
}

func (m *MockLocator) Locate(ctx context.Context, ip string) (geo.Location, error) {
	if m.LocateFunc != nil {
		return m.LocateFunc(ctx, ip)
	}
	return geo.Location{Country: "Bulgaria", City: "Sofia", Currency: "BGN"}, nil
}

// MockEmailSender implements EmailSender for testing
type MockEmailSender struct {
	SendWelcomeEmailFunc func(ctx context.Context, email, firstName string) error
}

func (m *MockEmailSender) SendWelcomeEmail(ctx context.Context, email, firstName string) error {
	if m.SendWelcomeEmailFunc != nil {
		return m.SendWelcomeEmailFunc(ctx, email, firstName)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func discardAuditLogger() *pkglogger.AuditLogger {
	return pkglogger.NewAuditLogger(discardLogger())
}

func newCredentialValidator(accounts AccountRepository) *CredentialValidator {
	return NewCredentialValidator(accounts, discardLogger(), discardAuditLogger())
}
