package handlers

import (
	"context"

	"github.com/ivstoyanov/rolodex/internal/models"
	"github.com/ivstoyanov/rolodex/internal/services"
)

// StubDirectoryService implements DirectoryServiceInterface for testing
type StubDirectoryService struct {
	ListDefaultFunc func(ctx context.Context, callerEmail, callerPassword string, page *models.PageRequest) (*models.Page[services.AccountDetails], error)
	ListSortedFunc  func(ctx context.Context, callerEmail, callerPassword string, page *models.PageRequest) (*models.Page[services.AccountDetails], error)
	SearchFunc      func(ctx context.Context, callerEmail, callerPassword, rawField, value string, page *models.PageRequest) (*models.Page[services.AccountDetails], error)
	GetOneFunc      func(ctx context.Context, callerEmail, callerPassword, targetEmail string) (*services.AccountDetails, error)
}

func (s *StubDirectoryService) ListDefault(ctx context.Context, callerEmail, callerPassword string, page *models.PageRequest) (*models.Page[services.AccountDetails], error) {
	if s.ListDefaultFunc != nil {
		return s.ListDefaultFunc(ctx, callerEmail, callerPassword, page)
	}
	return models.NewPage([]services.AccountDetails{}, page, 0), nil
}

func (s *StubDirectoryService) ListSorted(ctx context.Context, callerEmail, callerPassword string, page *models.PageRequest) (*models.Page[services.AccountDetails], error) {
	if s.ListSortedFunc != nil {
		return s.ListSortedFunc(ctx, callerEmail, callerPassword, page)
	}
	return models.NewPage([]services.AccountDetails{}, page, 0), nil
}

func (s *StubDirectoryService) Search(ctx context.Context, callerEmail, callerPassword, rawField, value string, page *models.PageRequest) (*models.Page[services.AccountDetails], error) {
	if s.SearchFunc != nil {
		return s.SearchFunc(ctx, callerEmail, callerPassword, rawField, value, page)
	}
	return models.NewPage([]services.AccountDetails{}, page, 0), nil
}

func (s *StubDirectoryService) GetOne(ctx context.Context, callerEmail, callerPassword, targetEmail string) (*services.AccountDetails, error) {
	if s.GetOneFunc != nil {
		return s.GetOneFunc(ctx, callerEmail, callerPassword, targetEmail)
	}
	return nil, models.ErrNotFound
}

// StubAccountService implements AccountServiceInterface for testing
type StubAccountService struct {
	DeleteFunc      func(ctx context.Context, callerEmail, callerPassword, targetEmail string) error
	LogoutFunc      func(ctx context.Context, callerEmail, callerPassword string) (context.Context, error)
	EditDetailsFunc func(ctx context.Context, callerEmail, callerPassword, targetEmail string, patch services.EditPatch) (*services.CredentialUpdateView, error)
}

func (s *StubAccountService) Delete(ctx context.Context, callerEmail, callerPassword, targetEmail string) error {
	if s.DeleteFunc != nil {
		return s.DeleteFunc(ctx, callerEmail, callerPassword, targetEmail)
	}
	return nil
}

func (s *StubAccountService) Logout(ctx context.Context, callerEmail, callerPassword string) (context.Context, error) {
	if s.LogoutFunc != nil {
		return s.LogoutFunc(ctx, callerEmail, callerPassword)
	}
	return ctx, nil
}

func (s *StubAccountService) EditDetails(ctx context.Context, callerEmail, callerPassword, targetEmail string, patch services.EditPatch) (*services.CredentialUpdateView, error) {
	if s.EditDetailsFunc != nil {
		return s.EditDetailsFunc(ctx, callerEmail, callerPassword, targetEmail, patch)
	}
	return &services.CredentialUpdateView{Roles: []string{models.RoleStandard}}, nil
}

// StubAuthService implements AuthServiceInterface for testing
type StubAuthService struct {
	RegisterFunc func(ctx context.Context, input services.RegisterInput) (*services.AccountDetails, error)
	LoginFunc    func(ctx context.Context, email, password string) (*services.LoginView, error)
}

func (s *StubAuthService) Register(ctx context.Context, input services.RegisterInput) (*services.AccountDetails, error) {
	if s.RegisterFunc != nil {
		return s.RegisterFunc(ctx, input)
	}
	return &services.AccountDetails{}, nil
}

func (s *StubAuthService) Login(ctx context.Context, email, password string) (*services.LoginView, error) {
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, email, password)
	}
	return nil, models.ErrAccessDenied
}
