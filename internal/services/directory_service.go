package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ivstoyanov/rolodex/internal/auth"
	"github.com/ivstoyanov/rolodex/internal/models"
)

// DirectoryService answers the read side: default listing, sorted listing,
// field search and single-record lookup. Callers authenticate on every call.
type DirectoryService struct {
	accounts    AccountRepository
	credentials *CredentialValidator
	projections *ProjectionValidator
	logger      *slog.Logger
}

func NewDirectoryService(accounts AccountRepository, credentials *CredentialValidator, projections *ProjectionValidator, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{
		accounts:    accounts,
		credentials: credentials,
		projections: projections,
		logger:      logger,
	}
}

// project converts the stored records to outward views, rejecting the whole
// result if any record fails the required-field check.
func (s *DirectoryService) project(accounts []*models.Account) ([]AccountDetails, error) {
	details := make([]AccountDetails, 0, len(accounts))

	for _, account := range accounts {
		view := projectAccount(account)
		if !s.projections.IsValid(view) {
			s.logger.Error("stored account fails projection validation",
				slog.Int64("account_id", account.ID))
			return nil, models.ErrDataValidation
		}
		details = append(details, view)
	}

	return details, nil
}

// ListDefault returns the collection in insertion order.
func (s *DirectoryService) ListDefault(ctx context.Context, callerEmail, callerPassword string, page *models.PageRequest) (*models.Page[AccountDetails], error) {
	caller, err := s.credentials.Validate(ctx, callerEmail, callerPassword)
	if err != nil {
		return nil, err
	}
	ctx = auth.WithPrincipal(ctx, auth.NewPrincipal(caller))

	accounts, total, err := s.accounts.List(ctx, page)
	if err != nil {
		s.logger.Error("failed to list accounts", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	details, err := s.project(accounts)
	if err != nil {
		return nil, err
	}

	return models.NewPage(details, page, total), nil
}

// ListSorted returns the collection ordered by last name, then by calendar
// date of birth.
func (s *DirectoryService) ListSorted(ctx context.Context, callerEmail, callerPassword string, page *models.PageRequest) (*models.Page[AccountDetails], error) {
	caller, err := s.credentials.Validate(ctx, callerEmail, callerPassword)
	if err != nil {
		return nil, err
	}
	ctx = auth.WithPrincipal(ctx, auth.NewPrincipal(caller))

	accounts, total, err := s.accounts.ListOrderedByLastNameAndDateOfBirth(ctx, page)
	if err != nil {
		s.logger.Error("failed to list sorted accounts", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	details, err := s.project(accounts)
	if err != nil {
		return nil, err
	}

	return models.NewPage(details, page, total), nil
}

// Search filters the collection by one of the four recognized selectors. An
// unknown selector fails with ErrMissingParameter before any query runs.
func (s *DirectoryService) Search(ctx context.Context, callerEmail, callerPassword, rawField, value string, page *models.PageRequest) (*models.Page[AccountDetails], error) {
	caller, err := s.credentials.Validate(ctx, callerEmail, callerPassword)
	if err != nil {
		return nil, err
	}
	ctx = auth.WithPrincipal(ctx, auth.NewPrincipal(caller))

	field, err := models.ParseSearchField(rawField)
	if err != nil {
		return nil, err
	}

	// Phone numbers arrive with their leading "+" sometimes decoded into a
	// space and re-encoded as a literal "%20". Repair that one collision
	// here. General percent-decoding already happened at the boundary.
	if field == models.SearchByPhoneNumber {
		value = strings.ReplaceAll(value, "%20", "+")
	}

	accounts, total, err := s.accounts.ListByField(ctx, field, value, page)
	if err != nil {
		if errors.Is(err, models.ErrMissingParameter) {
			return nil, err
		}
		s.logger.Error("failed to search accounts",
			slog.String("field", string(field)),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	details, err := s.project(accounts)
	if err != nil {
		return nil, err
	}

	return models.NewPage(details, page, total), nil
}

// GetOne returns the single account identified by targetEmail.
func (s *DirectoryService) GetOne(ctx context.Context, callerEmail, callerPassword, targetEmail string) (*AccountDetails, error) {
	caller, err := s.credentials.Validate(ctx, callerEmail, callerPassword)
	if err != nil {
		return nil, err
	}
	ctx = auth.WithPrincipal(ctx, auth.NewPrincipal(caller))

	account, err := s.accounts.GetByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	view := projectAccount(account)
	if !s.projections.IsValid(view) {
		s.logger.Error("stored account fails projection validation",
			slog.Int64("account_id", account.ID))
		return nil, models.ErrDataValidation
	}

	return &view, nil
}
