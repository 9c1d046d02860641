package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ivstoyanov/rolodex/internal/auth"
	"github.com/ivstoyanov/rolodex/internal/models"
	pkgauth "github.com/ivstoyanov/rolodex/pkg/auth"
	pkglogger "github.com/ivstoyanov/rolodex/pkg/logger"
)

// EditPatch is a partial update. A nil-equivalent field (blank after
// trimming) leaves the stored value unchanged.
type EditPatch struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// CredentialUpdateView echoes back whichever credential-bearing fields the
// patch actually supplied, plus the target's full role-name set.
type CredentialUpdateView struct {
	Email     string   `json:"email,omitempty"`
	Password  string   `json:"password,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	Roles     []string `json:"roles"`
}

// AccountService carries the mutating operations: delete, logout and
// partial edit.
type AccountService struct {
	accounts    AccountRepository
	credentials *CredentialValidator
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

func NewAccountService(accounts AccountRepository, credentials *CredentialValidator, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AccountService {
	return &AccountService{
		accounts:    accounts,
		credentials: credentials,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// Delete removes the target account. Only an elevated caller may delete,
// and only a non-elevated target may be deleted, so elevated accounts are
// protected from each other.
func (s *AccountService) Delete(ctx context.Context, callerEmail, callerPassword, targetEmail string) error {
	caller, err := s.credentials.Validate(ctx, callerEmail, callerPassword)
	if err != nil {
		return err
	}

	principal := auth.NewPrincipal(caller)
	ctx = auth.WithPrincipal(ctx, principal)

	target, err := s.accounts.GetByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to look up delete target", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if !models.HasElevatedRole(caller.Roles) || models.HasElevatedRole(target.Roles) {
		s.auditLogger.Log(pkglogger.AuditEvent{
			EventType:     "account_delete_denied",
			SessionID:     principal.SessionID.String(),
			Actor:         pkglogger.SanitizedEmail(caller.Email),
			Target:        pkglogger.SanitizedEmail(target.Email),
			FailureReason: "role_policy",
			Success:       false,
		})
		return models.ErrAccessDenied
	}

	if err := s.accounts.Delete(ctx, target.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete account", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.auditLogger.Log(pkglogger.AuditEvent{
		EventType: "account_deleted",
		SessionID: principal.SessionID.String(),
		Actor:     pkglogger.SanitizedEmail(caller.Email),
		Target:    pkglogger.SanitizedEmail(target.Email),
		Success:   true,
	})

	return nil
}

// Logout validates the caller and returns a context with the security
// principal cleared. There is no server-side session state to tear down.
func (s *AccountService) Logout(ctx context.Context, callerEmail, callerPassword string) (context.Context, error) {
	caller, err := s.credentials.Validate(ctx, callerEmail, callerPassword)
	if err != nil {
		return ctx, err
	}

	principal := auth.NewPrincipal(caller)
	ctx = auth.WithPrincipal(ctx, principal)

	s.auditLogger.Log(pkglogger.AuditEvent{
		EventType: "logout",
		SessionID: principal.SessionID.String(),
		Actor:     pkglogger.SanitizedEmail(caller.Email),
		Success:   true,
	})

	return auth.Clear(ctx), nil
}

// EditDetails applies a partial update to the caller's own record. The
// check ordering below is load-bearing: the email-uniqueness check runs
// between the target lookup attempt and the not-found check, so a conflict
// on the new email masks a missing target. Callers depend on that ordering.
func (s *AccountService) EditDetails(ctx context.Context, callerEmail, callerPassword, targetEmail string, patch EditPatch) (*CredentialUpdateView, error) {
	caller, err := s.credentials.Validate(ctx, callerEmail, callerPassword)
	if err != nil {
		return nil, err
	}

	principal := auth.NewPrincipal(caller)
	ctx = auth.WithPrincipal(ctx, principal)

	target, lookupErr := s.accounts.GetByEmail(ctx, targetEmail)
	if lookupErr != nil && !errors.Is(lookupErr, models.ErrNotFound) {
		s.logger.Error("failed to look up edit target", slog.Any("error", lookupErr))
		return nil, models.ErrInternalServer
	}

	newEmail := strings.TrimSpace(patch.Email)
	if newEmail != "" && newEmail != targetEmail {
		exists, err := s.accounts.ExistsByEmail(ctx, newEmail)
		if err != nil {
			s.logger.Error("failed to check email availability", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		if exists {
			return nil, models.ErrAlreadyExists
		}
	}

	if target == nil {
		return nil, models.ErrNotFound
	}

	if caller.Email != target.Email {
		s.auditLogger.Log(pkglogger.AuditEvent{
			EventType:     "account_edit_denied",
			SessionID:     principal.SessionID.String(),
			Actor:         pkglogger.SanitizedEmail(caller.Email),
			Target:        pkglogger.SanitizedEmail(target.Email),
			FailureReason: "self_only",
			Success:       false,
		})
		return nil, models.ErrAccessDenied
	}

	if name := strings.TrimSpace(patch.FirstName); name != "" {
		target.FirstName = name
	}
	if name := strings.TrimSpace(patch.LastName); name != "" {
		target.LastName = name
	}
	if newEmail != "" {
		target.Email = newEmail
	}
	if phone := strings.TrimSpace(patch.PhoneNumber); phone != "" {
		target.PhoneNumber = phone
	}

	newPassword := strings.TrimSpace(patch.Password)
	if newPassword != "" {
		hash, err := pkgauth.HashPassword(newPassword)
		if err != nil {
			s.logger.Error("failed to hash password", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		target.PasswordHash = hash
	}

	updated, err := s.accounts.Update(ctx, target)
	if err != nil {
		if errors.Is(err, models.ErrAlreadyExists) {
			return nil, models.ErrAlreadyExists
		}
		s.logger.Error("failed to update account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.Log(pkglogger.AuditEvent{
		EventType: "account_edited",
		SessionID: principal.SessionID.String(),
		Actor:     pkglogger.SanitizedEmail(caller.Email),
		Target:    pkglogger.SanitizedEmail(updated.Email),
		Success:   true,
	})

	view := &CredentialUpdateView{Roles: updated.RoleNames()}
	if newEmail != "" {
		view.Email = newEmail
	}
	if newPassword != "" {
		view.Password = newPassword
	}
	if name := strings.TrimSpace(patch.FirstName); name != "" {
		view.FirstName = name
	}

	return view, nil
}
