package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ivstoyanov/rolodex/internal/models"
	pkgauth "github.com/ivstoyanov/rolodex/pkg/auth"
	pkglogger "github.com/ivstoyanov/rolodex/pkg/logger"
)

// CredentialValidator resolves a caller's email/password pair to the acting
// account. Every service entry point runs through it before doing anything
// else.
type CredentialValidator struct {
	accounts    AccountRepository
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

func NewCredentialValidator(accounts AccountRepository, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *CredentialValidator {
	return &CredentialValidator{
		accounts:    accounts,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// Validate returns the account matching the pair. An unknown email and a
// wrong password both come back as ErrAccessDenied so the caller cannot tell
// which check failed. Blank values take the same path: a blank email misses
// the lookup, a blank password fails the hash comparison.
func (v *CredentialValidator) Validate(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := v.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			v.logger.Info("credential check failed: invalid credentials")
			v.auditLogger.Log(pkglogger.AuditEvent{
				EventType:     "credential_check_failed",
				FailureReason: "invalid_credentials",
				Success:       false,
			})
			return nil, models.ErrAccessDenied
		}
		v.logger.Error("failed to look up account by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(account.PasswordHash, password); err != nil {
		v.logger.Info("credential check failed: invalid credentials")
		v.auditLogger.Log(pkglogger.AuditEvent{
			EventType:     "credential_check_failed",
			Actor:         pkglogger.SanitizedEmail(email),
			FailureReason: "invalid_credentials",
			Success:       false,
		})
		return nil, models.ErrAccessDenied
	}

	return account, nil
}
