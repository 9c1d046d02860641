package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ivstoyanov/rolodex/internal/auth"
	"github.com/ivstoyanov/rolodex/internal/dates"
	"github.com/ivstoyanov/rolodex/internal/geo"
	"github.com/ivstoyanov/rolodex/internal/models"
	pkgauth "github.com/ivstoyanov/rolodex/pkg/auth"
	pkglogger "github.com/ivstoyanov/rolodex/pkg/logger"
)

var (
	// ErrEmailTaken is reported as a plain message at the boundary, not as
	// a typed conflict.
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrPasswordPolicy rejects secrets below the minimum length.
	ErrPasswordPolicy = errors.New("password does not meet the minimum length requirement")

	// ErrInvalidDate rejects dates of birth that parse in neither accepted
	// layout.
	ErrInvalidDate = errors.New("date of birth must be dd/MM/yyyy or yyyy-MM-dd")
)

// Locator resolves a client IP to its locale for registration enrichment.
type Locator interface {
	Locate(ctx context.Context, ip string) (geo.Location, error)
}

// EmailSender delivers the post-registration welcome email.
type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, email, firstName string) error
}

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	PhoneNumber string
	Email       string
	Password    string
	ClientIP    string
}

// LoginView is the auth view returned on successful login.
type LoginView struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required"`
	FirstName string   `json:"firstName" validate:"required"`
	Roles     []string `json:"roles" validate:"required,min=1"`
}

// AuthService handles registration and login.
type AuthService struct {
	accounts    AccountRepository
	roles       RoleRepository
	credentials *CredentialValidator
	projections *ProjectionValidator
	locator     Locator
	email       EmailSender
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

func NewAuthService(accounts AccountRepository, roles RoleRepository, credentials *CredentialValidator, projections *ProjectionValidator, locator Locator, email EmailSender, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		accounts:    accounts,
		roles:       roles,
		credentials: credentials,
		projections: projections,
		locator:     locator,
		email:       email,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// normalizeDateOfBirth accepts the stored dd/MM/yyyy layout or an ISO date
// and always returns dd/MM/yyyy.
func normalizeDateOfBirth(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	if t, err := dates.ParseISODate(raw); err == nil {
		return dates.FormatDate(t), nil
	}
	if _, err := dates.ParseDate(raw); err == nil {
		return raw, nil
	}

	return "", ErrInvalidDate
}

// Register creates a new account with the standard role. The first account
// in an empty store additionally receives the elevated role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AccountDetails, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, models.ErrMissingParameter
	}

	if err := pkgauth.ValidatePassword(input.Password); err != nil {
		return nil, ErrPasswordPolicy
	}

	dateOfBirth, err := normalizeDateOfBirth(input.DateOfBirth)
	if err != nil {
		return nil, err
	}

	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to check email availability", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := pkgauth.HashPassword(input.Password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	location, err := s.locator.Locate(ctx, input.ClientIP)
	if err != nil {
		s.logger.Warn("registration continues without locale data", slog.Any("error", err))
	}

	roleIDs, err := s.assignableRoles(ctx)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		DateOfBirth:  dateOfBirth,
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		Email:        email,
		PasswordHash: hash,
		RegisterDate: dates.FormatTimestamp(time.Now()),
		Country:      location.Country,
		Currency:     location.Currency,
		City:         location.City,
	}

	created, err := s.accounts.Create(ctx, account, roleIDs)
	if err != nil {
		if errors.Is(err, models.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("failed to create account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.Log(pkglogger.AuditEvent{
		EventType: "account_registered",
		Actor:     pkglogger.SanitizedEmail(created.Email),
		Success:   true,
	})

	if s.email != nil {
		go s.sendWelcomeEmail(created.Email, created.FirstName)
	}

	view := projectAccount(created)
	if !s.projections.IsValid(view) {
		s.logger.Error("created account fails projection validation",
			slog.Int64("account_id", created.ID))
		return nil, models.ErrDataValidation
	}

	return &view, nil
}

// assignableRoles returns the standard role, plus the elevated role when the
// store has no accounts yet.
func (s *AuthService) assignableRoles(ctx context.Context) ([]int64, error) {
	standard, err := s.roles.GetByName(ctx, models.RoleStandard)
	if err != nil {
		s.logger.Error("failed to load standard role", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	roleIDs := []int64{standard.ID}

	count, err := s.accounts.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count accounts", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if count == 0 {
		elevated, err := s.roles.GetByName(ctx, models.RoleElevated)
		if err != nil {
			s.logger.Error("failed to load elevated role", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		roleIDs = append(roleIDs, elevated.ID)
	}

	return roleIDs, nil
}

func (s *AuthService) sendWelcomeEmail(email, firstName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.email.SendWelcomeEmail(ctx, email, firstName); err != nil {
		s.logger.Warn("failed to send welcome email", slog.Any("error", err))
	}
}

// Login validates the credentials and returns the auth view.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginView, error) {
	account, err := s.credentials.Validate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	principal := auth.NewPrincipal(account)

	view := &LoginView{
		Email:     account.Email,
		Password:  password,
		FirstName: account.FirstName,
		Roles:     account.RoleNames(),
	}
	if !s.projections.IsValid(view) {
		s.logger.Error("login view fails projection validation",
			slog.Int64("account_id", account.ID))
		return nil, models.ErrDataValidation
	}

	s.auditLogger.Log(pkglogger.AuditEvent{
		EventType: "login",
		SessionID: principal.SessionID.String(),
		Actor:     pkglogger.SanitizedEmail(account.Email),
		Success:   true,
	})

	return view, nil
}
