// Package auth carries the per-request security context: an explicit
// context value threaded through calls instead of mutable ambient state.
package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/ivstoyanov/rolodex/internal/models"
)

type contextKey struct{}

var principalKey contextKey

// Principal is the acting account resolved from per-call credentials. The
// SessionID exists only for log correlation; it carries no authority.
type Principal struct {
	AccountID int64
	Email     string
	Roles     []string
	SessionID uuid.UUID
}

// NewPrincipal builds a Principal for a validated account.
func NewPrincipal(account *models.Account) *Principal {
	return &Principal{
		AccountID: account.ID,
		Email:     account.Email,
		Roles:     account.RoleNames(),
		SessionID: uuid.New(),
	}
}

// WithPrincipal attaches the principal to the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext returns the principal attached to the context, or nil.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}

// Clear returns a context with no principal. Logout uses this instead of
// mutating any shared security state.
func Clear(ctx context.Context) context.Context {
	return context.WithValue(ctx, principalKey, (*Principal)(nil))
}
