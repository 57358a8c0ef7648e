package ports

import (
	"context"
	"time"

	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

// IdentityProvider authenticates a person and returns who they are. The role
// it reports may be empty; the resolver applies the default.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, secret string) (*domain.Principal, error)
	AuthCodeURL(provider, state string) (string, error)
	ExchangeCode(ctx context.Context, provider, code string) (*domain.Principal, error)
}

// SessionStore keeps the resolved principal for the lifetime of a session.
// Load returns domain.ErrNoSession for unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, principal domain.Principal, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (*domain.Principal, error)
	Delete(ctx context.Context, sessionID string) error
}
