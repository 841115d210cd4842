package ports

import (
	"context"

	"github.com/aexy/console-state/internal/core/domain"
)

// SessionService owns the cached authenticated identity.
type SessionService interface {
	// CurrentSession returns the session, or nil when no token is stored,
	// the backend rejected the token, or the fetch failed. A fetch
	// failure always wins over a previously cached session.
	CurrentSession(ctx context.Context) (*domain.Session, error)

	// IsAuthenticated reports whether a session is currently available.
	// It never errors: every failure mode evaluates to false.
	IsAuthenticated(ctx context.Context) bool

	// SetToken durably persists the credential before invalidating the
	// cache, so a concurrent refetch observes the new token.
	SetToken(token string) error

	// Logout removes the token, clears the entire query cache, and
	// navigates to the unauthenticated landing route, in that order.
	Logout(ctx context.Context) error
}
