package ports

import (
	"context"

	"github.com/aexy/console-state/internal/core/domain"
)

// AccessService derives authorization decisions from the session plus
// secondary role/access checks. All decisions fail closed.
type AccessService interface {
	// AdminGate runs the staged admin gate: session first, then the
	// admin check (never before the session fetch has settled), and maps
	// the outcome through the gate state machine.
	AdminGate(ctx context.Context) domain.GateDecision

	// AppGate is the per-application variant, keyed on appID and
	// redirecting to fallbackRoute (or the default landing) on denial.
	AppGate(ctx context.Context, appID, fallbackRoute string) domain.GateDecision

	// IsAdmin reports the cached admin flag for the current user.
	IsAdmin(ctx context.Context) bool

	// HasAppAccess reports the cached per-application flag.
	HasAppAccess(ctx context.Context, appID string) bool
}
