package ports

import (
	"context"

	"github.com/aexy/console-state/internal/core/domain"
)

// BackendClient talks to the remote console API. Every call carries the
// bearer token explicitly; the client holds no credential state.
type BackendClient interface {
	// FetchIdentity returns the session for the token, or
	// domain.ErrUnauthenticated when the backend rejects it.
	FetchIdentity(ctx context.Context, token string) (*domain.Session, error)

	// FetchAdminCheck returns whether the token's user is an admin.
	FetchAdminCheck(ctx context.Context, token string) (bool, error)

	// FetchAppAccess returns whether the token's user may open appID.
	FetchAppAccess(ctx context.Context, token, appID string) (bool, error)

	// FetchDashboardPreferences returns the stored preference document,
	// or domain.ErrPreferencesNotFound for a new user.
	FetchDashboardPreferences(ctx context.Context, token string) (*domain.DashboardPreferences, error)

	// UpdateDashboardPreferences applies a partial update. Rejected
	// writes surface as domain.ErrWriteRejected.
	UpdateDashboardPreferences(ctx context.Context, token string, patch DashboardPatch) error
}

// DashboardPatch is a partial update of the preference document. Nil
// fields serialise as null and are left untouched by the backend; an
// empty (non-nil) widget list deliberately clears it.
type DashboardPatch struct {
	PresetType     *string           `json:"preset_type,omitempty"`
	VisibleWidgets []string          `json:"visible_widgets"`
	WidgetSizes    map[string]string `json:"widget_sizes"`
	Layout         map[string]any    `json:"layout,omitempty"`
	ClearLayout    bool              `json:"clear_layout,omitempty"`
}
