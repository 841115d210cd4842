package ports

import (
	"context"

	"github.com/aexy/console-state/internal/core/domain"
)

// DashboardService aggregates the remotely owned preference document with
// preset defaults and exposes its mutation operations. Mutations round-trip
// through the backend before local state changes; the cache is invalidated
// only after the remote write succeeds.
type DashboardService interface {
	Preferences(ctx context.Context) (domain.DashboardPreferences, error)
	SetPreset(ctx context.Context, preset string) error
	ToggleWidget(ctx context.Context, widgetID string) error
	ResetToPreset(ctx context.Context, preset string) error
}
