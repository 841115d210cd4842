package ports

import "github.com/aexy/console-state/internal/core/domain"

// PreferenceService exposes the persisted local preferences. The resolved
// theme is derived, never stored.
type PreferenceService interface {
	Theme() domain.Theme
	SetTheme(t domain.Theme) error
	ResolvedTheme() domain.ColorScheme
	SidebarLayout() domain.SidebarLayout
	SetSidebarLayout(l domain.SidebarLayout) error
}
