package ports

import "github.com/aexy/console-state/internal/core/domain"

// Navigator performs the navigation side effect triggered by gate
// decisions and logout. Kept separate from decision making so the state
// machine stays pure and testable.
type Navigator interface {
	Navigate(route string)
}

// ColorSchemeSignal exposes the live system color scheme. Subscribe
// registers a change listener and returns its teardown; callers must
// invoke the teardown when done to avoid leaking listeners.
type ColorSchemeSignal interface {
	Current() domain.ColorScheme
	Subscribe(fn func(domain.ColorScheme)) (cancel func())
}

// ThemeApplier applies a resolved scheme to the shell. Applying the same
// scheme repeatedly must be observably idempotent.
type ThemeApplier interface {
	Apply(scheme domain.ColorScheme)
}

// Refresher re-warms an invalidated cache entry in the background. The
// caller's mutation is already complete when the refresh runs; "mutation
// succeeded" and "cache refreshed" are separate sequential events.
type Refresher interface {
	Enqueue(key CacheKey)
}
