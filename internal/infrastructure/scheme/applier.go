package scheme

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/aexy/console-state/internal/core/domain"
)

// Applier implements ports.ThemeApplier. The sidecar has no DOM to touch;
// applying a scheme means recording it as the value the shell should
// render with, which is exposed on the theme endpoint.
type Applier struct {
	log zerolog.Logger

	mu      sync.Mutex
	current domain.ColorScheme
	applies uint64
}

func NewApplier(log zerolog.Logger) *Applier {
	return &Applier{log: log}
}

func (a *Applier) Apply(s domain.ColorScheme) {
	a.mu.Lock()
	a.current = s
	a.applies++
	a.mu.Unlock()

	a.log.Info().Str("scheme", string(s)).Msg("resolved theme applied")
}

// Current returns the last applied scheme, empty before the first apply.
func (a *Applier) Current() domain.ColorScheme {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Applies returns how many times Apply has run. Used by tests to assert
// reapplication of an unchanged value is skipped upstream.
func (a *Applier) Applies() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.applies
}
