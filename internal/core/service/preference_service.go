package service

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/core/ports"
)

// PreferenceService owns the persisted local preferences: the theme
// (with its derived resolved scheme) and the sidebar layout. Only the
// theme enum and the layout are persisted; the resolved scheme is
// recomputed from the stored preference and the live system signal.
type PreferenceService struct {
	store   ports.SettingsStore
	signal  ports.ColorSchemeSignal
	applier ports.ThemeApplier
	log     zerolog.Logger

	mu          sync.Mutex
	applied     bool
	lastApplied domain.ColorScheme
}

func NewPreferenceService(
	store ports.SettingsStore,
	signal ports.ColorSchemeSignal,
	applier ports.ThemeApplier,
	log zerolog.Logger,
) *PreferenceService {
	return &PreferenceService{store: store, signal: signal, applier: applier, log: log}
}

// Start applies the current resolved theme and subscribes to system
// scheme changes. The returned stop function tears the subscription down;
// callers must invoke it so change listeners do not leak.
func (s *PreferenceService) Start() (stop func()) {
	s.applyResolved()
	return s.signal.Subscribe(func(domain.ColorScheme) {
		s.applyResolved()
	})
}

func (s *PreferenceService) Theme() domain.Theme {
	v, ok := s.store.Get(ports.KeyTheme)
	if !ok {
		return domain.ThemeSystem
	}
	return domain.ParseTheme(v)
}

func (s *PreferenceService) SetTheme(t domain.Theme) error {
	switch t {
	case domain.ThemeDark, domain.ThemeLight, domain.ThemeSystem:
	default:
		return domain.ErrInvalidTheme
	}
	if err := s.store.Set(ports.KeyTheme, string(t)); err != nil {
		return err
	}
	s.applyResolved()
	return nil
}

// ResolvedTheme is always a concrete scheme: the live system scheme when
// the preference is "system", the preference itself otherwise.
func (s *PreferenceService) ResolvedTheme() domain.ColorScheme {
	return s.Theme().Resolve(s.signal.Current())
}

func (s *PreferenceService) SidebarLayout() domain.SidebarLayout {
	v, ok := s.store.Get(ports.KeySidebarLayout)
	if !ok {
		return domain.SidebarGrouped
	}
	return domain.ParseSidebarLayout(v)
}

func (s *PreferenceService) SetSidebarLayout(l domain.SidebarLayout) error {
	switch l {
	case domain.SidebarGrouped, domain.SidebarFlat:
	default:
		return domain.ErrInvalidSidebarLayout
	}
	return s.store.Set(ports.KeySidebarLayout, string(l))
}

// applyResolved pushes the resolved scheme to the applier, skipping the
// call when the value is unchanged so reapplication stays idempotent.
func (s *PreferenceService) applyResolved() {
	resolved := s.ResolvedTheme()

	s.mu.Lock()
	if s.applied && s.lastApplied == resolved {
		s.mu.Unlock()
		return
	}
	s.applied = true
	s.lastApplied = resolved
	s.mu.Unlock()

	s.applier.Apply(resolved)
	s.log.Debug().Str("scheme", string(resolved)).Msg("theme applied")
}
