package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/aexy/console-state/internal/api/metrics"
	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/core/ports"
)

const defaultDashboardTTL = 5 * time.Minute

// DashboardService merges the remotely owned preference document with
// preset defaults. The remote document is the source of truth; the cache
// is advisory and is invalidated only after a confirmed remote write.
type DashboardService struct {
	sessions ports.SessionService
	backend  ports.BackendClient
	cache    ports.QueryCache
	store    ports.SettingsStore
	refresh  ports.Refresher
	ttl      time.Duration
	log      zerolog.Logger
}

func NewDashboardService(
	sessions ports.SessionService,
	backend ports.BackendClient,
	cache ports.QueryCache,
	store ports.SettingsStore,
	refresh ports.Refresher,
	ttl time.Duration,
	log zerolog.Logger,
) *DashboardService {
	if ttl <= 0 {
		ttl = defaultDashboardTTL
	}
	return &DashboardService{
		sessions: sessions,
		backend:  backend,
		cache:    cache,
		store:    store,
		refresh:  refresh,
		ttl:      ttl,
		log:      log,
	}
}

// Preferences returns the current document, defaulting every missing
// field from the preset registry (a new user has no document at all).
func (s *DashboardService) Preferences(ctx context.Context) (domain.DashboardPreferences, error) {
	sess, token, err := s.identity(ctx)
	if err != nil {
		return domain.DashboardPreferences{}, err
	}

	key := ports.DashboardKey(sess.ID)
	if b, hit := s.cache.Get(key); hit {
		var prefs domain.DashboardPreferences
		if uErr := json.Unmarshal(b, &prefs); uErr == nil {
			metrics.CacheOpsTotal.WithLabelValues("dashboard", "hit").Inc()
			return prefs, nil
		}
		s.cache.Invalidate(key)
	}
	metrics.CacheOpsTotal.WithLabelValues("dashboard", "miss").Inc()

	gen := s.cache.Begin(key)
	remote, err := s.backend.FetchDashboardPreferences(ctx, token)
	switch {
	case errors.Is(err, domain.ErrPreferencesNotFound):
		defaults, _ := domain.PresetDefaults(domain.DefaultPreset)
		remote = &defaults
	case err != nil:
		return domain.DashboardPreferences{}, err
	}

	prefs := normalizePreferences(*remote)
	if b, mErr := json.Marshal(prefs); mErr == nil {
		s.cache.Complete(key, gen, b, s.ttl)
	}
	return prefs, nil
}

// SetPreset replaces the preset and, with it, the preset-defined widget
// set. The write must be confirmed remotely before any local state
// changes: a failed write leaves cache and UI on the committed preset.
func (s *DashboardService) SetPreset(ctx context.Context, preset string) error {
	defaults, err := domain.PresetDefaults(preset)
	if err != nil {
		return err
	}
	sess, token, err := s.identity(ctx)
	if err != nil {
		return err
	}

	patch := ports.DashboardPatch{
		PresetType:     &defaults.PresetType,
		VisibleWidgets: defaults.VisibleWidgets,
		WidgetSizes:    defaults.WidgetSizes,
	}
	if err := s.backend.UpdateDashboardPreferences(ctx, token, patch); err != nil {
		return err
	}

	s.log.Info().Str("preset", preset).Msg("dashboard preset changed")
	s.invalidate(sess.ID)
	return nil
}

// ToggleWidget adds the widget if absent, removes it if present. The
// resulting list can never contain duplicates.
func (s *DashboardService) ToggleWidget(ctx context.Context, widgetID string) error {
	prefs, err := s.Preferences(ctx)
	if err != nil {
		return err
	}
	sess, token, err := s.identity(ctx)
	if err != nil {
		return err
	}

	toggled := domain.ToggleWidget(prefs.VisibleWidgets, widgetID)
	patch := ports.DashboardPatch{VisibleWidgets: toggled}
	if patch.VisibleWidgets == nil {
		patch.VisibleWidgets = []string{}
	}
	if err := s.backend.UpdateDashboardPreferences(ctx, token, patch); err != nil {
		return err
	}

	s.invalidate(sess.ID)
	return nil
}

// ResetToPreset restores the named preset's default configuration,
// discarding any ad-hoc customization including layout metadata.
func (s *DashboardService) ResetToPreset(ctx context.Context, preset string) error {
	defaults, err := domain.PresetDefaults(preset)
	if err != nil {
		return err
	}
	sess, token, err := s.identity(ctx)
	if err != nil {
		return err
	}

	patch := ports.DashboardPatch{
		PresetType:     &defaults.PresetType,
		VisibleWidgets: defaults.VisibleWidgets,
		WidgetSizes:    defaults.WidgetSizes,
		ClearLayout:    true,
	}
	if err := s.backend.UpdateDashboardPreferences(ctx, token, patch); err != nil {
		return err
	}

	s.log.Info().Str("preset", preset).Msg("dashboard reset to preset defaults")
	s.invalidate(sess.ID)
	return nil
}

func (s *DashboardService) identity(ctx context.Context) (*domain.Session, string, error) {
	sess, err := s.sessions.CurrentSession(ctx)
	if err != nil || sess == nil {
		return nil, "", domain.ErrUnauthenticated
	}
	token, ok := s.store.Get(ports.KeyToken)
	if !ok {
		return nil, "", domain.ErrUnauthenticated
	}
	return sess, token, nil
}

// invalidate drops the cached document after a confirmed write and hands
// the key to the background refresher. Subsequent reads see
// server-confirmed state; the re-warm is a separate, later event.
func (s *DashboardService) invalidate(userID string) {
	key := ports.DashboardKey(userID)
	s.cache.Invalidate(key)
	if s.refresh != nil {
		s.refresh.Enqueue(key)
	}
}

// normalizePreferences fills defaults for missing fields and enforces the
// duplicate-free widget list invariant on anything the backend returns.
func normalizePreferences(p domain.DashboardPreferences) domain.DashboardPreferences {
	if p.PresetType == "" {
		p.PresetType = domain.DefaultPreset
	}
	defaults, err := domain.PresetDefaults(p.PresetType)
	if err != nil {
		defaults, _ = domain.PresetDefaults(domain.DefaultPreset)
		p.PresetType = domain.DefaultPreset
	}
	if p.VisibleWidgets == nil {
		p.VisibleWidgets = defaults.VisibleWidgets
	} else {
		p.VisibleWidgets = domain.DedupeWidgets(p.VisibleWidgets)
	}
	if p.WidgetSizes == nil {
		p.WidgetSizes = defaults.WidgetSizes
	}
	return p
}
