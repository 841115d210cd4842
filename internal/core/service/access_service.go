package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/aexy/console-state/internal/api/metrics"
	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/core/ports"
)

const (
	// Admin and app-access decisions stay fresh for five minutes and are
	// recomputed whenever the session identity changes (the cache key
	// carries the user id).
	defaultDecisionTTL = 5 * time.Minute

	// Single bounded retry on the admin check only.
	adminRetryBackoff = 200 * time.Millisecond
)

// AccessService derives authorization decisions from the session plus the
// secondary role/access queries. Every failure path fails closed.
type AccessService struct {
	sessions ports.SessionService
	backend  ports.BackendClient
	cache    ports.QueryCache
	store    ports.SettingsStore
	nav      ports.Navigator
	ttl      time.Duration
	log      zerolog.Logger
}

func NewAccessService(
	sessions ports.SessionService,
	backend ports.BackendClient,
	cache ports.QueryCache,
	store ports.SettingsStore,
	nav ports.Navigator,
	ttl time.Duration,
	log zerolog.Logger,
) *AccessService {
	if ttl <= 0 {
		ttl = defaultDecisionTTL
	}
	return &AccessService{sessions: sessions, backend: backend, cache: cache, store: store, nav: nav, ttl: ttl, log: log}
}

// AdminGate runs the staged admin gate. The admin check only fires after
// the session fetch has settled with a present session, so a half-loaded
// identity can never produce a premature privilege decision.
func (s *AccessService) AdminGate(ctx context.Context) domain.GateDecision {
	sess, err := s.sessions.CurrentSession(ctx)
	checks := domain.GateChecks{Active: true, IsAuthenticated: err == nil && sess != nil}
	if !checks.IsAuthenticated {
		return s.decide("admin", checks)
	}

	checks.HasAccess = s.adminFor(ctx, sess)
	return s.decide("admin", checks)
}

// AppGate applies the same staged discipline keyed on an application
// identifier, redirecting to fallbackRoute (or the default authenticated
// landing) when access is denied.
func (s *AccessService) AppGate(ctx context.Context, appID, fallbackRoute string) domain.GateDecision {
	sess, err := s.sessions.CurrentSession(ctx)
	checks := domain.GateChecks{Active: true, FallbackRoute: fallbackRoute, IsAuthenticated: err == nil && sess != nil}
	if !checks.IsAuthenticated {
		return s.decide("app", checks)
	}

	checks.HasAccess = s.appAccessFor(ctx, sess, appID)
	return s.decide("app", checks)
}

func (s *AccessService) IsAdmin(ctx context.Context) bool {
	sess, err := s.sessions.CurrentSession(ctx)
	if err != nil || sess == nil {
		return false
	}
	return s.adminFor(ctx, sess)
}

func (s *AccessService) HasAppAccess(ctx context.Context, appID string) bool {
	sess, err := s.sessions.CurrentSession(ctx)
	if err != nil || sess == nil {
		return false
	}
	return s.appAccessFor(ctx, sess, appID)
}

// decide maps the checks through the gate state machine, fires the
// navigation effect on denial, and records the outcome.
func (s *AccessService) decide(gate string, checks domain.GateChecks) domain.GateDecision {
	d := domain.EvaluateGate(checks)
	metrics.GateDecisionsTotal.WithLabelValues(gate, string(d.State)).Inc()
	if d.State == domain.GateDenied && d.Redirect != "" {
		s.nav.Navigate(d.Redirect)
	}
	return d
}

// adminFor answers the cached admin flag for sess, fetching on a miss
// with one bounded retry. Fetch failure means not admin.
func (s *AccessService) adminFor(ctx context.Context, sess *domain.Session) bool {
	token, ok := s.store.Get(ports.KeyToken)
	if !ok {
		return false
	}

	key := ports.AdminCheckKey(sess.ID)
	if b, hit := s.cache.Get(key); hit {
		var res domain.AdminCheckResult
		if err := json.Unmarshal(b, &res); err == nil {
			metrics.CacheOpsTotal.WithLabelValues("admin_check", "hit").Inc()
			return res.IsAdmin
		}
		s.cache.Invalidate(key)
	}
	metrics.CacheOpsTotal.WithLabelValues("admin_check", "miss").Inc()

	gen := s.cache.Begin(key)
	isAdmin, err := s.backend.FetchAdminCheck(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("admin check failed, retrying once")
		select {
		case <-ctx.Done():
			return false
		case <-time.After(adminRetryBackoff):
		}
		isAdmin, err = s.backend.FetchAdminCheck(ctx, token)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", sess.ID).Msg("admin check failed, denying")
		return false
	}

	res := domain.AdminCheckResult{IsAdmin: isAdmin, CheckedAt: time.Now().UTC()}
	if b, mErr := json.Marshal(res); mErr == nil {
		s.cache.Complete(key, gen, b, s.ttl)
	}
	return isAdmin
}

// appAccessFor answers the cached per-application flag, attempt-once.
func (s *AccessService) appAccessFor(ctx context.Context, sess *domain.Session, appID string) bool {
	token, ok := s.store.Get(ports.KeyToken)
	if !ok {
		return false
	}

	key := ports.AppAccessKey(sess.ID, appID)
	if b, hit := s.cache.Get(key); hit {
		var res domain.AppAccessDecision
		if err := json.Unmarshal(b, &res); err == nil {
			metrics.CacheOpsTotal.WithLabelValues("app_access", "hit").Inc()
			return res.HasAccess
		}
		s.cache.Invalidate(key)
	}
	metrics.CacheOpsTotal.WithLabelValues("app_access", "miss").Inc()

	gen := s.cache.Begin(key)
	hasAccess, err := s.backend.FetchAppAccess(ctx, token, appID)
	if err != nil {
		s.log.Warn().Err(err).Str("app_id", appID).Msg("app access check failed, denying")
		return false
	}

	res := domain.AppAccessDecision{AppID: appID, HasAccess: hasAccess, CheckedAt: time.Now().UTC()}
	if b, mErr := json.Marshal(res); mErr == nil {
		s.cache.Complete(key, gen, b, s.ttl)
	}
	return hasAccess
}
