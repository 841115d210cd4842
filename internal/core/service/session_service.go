package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/aexy/console-state/internal/api/metrics"
	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/core/ports"
)

const defaultSessionTTL = time.Minute

// SessionService implements the session query cache.
type SessionService struct {
	backend ports.BackendClient
	cache   ports.QueryCache
	store   ports.SettingsStore
	nav     ports.Navigator
	ttl     time.Duration
	log     zerolog.Logger
}

func NewSessionService(
	backend ports.BackendClient,
	cache ports.QueryCache,
	store ports.SettingsStore,
	nav ports.Navigator,
	ttl time.Duration,
	log zerolog.Logger,
) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{backend: backend, cache: cache, store: store, nav: nav, ttl: ttl, log: log}
}

// CurrentSession returns the authenticated identity, or nil when none is
// available. The identity fetch only runs when a token exists in durable
// storage; without one the call answers immediately with no network I/O.
func (s *SessionService) CurrentSession(ctx context.Context) (*domain.Session, error) {
	token, ok := s.store.Get(ports.KeyToken)
	if !ok || token == "" {
		return nil, nil
	}

	key := ports.SessionKey()
	if b, hit := s.cache.Get(key); hit {
		var sess domain.Session
		if err := json.Unmarshal(b, &sess); err == nil {
			metrics.CacheOpsTotal.WithLabelValues("session", "hit").Inc()
			return &sess, nil
		}
		// undecodable entry is treated as a miss
		s.cache.Invalidate(key)
	}
	metrics.CacheOpsTotal.WithLabelValues("session", "miss").Inc()

	gen := s.cache.Begin(key)
	sess, err := s.backend.FetchIdentity(ctx, token)
	if err != nil {
		// A failed identity fetch always wins over stale cached data.
		s.cache.Invalidate(key)
		metrics.SessionRefreshesTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Msg("identity fetch failed, treating session as absent")
		return nil, err
	}

	if b, mErr := json.Marshal(sess); mErr == nil {
		if !s.cache.Complete(key, gen, b, s.ttl) {
			s.log.Debug().Msg("session fetch superseded, result discarded")
		}
	}
	metrics.SessionRefreshesTotal.WithLabelValues("ok").Inc()
	return sess, nil
}

// IsAuthenticated never errors: a missing token, rejected token, or
// failed fetch all evaluate to false.
func (s *SessionService) IsAuthenticated(ctx context.Context) bool {
	sess, err := s.CurrentSession(ctx)
	return err == nil && sess != nil
}

// SetToken persists the credential durably first, then clears the query
// cache, so any refetch racing the call already sees the new token.
func (s *SessionService) SetToken(token string) error {
	s.warnIfExpired(token)
	if err := s.store.Set(ports.KeyToken, token); err != nil {
		return err
	}
	s.cache.Clear()
	return nil
}

// Logout removes the token, clears the entire query cache (every derived
// decision is stale once the identity is gone), then navigates to the
// unauthenticated landing route. The order is load-bearing.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ports.KeyToken); err != nil {
		return err
	}
	s.cache.Clear()
	s.nav.Navigate(domain.RouteRoot)
	s.log.Info().Msg("logged out")
	return nil
}

// warnIfExpired peeks at the token's claims without verifying the
// signature (the signing key belongs to the backend) purely to flag
// tokens that can never authenticate.
func (s *SessionService) warnIfExpired(token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(time.Now()) {
		s.log.Warn().Time("expired_at", exp.Time).Msg("storing an already-expired token")
	}
}
