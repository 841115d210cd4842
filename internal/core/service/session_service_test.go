package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/core/ports"
)

// The fakes below record the operations they receive into a shared event
// log so tests can assert ordering, not just occurrence.

type fakeStore struct {
	values map[string]string
	events *[]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]string)}
}

func (s *fakeStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *fakeStore) Set(key, value string) error {
	s.values[key] = value
	record(s.events, "store.set:"+key)
	return nil
}

func (s *fakeStore) Delete(key string) error {
	delete(s.values, key)
	record(s.events, "store.delete:"+key)
	return nil
}

type fakeCache struct {
	entries map[ports.CacheKey][]byte
	gens    map[ports.CacheKey]uint64
	events  *[]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries: make(map[ports.CacheKey][]byte),
		gens:    make(map[ports.CacheKey]uint64),
	}
}

func (c *fakeCache) Get(key ports.CacheKey) ([]byte, bool) {
	b, ok := c.entries[key]
	return b, ok
}

func (c *fakeCache) Begin(key ports.CacheKey) uint64 {
	if _, ok := c.gens[key]; !ok {
		c.gens[key] = 0
	}
	return c.gens[key]
}

func (c *fakeCache) Complete(key ports.CacheKey, gen uint64, value []byte, _ time.Duration) bool {
	if c.gens[key] != gen {
		return false
	}
	c.gens[key]++
	c.entries[key] = value
	record(c.events, "cache.complete:"+string(key))
	return true
}

func (c *fakeCache) Invalidate(key ports.CacheKey) {
	delete(c.entries, key)
	c.gens[key]++
	record(c.events, "cache.invalidate:"+string(key))
}

func (c *fakeCache) Clear() {
	c.entries = make(map[ports.CacheKey][]byte)
	for key := range c.gens {
		c.gens[key]++
	}
	record(c.events, "cache.clear")
}

type fakeNav struct {
	routes []string
	events *[]string
}

func (n *fakeNav) Navigate(route string) {
	n.routes = append(n.routes, route)
	record(n.events, "nav:"+route)
}

type fakeBackend struct {
	identityFn  func(ctx context.Context, token string) (*domain.Session, error)
	adminFn     func(ctx context.Context, token string) (bool, error)
	accessFn    func(ctx context.Context, token, appID string) (bool, error)
	dashGetFn   func(ctx context.Context, token string) (*domain.DashboardPreferences, error)
	dashPatchFn func(ctx context.Context, token string, patch ports.DashboardPatch) error

	identityCalls int
	adminCalls    int
	accessCalls   int
	dashGetCalls  int
	patches       []ports.DashboardPatch
	events        *[]string
}

func (b *fakeBackend) FetchIdentity(ctx context.Context, token string) (*domain.Session, error) {
	b.identityCalls++
	return b.identityFn(ctx, token)
}

func (b *fakeBackend) FetchAdminCheck(ctx context.Context, token string) (bool, error) {
	b.adminCalls++
	return b.adminFn(ctx, token)
}

func (b *fakeBackend) FetchAppAccess(ctx context.Context, token, appID string) (bool, error) {
	b.accessCalls++
	return b.accessFn(ctx, token, appID)
}

func (b *fakeBackend) FetchDashboardPreferences(ctx context.Context, token string) (*domain.DashboardPreferences, error) {
	b.dashGetCalls++
	return b.dashGetFn(ctx, token)
}

func (b *fakeBackend) UpdateDashboardPreferences(ctx context.Context, token string, patch ports.DashboardPatch) error {
	b.patches = append(b.patches, patch)
	record(b.events, "backend.patch")
	return b.dashPatchFn(ctx, token, patch)
}

func record(events *[]string, e string) {
	if events != nil {
		*events = append(*events, e)
	}
}

func testSession() *domain.Session {
	return &domain.Session{ID: "u1", Email: "u1@example.com", Name: "User One"}
}

func newSessionService(backend ports.BackendClient, cache ports.QueryCache, store ports.SettingsStore, nav ports.Navigator) *SessionService {
	return NewSessionService(backend, cache, store, nav, time.Minute, zerolog.Nop())
}

func TestSessionService_NoTokenNoFetch(t *testing.T) {
	backend := &fakeBackend{
		identityFn: func(context.Context, string) (*domain.Session, error) {
			return testSession(), nil
		},
	}
	svc := newSessionService(backend, newFakeCache(), newFakeStore(), &fakeNav{})

	sess, err := svc.CurrentSession(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected nil session without a token, got %+v", sess)
	}
	if backend.identityCalls != 0 {
		t.Fatalf("identity fetch ran without a stored token (%d calls)", backend.identityCalls)
	}
	if svc.IsAuthenticated(context.Background()) {
		t.Fatalf("expected unauthenticated without a token")
	}
}

func TestSessionService_FetchOnceThenCache(t *testing.T) {
	backend := &fakeBackend{
		identityFn: func(context.Context, string) (*domain.Session, error) {
			return testSession(), nil
		},
	}
	store := newFakeStore()
	store.values[ports.KeyToken] = "tok"
	svc := newSessionService(backend, newFakeCache(), store, &fakeNav{})

	for i := 0; i < 3; i++ {
		sess, err := svc.CurrentSession(context.Background())
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if sess == nil || sess.ID != "u1" {
			t.Fatalf("call %d: unexpected session %+v", i, sess)
		}
	}
	if backend.identityCalls != 1 {
		t.Fatalf("expected 1 identity fetch, got %d", backend.identityCalls)
	}
}

func TestSessionService_FetchFailureBeatsCachedSession(t *testing.T) {
	fail := false
	backend := &fakeBackend{
		identityFn: func(context.Context, string) (*domain.Session, error) {
			if fail {
				return nil, domain.ErrBackendUnavailable
			}
			return testSession(), nil
		},
	}
	store := newFakeStore()
	store.values[ports.KeyToken] = "tok"
	cache := newFakeCache()
	svc := newSessionService(backend, cache, store, &fakeNav{})

	if !svc.IsAuthenticated(context.Background()) {
		t.Fatalf("expected authenticated on the warm-up call")
	}

	// Expire the entry so the next call refetches, then make the fetch fail.
	delete(cache.entries, ports.SessionKey())
	fail = true

	sess, err := svc.CurrentSession(context.Background())
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
	if sess != nil {
		t.Fatalf("failed fetch must not yield a session, got %+v", sess)
	}
	if svc.IsAuthenticated(context.Background()) {
		t.Fatalf("expected unauthenticated after a failed fetch")
	}
	if _, hit := cache.Get(ports.SessionKey()); hit {
		t.Fatalf("failed fetch must leave no cached session")
	}
}

func TestSessionService_SetToken_PersistsBeforeClearing(t *testing.T) {
	var events []string
	store := newFakeStore()
	store.events = &events
	cache := newFakeCache()
	cache.events = &events
	svc := newSessionService(&fakeBackend{}, cache, store, &fakeNav{})

	if err := svc.SetToken("new-token"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	want := []string{"store.set:token", "cache.clear"}
	if len(events) != len(want) {
		t.Fatalf("unexpected events: %v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("event %d: expected %s, got %s (all: %v)", i, want[i], events[i], events)
		}
	}
	if store.values[ports.KeyToken] != "new-token" {
		t.Fatalf("token not persisted")
	}
}

func TestSessionService_Logout_OrderedTeardown(t *testing.T) {
	var events []string
	store := newFakeStore()
	store.events = &events
	store.values[ports.KeyToken] = "tok"
	cache := newFakeCache()
	cache.events = &events
	cache.entries[ports.SessionKey()] = []byte(`{"id":"u1"}`)
	cache.entries[ports.AdminCheckKey("u1")] = []byte(`{"is_admin":true}`)
	nav := &fakeNav{events: &events}
	svc := newSessionService(&fakeBackend{}, cache, store, nav)

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	want := []string{"store.delete:token", "cache.clear", "nav:/"}
	if len(events) != len(want) {
		t.Fatalf("unexpected events: %v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("event %d: expected %s, got %s (all: %v)", i, want[i], events[i], events)
		}
	}
	if len(cache.entries) != 0 {
		t.Fatalf("logout must clear every cached entry, %d left", len(cache.entries))
	}
	if _, ok := store.Get(ports.KeyToken); ok {
		t.Fatalf("token survived logout")
	}
}

func TestSessionService_StaleCompleteDiscarded(t *testing.T) {
	backend := &fakeBackend{
		identityFn: func(context.Context, string) (*domain.Session, error) {
			return testSession(), nil
		},
	}
	store := newFakeStore()
	store.values[ports.KeyToken] = "tok"
	cache := newFakeCache()
	svc := newSessionService(backend, cache, store, &fakeNav{})

	// A Clear between Begin and Complete (as SetToken issues) bumps the
	// generation, so the in-flight result must be rejected.
	gen := cache.Begin(ports.SessionKey())
	cache.Clear()
	if cache.Complete(ports.SessionKey(), gen, []byte(`{"id":"stale"}`), time.Minute) {
		t.Fatalf("stale completion was accepted")
	}

	sess, err := svc.CurrentSession(context.Background())
	if err != nil || sess == nil || sess.ID != "u1" {
		t.Fatalf("expected fresh session, got %+v err=%v", sess, err)
	}
}
