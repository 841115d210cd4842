package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/core/ports"
)

type fakeSessions struct {
	sess *domain.Session
	err  error
}

func (s *fakeSessions) CurrentSession(context.Context) (*domain.Session, error) {
	return s.sess, s.err
}

func (s *fakeSessions) IsAuthenticated(context.Context) bool {
	return s.err == nil && s.sess != nil
}

func (s *fakeSessions) SetToken(string) error { return nil }

func (s *fakeSessions) Logout(context.Context) error { return nil }

func newAccessService(sessions ports.SessionService, backend ports.BackendClient, cache ports.QueryCache, store ports.SettingsStore, nav ports.Navigator) *AccessService {
	return NewAccessService(sessions, backend, cache, store, nav, 5*time.Minute, zerolog.Nop())
}

func storeWithToken() *fakeStore {
	s := newFakeStore()
	s.values[ports.KeyToken] = "tok"
	return s
}

func TestAccessService_AdminGate_UnauthenticatedRedirectsToRoot(t *testing.T) {
	nav := &fakeNav{}
	svc := newAccessService(&fakeSessions{}, &fakeBackend{}, newFakeCache(), newFakeStore(), nav)

	d := svc.AdminGate(context.Background())
	if d.State != domain.GateDenied {
		t.Fatalf("expected denied, got %s", d.State)
	}
	if d.Redirect != domain.RouteRoot {
		t.Fatalf("expected redirect to root, got %q", d.Redirect)
	}
	if len(nav.routes) != 1 || nav.routes[0] != domain.RouteRoot {
		t.Fatalf("expected navigation to root, got %v", nav.routes)
	}
}

func TestAccessService_AdminGate_SessionErrorFailsClosed(t *testing.T) {
	backend := &fakeBackend{
		adminFn: func(context.Context, string) (bool, error) {
			t.Fatalf("admin check must not run without a settled session")
			return false, nil
		},
	}
	svc := newAccessService(&fakeSessions{err: domain.ErrBackendUnavailable}, backend, newFakeCache(), storeWithToken(), &fakeNav{})

	d := svc.AdminGate(context.Background())
	if d.State != domain.GateDenied {
		t.Fatalf("expected denied on session error, got %s", d.State)
	}
}

func TestAccessService_AdminGate_GrantsAdmin(t *testing.T) {
	backend := &fakeBackend{
		adminFn: func(context.Context, string) (bool, error) { return true, nil },
	}
	nav := &fakeNav{}
	svc := newAccessService(&fakeSessions{sess: testSession()}, backend, newFakeCache(), storeWithToken(), nav)

	d := svc.AdminGate(context.Background())
	if d.State != domain.GateGranted {
		t.Fatalf("expected granted, got %s", d.State)
	}
	if len(nav.routes) != 0 {
		t.Fatalf("granted gate must not navigate, got %v", nav.routes)
	}
}

func TestAccessService_AdminGate_NonAdminRedirectsToDashboard(t *testing.T) {
	backend := &fakeBackend{
		adminFn: func(context.Context, string) (bool, error) { return false, nil },
	}
	nav := &fakeNav{}
	svc := newAccessService(&fakeSessions{sess: testSession()}, backend, newFakeCache(), storeWithToken(), nav)

	d := svc.AdminGate(context.Background())
	if d.State != domain.GateDenied {
		t.Fatalf("expected denied, got %s", d.State)
	}
	if d.Redirect != domain.RouteDashboard {
		t.Fatalf("expected redirect to dashboard, got %q", d.Redirect)
	}
	if len(nav.routes) != 1 || nav.routes[0] != domain.RouteDashboard {
		t.Fatalf("expected navigation to dashboard, got %v", nav.routes)
	}
}

func TestAccessService_AdminCheck_RetriesOnceThenSucceeds(t *testing.T) {
	backend := &fakeBackend{}
	backend.adminFn = func(context.Context, string) (bool, error) {
		if backend.adminCalls == 1 {
			return false, domain.ErrBackendUnavailable
		}
		return true, nil
	}
	svc := newAccessService(&fakeSessions{sess: testSession()}, backend, newFakeCache(), storeWithToken(), &fakeNav{})

	if !svc.IsAdmin(context.Background()) {
		t.Fatalf("expected admin after successful retry")
	}
	if backend.adminCalls != 2 {
		t.Fatalf("expected 2 admin check calls, got %d", backend.adminCalls)
	}
}

func TestAccessService_AdminCheck_FailsClosedAfterRetry(t *testing.T) {
	backend := &fakeBackend{
		adminFn: func(context.Context, string) (bool, error) {
			return false, domain.ErrBackendUnavailable
		},
	}
	svc := newAccessService(&fakeSessions{sess: testSession()}, backend, newFakeCache(), storeWithToken(), &fakeNav{})

	if svc.IsAdmin(context.Background()) {
		t.Fatalf("expected not admin when every check fails")
	}
	if backend.adminCalls != 2 {
		t.Fatalf("expected exactly one retry (2 calls), got %d", backend.adminCalls)
	}
}

func TestAccessService_AdminCheck_CachedPerUser(t *testing.T) {
	backend := &fakeBackend{
		adminFn: func(context.Context, string) (bool, error) { return true, nil },
	}
	svc := newAccessService(&fakeSessions{sess: testSession()}, backend, newFakeCache(), storeWithToken(), &fakeNav{})

	for i := 0; i < 3; i++ {
		if !svc.IsAdmin(context.Background()) {
			t.Fatalf("call %d: expected admin", i)
		}
	}
	if backend.adminCalls != 1 {
		t.Fatalf("expected 1 admin check, got %d", backend.adminCalls)
	}
}

func TestAccessService_AppGate_DeniedUsesFallback(t *testing.T) {
	backend := &fakeBackend{
		accessFn: func(_ context.Context, _ string, appID string) (bool, error) {
			if appID != "billing" {
				t.Fatalf("unexpected app id %q", appID)
			}
			return false, nil
		},
	}
	nav := &fakeNav{}
	svc := newAccessService(&fakeSessions{sess: testSession()}, backend, newFakeCache(), storeWithToken(), nav)

	d := svc.AppGate(context.Background(), "billing", "/apps")
	if d.State != domain.GateDenied {
		t.Fatalf("expected denied, got %s", d.State)
	}
	if d.Redirect != "/apps" {
		t.Fatalf("expected redirect to /apps, got %q", d.Redirect)
	}
	if len(nav.routes) != 1 || nav.routes[0] != "/apps" {
		t.Fatalf("expected navigation to /apps, got %v", nav.routes)
	}
}

func TestAccessService_AppAccess_AttemptOnce(t *testing.T) {
	backend := &fakeBackend{
		accessFn: func(context.Context, string, string) (bool, error) {
			return false, domain.ErrBackendUnavailable
		},
	}
	svc := newAccessService(&fakeSessions{sess: testSession()}, backend, newFakeCache(), storeWithToken(), &fakeNav{})

	if svc.HasAppAccess(context.Background(), "billing") {
		t.Fatalf("expected denial on fetch failure")
	}
	if backend.accessCalls != 1 {
		t.Fatalf("app access must not retry, got %d calls", backend.accessCalls)
	}
}

func TestAccessService_AppAccess_CachedPerApp(t *testing.T) {
	backend := &fakeBackend{
		accessFn: func(_ context.Context, _ string, appID string) (bool, error) {
			return appID == "billing", nil
		},
	}
	svc := newAccessService(&fakeSessions{sess: testSession()}, backend, newFakeCache(), storeWithToken(), &fakeNav{})

	if !svc.HasAppAccess(context.Background(), "billing") {
		t.Fatalf("expected access to billing")
	}
	if svc.HasAppAccess(context.Background(), "payroll") {
		t.Fatalf("expected no access to payroll")
	}
	if !svc.HasAppAccess(context.Background(), "billing") {
		t.Fatalf("expected cached access to billing")
	}
	if backend.accessCalls != 2 {
		t.Fatalf("expected one fetch per app, got %d", backend.accessCalls)
	}
}

func TestAccessService_NoTokenDenies(t *testing.T) {
	backend := &fakeBackend{
		adminFn: func(context.Context, string) (bool, error) {
			t.Fatalf("admin check must not run without a token")
			return false, nil
		},
	}
	svc := newAccessService(&fakeSessions{sess: testSession()}, backend, newFakeCache(), newFakeStore(), &fakeNav{})

	if svc.IsAdmin(context.Background()) {
		t.Fatalf("expected not admin without a token")
	}
}
