package domain

import "testing"

func TestEvaluateGate_InactiveNeverDecides(t *testing.T) {
	d := EvaluateGate(GateChecks{Active: false, IsAuthenticated: false})
	if d.State != GateChecking {
		t.Fatalf("expected checking, got %s", d.State)
	}
	if d.Redirect != "" {
		t.Fatalf("inactive gate must not redirect, got %q", d.Redirect)
	}
}

func TestEvaluateGate_UnauthenticatedRedirectsToRoot(t *testing.T) {
	d := EvaluateGate(GateChecks{Active: true, IsAuthenticated: false})
	if d.State != GateDenied {
		t.Fatalf("expected denied, got %s", d.State)
	}
	if d.Redirect != RouteRoot {
		t.Fatalf("expected redirect to %s, got %q", RouteRoot, d.Redirect)
	}
}

func TestEvaluateGate_NoPrematureDenialWhileLoading(t *testing.T) {
	cases := []struct {
		name   string
		checks GateChecks
	}{
		{
			name:   "auth still loading",
			checks: GateChecks{Active: true, AuthLoading: true},
		},
		{
			name:   "authenticated, access still loading",
			checks: GateChecks{Active: true, IsAuthenticated: true, AccessLoading: true},
		},
		{
			name:   "access loading with no access yet",
			checks: GateChecks{Active: true, IsAuthenticated: true, AccessLoading: true, HasAccess: false},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := EvaluateGate(tc.checks)
			if d.State != GateChecking {
				t.Fatalf("expected checking, got %s", d.State)
			}
			if d.Redirect != "" {
				t.Fatalf("loading gate must not redirect, got %q", d.Redirect)
			}
		})
	}
}

func TestEvaluateGate_UnauthorizedRedirectsToFallback(t *testing.T) {
	d := EvaluateGate(GateChecks{Active: true, IsAuthenticated: true, HasAccess: false, FallbackRoute: "/apps"})
	if d.State != GateDenied {
		t.Fatalf("expected denied, got %s", d.State)
	}
	if d.Redirect != "/apps" {
		t.Fatalf("expected redirect to /apps, got %q", d.Redirect)
	}
}

func TestEvaluateGate_UnauthorizedDefaultsToDashboard(t *testing.T) {
	d := EvaluateGate(GateChecks{Active: true, IsAuthenticated: true, HasAccess: false})
	if d.Redirect != RouteDashboard {
		t.Fatalf("expected redirect to %s, got %q", RouteDashboard, d.Redirect)
	}
}

func TestEvaluateGate_Granted(t *testing.T) {
	d := EvaluateGate(GateChecks{Active: true, IsAuthenticated: true, HasAccess: true})
	if d.State != GateGranted {
		t.Fatalf("expected granted, got %s", d.State)
	}
	if d.Redirect != "" {
		t.Fatalf("granted gate must not redirect, got %q", d.Redirect)
	}
}

func TestEvaluateGate_AuthLoadingBeatsUnauthenticated(t *testing.T) {
	// An unsettled auth check must not be read as "not authenticated".
	d := EvaluateGate(GateChecks{Active: true, AuthLoading: true, IsAuthenticated: false})
	if d.State != GateChecking {
		t.Fatalf("expected checking, got %s", d.State)
	}
}
