package domain

// GateState is the outcome of evaluating a protected area's access checks.
type GateState string

const (
	GateChecking GateState = "checking"
	GateDenied   GateState = "denied"
	GateGranted  GateState = "granted"
)

// Well-known shell routes used as redirect targets.
const (
	RouteRoot      = "/"
	RouteDashboard = "/dashboard"
)

// GateChecks is a snapshot of the layered asynchronous conditions a gate
// depends on. Evaluation is a pure function of this snapshot so the
// redirect side effect can be driven separately.
type GateChecks struct {
	// Active reports whether the gate has been mounted by the shell.
	// An inactive gate never produces a decision, which prevents
	// redirecting during non-interactive pre-render.
	Active bool

	AuthLoading     bool
	AccessLoading   bool
	IsAuthenticated bool
	HasAccess       bool

	// FallbackRoute is where an authenticated but unauthorized user is
	// sent. Denied unauthenticated users always go to RouteRoot.
	FallbackRoute string
}

// GateDecision pairs a gate state with the redirect it implies.
// Redirect is empty unless State is GateDenied.
type GateDecision struct {
	State    GateState `json:"state"`
	Redirect string    `json:"redirect,omitempty"`
}

// EvaluateGate reproduces the staged redirect policy:
//
//  1. Inactive gate → checking, no redirect.
//  2. Auth settled and unauthenticated → denied, redirect to root.
//  3. Both checks settled, authenticated but unauthorized → denied,
//     redirect to the fallback route (the user holds a valid session).
//  4. Any required check still loading → checking.
//
// The unauthorized redirect is never issued while either check is still
// loading, so a half-loaded identity can not cause a premature bounce.
func EvaluateGate(c GateChecks) GateDecision {
	if !c.Active {
		return GateDecision{State: GateChecking}
	}
	if c.AuthLoading {
		return GateDecision{State: GateChecking}
	}
	if !c.IsAuthenticated {
		return GateDecision{State: GateDenied, Redirect: RouteRoot}
	}
	if c.AccessLoading {
		return GateDecision{State: GateChecking}
	}
	if !c.HasAccess {
		fallback := c.FallbackRoute
		if fallback == "" {
			fallback = RouteDashboard
		}
		return GateDecision{State: GateDenied, Redirect: fallback}
	}
	return GateDecision{State: GateGranted}
}
