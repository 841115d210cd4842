package ports

import (
	"fmt"
	"strings"
	"time"
)

// CacheKey identifies one cached logical resource. Keys are only built
// through the constructors below so call sites can not invent ad-hoc
// strings and silently break invalidation.
type CacheKey string

func SessionKey() CacheKey {
	return "session"
}

func AdminCheckKey(userID string) CacheKey {
	return CacheKey(fmt.Sprintf("admin_check:%s", userID))
}

func AppAccessKey(userID, appID string) CacheKey {
	return CacheKey(fmt.Sprintf("app_access:%s:%s", userID, appID))
}

func DashboardKey(userID string) CacheKey {
	return CacheKey(fmt.Sprintf("dashboard_prefs:%s", userID))
}

// IsDashboardKey reports whether key belongs to the dashboard resource.
// Used by the refresh dispatcher to route re-warm jobs.
func IsDashboardKey(key CacheKey) bool {
	return strings.HasPrefix(string(key), "dashboard_prefs:")
}

// QueryCache holds JSON-encoded query results with per-entry freshness.
//
// Writers follow a begin/complete protocol: Begin snapshots the key's
// generation before the network call, and Complete only stores the result
// if that generation is still current. Any Invalidate or Clear issued in
// between advances the generation, so a superseded fetch can never clobber
// a fresher entry (completion order alone is not trusted).
type QueryCache interface {
	// Get returns the cached value and whether a fresh entry exists.
	Get(key CacheKey) ([]byte, bool)

	// Begin returns the key's current generation.
	Begin(key CacheKey) uint64

	// Complete stores value under key if gen is still current, reporting
	// whether the value was accepted.
	Complete(key CacheKey, gen uint64, value []byte, ttl time.Duration) bool

	// Invalidate drops the entry and advances the generation.
	Invalidate(key CacheKey)

	// Clear drops every entry and advances every generation. Used on
	// logout, where all derived caches must be treated as stale.
	Clear()
}
