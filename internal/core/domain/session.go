package domain

import (
	"errors"
	"time"
)

var ErrUnauthenticated = errors.New("not authenticated")
var ErrAccessDenied = errors.New("access denied")
var ErrBackendUnavailable = errors.New("backend unavailable")
var ErrPreferencesNotFound = errors.New("preferences not found")
var ErrWriteRejected = errors.New("preference write rejected")
var ErrUnknownPreset = errors.New("unknown dashboard preset")
var ErrInvalidTheme = errors.New("invalid theme value")
var ErrInvalidSidebarLayout = errors.New("invalid sidebar layout value")

// Session is the authenticated identity record for the current user.
// It is either fully present (authenticated) or absent — consumers never
// observe a partially populated session.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminCheckResult is the settled outcome of the admin-check query.
type AdminCheckResult struct {
	IsAdmin   bool      `json:"is_admin"`
	CheckedAt time.Time `json:"checked_at"`
}

// AppAccessDecision is the per-application access flag, keyed by the
// application identifier reported by the workspace endpoint.
type AppAccessDecision struct {
	AppID     string    `json:"app_id"`
	HasAccess bool      `json:"has_access"`
	CheckedAt time.Time `json:"checked_at"`
}
