// Package stubapi is a development stand-in for the remote console API.
// It serves the four endpoints the sidecar consumes (identity,
// admin-check, workspace app access, and dashboard preferences) against
// MongoDB, plus register/login so tokens can be minted locally. It exists
// for local development and end-to-end tests of the state layer; the
// production backend is owned elsewhere.
package stubapi

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")

// User is a stub account. AppGrants lists the application identifiers the
// user may open.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	AppGrants    []string  `json:"app_grants,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
