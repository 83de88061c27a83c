package models

import "time"

// SessionState is derived from a session row at a point in time.
type SessionState string

const (
	SessionActive    SessionState = "ACTIVE"
	SessionExpired   SessionState = "EXPIRED"
	SessionLoggedOut SessionState = "LOGGED_OUT"
)

// Session binds an authenticated user to a token id until expiry or logout.
type Session struct {
	ID          string     `json:"id"` // uuid, carried as the token "jti"
	UserID      int        `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	LoggedOutAt *time.Time `json:"logged_out_at,omitempty"`
}

// State reports the session state at now. Logout wins over expiry.
func (s Session) State(now time.Time) SessionState {
	if s.LoggedOutAt != nil {
		return SessionLoggedOut
	}
	if !now.Before(s.ExpiresAt) {
		return SessionExpired
	}
	return SessionActive
}
