package models

import "time"

// Session is the server-side record behind a session token. The token itself
// is a JWT carrying the session ID; revoking the row invalidates the token
// before its JWT expiry.
type Session struct {
	ID        string     `json:"id"`
	UserID    int        `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// Active reports whether the session can still authenticate requests
func (s *Session) Active() bool {
	return s.RevokedAt == nil
}
