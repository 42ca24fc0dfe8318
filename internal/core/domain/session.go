package domain

import "time"

// Session is the ephemeral authenticated context of one connection. It is
// created on successful code lookup, destroyed on logout or connection end,
// and never persisted.
//
// Role is resolved once at creation and fixed for the session's lifetime: a
// grant revoked mid-session does not retroactively downgrade the session.
// Staleness until re-login is the intended posture.
type Session struct {
	Code      string    `json:"code"`
	Role      Role      `json:"role"`
	TokenID   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// CurrentRole returns the role cached at session creation. Pure read, no I/O.
func (s *Session) CurrentRole() Role {
	return s.Role
}
