package ports

import (
	"context"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// LoginResult is returned by Authenticate.
type LoginResult struct {
	// NeedsConsent is true when no session was issued because the code is
	// unknown (first login) or its consent was previously denied. The client
	// must complete the consent flow before retrying.
	NeedsConsent bool
	Token        string
	Session      *domain.Session
}

// AuthService owns the session lifecycle: code authentication, the
// first-login consent flow, and logout.
type AuthService interface {
	// Authenticate resolves the code, computes the session role from any
	// active admin grant, and issues a signed session token. Unknown codes
	// and codes with denied consent are routed to the consent flow instead
	// of failing. Malformed codes fail with domain.ErrInvalidCode.
	Authenticate(ctx context.Context, code string) (*LoginResult, error)

	// CompleteConsent creates the credential for a first-time code with the
	// given decision (or records a fresh decision for a previously denied
	// code) and then issues a session.
	CompleteConsent(ctx context.Context, code string, consent bool) (*LoginResult, error)

	// UpdateConsent overwrites the consent decision of an authenticated
	// session's credential. Audited.
	UpdateConsent(ctx context.Context, session *domain.Session, consent bool) error

	// Logout invalidates the session token and records the logout event.
	Logout(ctx context.Context, session *domain.Session) error
}

// SessionInvalidator revokes issued session tokens ahead of their expiry.
type SessionInvalidator interface {
	Invalidate(ctx context.Context, tokenID string) error
	IsInvalidated(ctx context.Context, tokenID string) (bool, error)
}
