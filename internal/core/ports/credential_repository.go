package ports

import (
	"context"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// CredentialRepository defines persistence for access-code credentials.
type CredentialRepository interface {
	// Resolve performs an exact-match lookup on a normalized code. Returns
	// domain.ErrCredentialNotFound when no credential matches; there is no
	// partial or fuzzy matching.
	Resolve(ctx context.Context, code string) (*domain.Credential, error)

	// Create inserts a new credential. Returns domain.ErrCredentialExists
	// when the code is already taken (unique index on code).
	Create(ctx context.Context, cred *domain.Credential) error

	// SetConsent overwrites the consent decision for an existing credential.
	SetConsent(ctx context.Context, code string, consent domain.Consent) error

	// TouchLastSeen updates last_seen_at. High-frequency, low-value: callers
	// do not audit it.
	TouchLastSeen(ctx context.Context, code string) error

	// List returns all credentials, newest first.
	List(ctx context.Context) ([]*domain.Credential, error)
}
