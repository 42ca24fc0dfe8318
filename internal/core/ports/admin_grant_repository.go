package ports

import (
	"context"
	"time"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// AdminGrantRepository defines persistence for admin-role grants.
//
// The store must enforce "at most one active grant per code" with a
// uniqueness constraint so that concurrent inserts are serialized and the
// loser surfaces domain.ErrAlreadyGranted.
type AdminGrantRepository interface {
	// Insert persists a new active grant. Returns domain.ErrAlreadyGranted
	// when an active grant already exists for the code.
	Insert(ctx context.Context, grant *domain.AdminGrant) error

	// Deactivate flips the active grant for code to inactive and stamps the
	// revocation metadata. The row is never deleted. Returns
	// domain.ErrNotActive when no active grant exists.
	Deactivate(ctx context.Context, code, revokedBy string, at time.Time) error

	// FindActive returns the single active grant for code, or
	// domain.ErrNotActive when there is none.
	FindActive(ctx context.Context, code string) (*domain.AdminGrant, error)

	// List returns grants newest first, active only unless includeRevoked.
	List(ctx context.Context, includeRevoked bool) ([]*domain.AdminGrant, error)
}
