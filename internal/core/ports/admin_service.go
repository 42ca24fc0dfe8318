package ports

import (
	"context"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// AdminService manages the admin-code lifecycle. Authorization is enforced by
// the caller (transport layer): only super_admin sessions reach Grant/Revoke.
type AdminService interface {
	// Grant activates an admin grant for code at the given level. Fails with
	// domain.ErrAlreadyGranted when an active grant exists. The admin_grant
	// audit event is durably recorded before the caller sees success.
	Grant(ctx context.Context, code string, level domain.AdminLevel, grantedBy string) (*domain.AdminGrant, error)

	// Revoke soft-deletes the active grant for code. Fails with
	// domain.ErrCannotRevokeSuperAdmin for super_admin grants and
	// domain.ErrNotActive when no active grant exists. Audited like Grant.
	Revoke(ctx context.Context, code, revokedBy string) error

	// CurrentLevel reports the level of the single active grant for code,
	// or domain.LevelNone.
	CurrentLevel(ctx context.Context, code string) (domain.AdminLevel, error)

	// ListGrants returns grants for the admin directory, newest first.
	ListGrants(ctx context.Context, includeRevoked bool) ([]*domain.AdminGrant, error)
}
