package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

// AdminService drives the admin-code lifecycle state machine:
//
//	NonAdmin -> Active(level) -> Revoked
//
// Every transition records its audit event before the mutation is applied, so
// an audit WriteError aborts the action with no partial state. Authorization
// (super_admin only) is enforced by the transport layer.
type AdminService struct {
	grants ports.AdminGrantRepository
	audit  ports.AuditLog
	log    zerolog.Logger
}

func NewAdminService(grants ports.AdminGrantRepository, audit ports.AuditLog, log zerolog.Logger) *AdminService {
	return &AdminService{grants: grants, audit: audit, log: log}
}

func (s *AdminService) Grant(ctx context.Context, code string, level domain.AdminLevel, grantedBy string) (*domain.AdminGrant, error) {
	code = domain.NormalizeCode(code)
	if !domain.ValidCode(code) {
		return nil, domain.ErrInvalidCode
	}
	if !domain.ValidGrantLevel(level) {
		return nil, fmt.Errorf("grant: invalid level %q", level)
	}

	// Precondition check. The storage uniqueness constraint is the real
	// serialization point for concurrent grants; this check just fails the
	// common case before writing an audit event.
	if _, err := s.grants.FindActive(ctx, code); err == nil {
		return nil, domain.ErrAlreadyGranted
	} else if !errors.Is(err, domain.ErrNotActive) {
		return nil, fmt.Errorf("grant: %w", err)
	}

	if err := s.audit.Record(ctx, grantedBy, domain.ActionAdminGrant, map[string]any{
		"code":  code,
		"level": string(level),
	}); err != nil {
		return nil, err
	}

	grant := &domain.AdminGrant{
		Code:      code,
		Level:     level,
		GrantedBy: grantedBy,
		GrantedAt: time.Now().UTC(),
		Active:    true,
	}
	if err := s.grants.Insert(ctx, grant); err != nil {
		return nil, err
	}

	s.log.Info().Str("code", code).Str("level", string(level)).Str("granted_by", grantedBy).Msg("admin grant created")
	return grant, nil
}

func (s *AdminService) Revoke(ctx context.Context, code, revokedBy string) error {
	code = domain.NormalizeCode(code)

	grant, err := s.grants.FindActive(ctx, code)
	if err != nil {
		return err
	}
	if grant.Level == domain.LevelSuperAdmin {
		// Never revocable through the standard removal path, regardless of
		// who asks.
		return domain.ErrCannotRevokeSuperAdmin
	}

	if err := s.audit.Record(ctx, revokedBy, domain.ActionAdminRevoke, map[string]any{
		"code":  code,
		"level": string(grant.Level),
	}); err != nil {
		return err
	}

	if err := s.grants.Deactivate(ctx, code, revokedBy, time.Now().UTC()); err != nil {
		return err
	}

	s.log.Info().Str("code", code).Str("revoked_by", revokedBy).Msg("admin grant revoked")
	return nil
}

func (s *AdminService) CurrentLevel(ctx context.Context, code string) (domain.AdminLevel, error) {
	grant, err := s.grants.FindActive(ctx, domain.NormalizeCode(code))
	if errors.Is(err, domain.ErrNotActive) {
		return domain.LevelNone, nil
	}
	if err != nil {
		return domain.LevelNone, fmt.Errorf("current level: %w", err)
	}
	return grant.Level, nil
}

func (s *AdminService) ListGrants(ctx context.Context, includeRevoked bool) ([]*domain.AdminGrant, error) {
	return s.grants.List(ctx, includeRevoked)
}
