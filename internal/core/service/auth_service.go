package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

// AuthService implements code authentication, the first-login consent flow,
// and logout. The session role is resolved exactly once, at authentication;
// nothing refreshes it afterwards.
type AuthService struct {
	creds     ports.CredentialRepository
	grants    ports.AdminGrantRepository
	audit     ports.AuditLog
	sessions  ports.SessionInvalidator
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	creds ports.CredentialRepository,
	grants ports.AdminGrantRepository,
	audit ports.AuditLog,
	sessions ports.SessionInvalidator,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		creds:     creds,
		grants:    grants,
		audit:     audit,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AuthService) Authenticate(ctx context.Context, code string) (*ports.LoginResult, error) {
	code = domain.NormalizeCode(code)
	if !domain.ValidCode(code) {
		return nil, domain.ErrInvalidCode
	}

	cred, err := s.creds.Resolve(ctx, code)
	if errors.Is(err, domain.ErrCredentialNotFound) {
		// First-time code: no session until the consent flow completes.
		return &ports.LoginResult{NeedsConsent: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if cred.Consent == domain.ConsentDenied {
		// Previously denied consent re-enters the consent flow at login.
		return &ports.LoginResult{NeedsConsent: true}, nil
	}

	return s.issueSession(ctx, code)
}

func (s *AuthService) CompleteConsent(ctx context.Context, code string, consent bool) (*ports.LoginResult, error) {
	code = domain.NormalizeCode(code)
	if !domain.ValidCode(code) {
		return nil, domain.ErrInvalidCode
	}

	decision := domain.ConsentDenied
	if consent {
		decision = domain.ConsentGranted
	}

	_, err := s.creds.Resolve(ctx, code)
	switch {
	case errors.Is(err, domain.ErrCredentialNotFound):
		now := time.Now().UTC()
		cred := &domain.Credential{
			Code:       code,
			Consent:    decision,
			CreatedAt:  now,
			LastSeenAt: now,
		}
		if err := s.creds.Create(ctx, cred); err != nil {
			return nil, fmt.Errorf("complete consent: %w", err)
		}
		if err := s.audit.Record(ctx, code, domain.ActionUserCreated, map[string]any{"data_consent": consent}); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("complete consent: %w", err)
	default:
		// Existing credential reconsidering a denied decision.
		if err := s.audit.Record(ctx, code, domain.ActionConsentUpdated, map[string]any{"data_consent": consent}); err != nil {
			return nil, err
		}
		if err := s.creds.SetConsent(ctx, code, decision); err != nil {
			return nil, fmt.Errorf("complete consent: %w", err)
		}
	}

	return s.issueSession(ctx, code)
}

func (s *AuthService) UpdateConsent(ctx context.Context, session *domain.Session, consent bool) error {
	decision := domain.ConsentDenied
	if consent {
		decision = domain.ConsentGranted
	}

	// Audit before mutation: a consent change that cannot be recorded must
	// not apply.
	if err := s.audit.Record(ctx, session.Code, domain.ActionConsentUpdated, map[string]any{"data_consent": consent}); err != nil {
		return err
	}
	if err := s.creds.SetConsent(ctx, session.Code, decision); err != nil {
		return fmt.Errorf("update consent: %w", err)
	}
	return nil
}

func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if err := s.audit.Record(ctx, session.Code, domain.ActionLogout, nil); err != nil {
		return err
	}
	if err := s.sessions.Invalidate(ctx, session.TokenID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// issueSession fixes the session role from the current active grant, records
// the login event, and signs the session token.
func (s *AuthService) issueSession(ctx context.Context, code string) (*ports.LoginResult, error) {
	role := domain.RoleUser
	grant, err := s.grants.FindActive(ctx, code)
	switch {
	case err == nil:
		role = domain.RoleForLevel(grant.Level)
	case errors.Is(err, domain.ErrNotActive):
		// plain user
	default:
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	if err := s.creds.TouchLastSeen(ctx, code); err != nil {
		// Unaudited, low-value update: never blocks a login.
		s.log.Warn().Err(err).Str("code", code).Msg("failed to touch last_seen_at")
	}

	if err := s.audit.Record(ctx, code, domain.ActionLogin, map[string]any{"role": string(role)}); err != nil {
		return nil, err
	}

	session := &domain.Session{
		Code:      code,
		Role:      role,
		TokenID:   uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	token, err := s.signToken(session)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.log.Info().Str("code", code).Str("role", string(role)).Msg("session issued")

	return &ports.LoginResult{Token: token, Session: session}, nil
}

func (s *AuthService) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"code": session.Code,
		"role": string(session.Role),
		"jti":  session.TokenID,
		"iat":  session.CreatedAt.Unix(),
		"exp":  session.CreatedAt.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
