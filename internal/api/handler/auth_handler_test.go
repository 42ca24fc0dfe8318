package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/api/middleware"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn    func(ctx context.Context, code string) (*ports.LoginResult, error)
	completeConsentFn func(ctx context.Context, code string, consent bool) (*ports.LoginResult, error)
	updateConsentFn   func(ctx context.Context, session *domain.Session, consent bool) error
	logoutFn          func(ctx context.Context, session *domain.Session) error
}

func (s *stubAuthService) Authenticate(ctx context.Context, code string) (*ports.LoginResult, error) {
	return s.authenticateFn(ctx, code)
}

func (s *stubAuthService) CompleteConsent(ctx context.Context, code string, consent bool) (*ports.LoginResult, error) {
	return s.completeConsentFn(ctx, code, consent)
}

func (s *stubAuthService) UpdateConsent(ctx context.Context, session *domain.Session, consent bool) error {
	return s.updateConsentFn(ctx, session, consent)
}

func (s *stubAuthService) Logout(ctx context.Context, session *domain.Session) error {
	return s.logoutFn(ctx, session)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(_ context.Context, code string) (*ports.LoginResult, error) {
			if code != "ABCDE" {
				t.Fatalf("unexpected code: %s", code)
			}
			return &ports.LoginResult{
				Token:   "token123",
				Session: &domain.Session{Code: "ABCDE", Role: domain.RoleUser, TokenID: "jti-1"},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/login", `{"code":"ABCDE"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" || resp["role"] != "user" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_NeedsConsent(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string) (*ports.LoginResult, error) {
			return &ports.LoginResult{NeedsConsent: true}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/login", `{"code":"ABCDE"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["needs_consent"] != true {
		t.Fatalf("expected needs_consent, got %+v", resp)
	}
	if _, ok := resp["token"]; ok {
		t.Fatalf("no token may be present before consent")
	}
}

func TestAuthHandler_Login_MalformedCode(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string) (*ports.LoginResult, error) {
			t.Fatalf("service must not be called for a malformed code")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	for _, body := range []string{`{"code":"AB"}`, `{"code":"ABC-12"}`, `{}`} {
		c, _ := newTestContext(t, http.MethodPost, "/v1/auth/login", body)
		err := h.Login(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: expected 401, got %v", body, err)
		}
	}
}

func TestAuthHandler_CompleteConsent(t *testing.T) {
	var gotConsent bool
	stub := &stubAuthService{
		completeConsentFn: func(_ context.Context, code string, consent bool) (*ports.LoginResult, error) {
			gotConsent = consent
			return &ports.LoginResult{
				Token:   "token123",
				Session: &domain.Session{Code: code, Role: domain.RoleUser, TokenID: "jti-1"},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/consent", `{"code":"ABCDE","consent":false}`)
	if err := h.CompleteConsent(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotConsent {
		t.Fatalf("expected consent=false to pass through")
	}
}

func TestAuthHandler_CompleteConsent_MissingDecision(t *testing.T) {
	stub := &stubAuthService{
		completeConsentFn: func(context.Context, string, bool) (*ports.LoginResult, error) {
			t.Fatalf("service must not be called without a decision")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/consent", `{"code":"ABCDE"}`)
	err := h.CompleteConsent(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	called := false
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, session *domain.Session) error {
			called = true
			if session.Code != "ABCDE" {
				t.Fatalf("unexpected session: %+v", session)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/logout", "")
	c.Set(middleware.SessionKey, &domain.Session{Code: "ABCDE", Role: domain.RoleUser, TokenID: "jti-1"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 with service called, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/logout", "")
	err := h.Logout(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
