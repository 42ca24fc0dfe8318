package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

// SessionKey is the echo context key the authenticated session is stored under.
const SessionKey = "session"

// Auth validates the session token, rejects logged-out tokens via the
// denylist, and injects the reconstructed session into context. The role
// inside the token is the role resolved at login; it is deliberately not
// re-checked against the grant store here (stale until re-login).
func Auth(jwtSecret string, sessions ports.SessionInvalidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			session, err := sessionFromClaims(claims)
			if err != nil {
				return err
			}

			denied, err := sessions.IsInvalidated(c.Request().Context(), session.TokenID)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable")
			}
			if denied {
				return echo.NewHTTPError(http.StatusUnauthorized, "session logged out")
			}

			c.Set(SessionKey, session)
			return next(c)
		}
	}
}

func sessionFromClaims(claims jwt.MapClaims) (*domain.Session, error) {
	code, _ := claims["code"].(string)
	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)
	if code == "" || role == "" || jti == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing session claims")
	}

	var createdAt time.Time
	if iat, ok := claims["iat"].(float64); ok {
		createdAt = time.Unix(int64(iat), 0).UTC()
	}

	return &domain.Session{
		Code:      code,
		Role:      domain.Role(role),
		TokenID:   jti,
		CreatedAt: createdAt,
	}, nil
}
