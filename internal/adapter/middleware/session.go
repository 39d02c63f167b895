package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"loan-calculator/internal/infrastructure/session"
)

const ClaimsKey = "session_claims"

type TokenParser interface {
	Parse(raw string) (*session.Claims, error)
}

type AuthState interface {
	IsAuthenticated() bool
	Epoch() uint64
}

// RequireSession accepts a request only with a valid bearer token issued in
// the gate's current session. A logout moves the gate to a new epoch, so
// tokens issued before it stay invalid after the next verify.
func RequireSession(tokens TokenParser, gate AuthState) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return errJSON(c, http.StatusUnauthorized, "missing session token")
			}
			claims, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				return errJSON(c, http.StatusUnauthorized, "invalid session token")
			}
			if !gate.IsAuthenticated() || claims.Epoch != gate.Epoch() {
				return errJSON(c, http.StatusUnauthorized, "session ended, verify PIN again")
			}
			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}
