package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"prestamos-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"

	principalKey = "principal"
	maxUserIDLen = 64
)

// Identity trusts the user asserted by the upstream authentication gateway.
// A missing role header means NOT_VERIFIED.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			userID := strings.TrimSpace(req.Header.Get(HeaderUserID))
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing " + HeaderUserID})
			}
			if len(userID) > maxUserIDLen {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderUserID})
			}

			role := user.RoleNotVerified
			if raw := strings.TrimSpace(req.Header.Get(HeaderUserRole)); raw != "" {
				r, err := user.ParseRole(strings.ToUpper(raw))
				if err != nil {
					return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderUserRole})
				}
				role = r
			}

			c.Set(principalKey, user.Principal{UserID: userID, Role: role})
			return next(c)
		}
	}
}

type PrincipalRecorder interface {
	Register(ctx context.Context, p user.Principal) error
}

// RecordPrincipal writes the caller set by Identity to r. A failed write is
// logged and the request continues; it is retried on the next request.
func RecordPrincipal(r PrincipalRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p, ok := PrincipalFrom(c); ok {
				if err := r.Register(c.Request().Context(), p); err != nil {
					log.Printf("identity: record %s: %v", p.UserID, err)
				}
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the caller stored by Identity.
func PrincipalFrom(c echo.Context) (user.Principal, bool) {
	p, ok := c.Get(principalKey).(user.Principal)
	return p, ok
}

// WithPrincipal stores p on c the way Identity does.
func WithPrincipal(c echo.Context, p user.Principal) {
	c.Set(principalKey, p)
}
