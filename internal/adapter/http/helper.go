package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"prestamos-backend/internal/adapter/middleware"
	"prestamos-backend/internal/domain/apperr"
	"prestamos-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

var errNoPrincipal = errors.New("missing authenticated user")

// ---- helpers ----

func principal(c echo.Context) (user.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return user.Principal{}, errNoPrincipal
	}
	return p, nil
}

// bindValid binds the body into req and runs the struct validator. It writes
// the 400 response itself and reports whether the handler should continue.
func bindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

// params returns the named path params trimmed; ok is false when one is empty.
func params(c echo.Context, names ...string) (vals []string, ok bool) {
	for _, n := range names {
		v := strings.TrimSpace(c.Param(n))
		if v == "" {
			return nil, false
		}
		vals = append(vals, v)
	}
	return vals, true
}

func missingParams(c echo.Context, names ...string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + strings.Join(names, "/") + " path param"})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidArgument:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindPermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Map domain errors → HTTP codes. Internal errors are logged, not echoed.
func writeError(c echo.Context, err error) error {
	if errors.Is(err, errNoPrincipal) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	}
	code := statusFor(apperr.KindOf(err))
	if code == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
