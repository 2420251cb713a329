package http

import (
	"net/http"

	"prestamos-backend/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{ uc *user.Usecase }

func NewUserHandler(uc *user.Usecase) *UserHandler { return &UserHandler{uc: uc} }

type updateRoleReq struct {
	Role string `json:"role" validate:"required"`
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	if _, err := principal(c); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateRole: role validity is checked by the usecase after the admin check.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err)
	}
	ids, ok := params(c, "user_id")
	if !ok {
		return missingParams(c, "user_id")
	}
	var req updateRoleReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if err := h.uc.UpdateRole(c.Request().Context(), p, ids[0], req.Role); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
