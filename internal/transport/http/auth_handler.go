package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shakti-crm/shakti-backend/internal/service"
	"github.com/shakti-crm/shakti-backend/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	e.POST("/api/v1/auth/login", handler.login)

	group := e.Group("/api/v1/auth", RequireAuth(auth))
	group.GET("/me", handler.me)
	group.POST("/change-password", handler.changePassword)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req struct {
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.Mobile == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Error("mobile and password are required"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Mobile, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmployeeInactive):
			return c.JSON(http.StatusForbidden, util.Error(err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"token":                result.Token,
		"employee":             result.Employee,
		"must_change_password": result.MustChangePassword,
	})
}

func (h *AuthHandler) me(c echo.Context) error {
	employee, ok := CurrentEmployee(c)
	if !ok || employee == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, util.Data("employee", employee))
}

func (h *AuthHandler) changePassword(c echo.Context) error {
	employee, ok := CurrentEmployee(c)
	if !ok || employee == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.ChangePassword(c.Request().Context(), employee, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		}
		return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, util.Message("password updated"))
}
