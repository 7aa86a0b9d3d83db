package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/service"
	"github.com/shakti-crm/shakti-backend/internal/util"
)

const (
	contextEmployeeKey = "shakti.employee"
	contextTokenKey    = "shakti.token"
)

func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if strings.TrimSpace(authHeader) == "" {
				return c.JSON(http.StatusUnauthorized, util.Error("missing authorization header"))
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, util.Error("invalid authorization header"))
			}
			token := strings.TrimSpace(parts[1])
			employee, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
			}
			c.Set(contextEmployeeKey, employee)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

// RequireRole gates a route group to the given roles. It must run after
// RequireAuth.
func RequireRole(roles ...domain.EmployeeRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			employee, ok := CurrentEmployee(c)
			if !ok || employee == nil {
				return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
			}
			if !employee.HasRole(roles...) {
				return c.JSON(http.StatusForbidden, util.Error("insufficient privileges"))
			}
			return next(c)
		}
	}
}

func CurrentEmployee(c echo.Context) (*domain.Employee, bool) {
	employee, ok := c.Get(contextEmployeeKey).(*domain.Employee)
	return employee, ok
}
