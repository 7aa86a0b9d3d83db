package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/service"
	"github.com/shakti-crm/shakti-backend/internal/util"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func RegisterDashboard(e *echo.Echo, auth *service.AuthService, svc *service.DashboardService) {
	handler := &DashboardHandler{service: svc}

	group := e.Group("/api/v1/dashboard", RequireAuth(auth))
	group.GET("/company", handler.company, RequireRole(domain.EmployeeRoleAdmin))
	group.GET("/teams/:id", handler.team, RequireRole(domain.EmployeeRoleAdmin, domain.EmployeeRoleTeamIncharge))
	group.GET("/me", handler.telecaller)
}

func (h *DashboardHandler) company(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	summary, err := h.service.CompanySummary(c.Request().Context(), employee.CompanyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
	return c.JSON(http.StatusOK, util.Data("summary", summary))
}

func (h *DashboardHandler) team(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid team id"))
	}
	summary, err := h.service.TeamSummary(c.Request().Context(), employee.CompanyID, teamID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
	return c.JSON(http.StatusOK, util.Data("summary", summary))
}

func (h *DashboardHandler) telecaller(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	summary, err := h.service.TelecallerSummary(c.Request().Context(), employee.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
	return c.JSON(http.StatusOK, util.Data("summary", summary))
}
