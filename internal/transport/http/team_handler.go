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

type TeamHandler struct {
	service *service.TeamService
}

func RegisterTeams(e *echo.Echo, auth *service.AuthService, svc *service.TeamService) {
	handler := &TeamHandler{service: svc}

	group := e.Group("/api/v1/teams", RequireAuth(auth))
	group.GET("", handler.list, RequireRole(domain.EmployeeRoleAdmin, domain.EmployeeRoleTeamIncharge))
	group.GET("/:id", handler.get, RequireRole(domain.EmployeeRoleAdmin, domain.EmployeeRoleTeamIncharge))

	admin := e.Group("/api/v1/teams", RequireAuth(auth), RequireRole(domain.EmployeeRoleAdmin))
	admin.POST("", handler.create)
	admin.PATCH("/:id/target", handler.setTarget)
	admin.POST("/:id/members", handler.addMember)
	admin.DELETE("/:id/members/:employeeID", handler.removeMember)
}

func (h *TeamHandler) create(c echo.Context) error {
	employee, _ := CurrentEmployee(c)

	var req struct {
		Name       string    `json:"name"`
		InchargeID uuid.UUID `json:"incharge_id"`
		Target     float64   `json:"target_amount"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	team, err := h.service.Create(c.Request().Context(), employee.CompanyID, req.InchargeID, req.Name, req.Target)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("team", team))
}

func (h *TeamHandler) list(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	teams, err := h.service.List(c.Request().Context(), employee.CompanyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
	return c.JSON(http.StatusOK, util.Data("teams", teams))
}

func (h *TeamHandler) get(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid team id"))
	}
	team, err := h.service.Get(c.Request().Context(), employee.CompanyID, id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("team", team))
}

func (h *TeamHandler) setTarget(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid team id"))
	}

	var req struct {
		Target float64 `json:"target_amount"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	team, err := h.service.SetTarget(c.Request().Context(), employee.CompanyID, id, req.Target)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("team", team))
}

func (h *TeamHandler) addMember(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid team id"))
	}

	var req struct {
		EmployeeID uuid.UUID `json:"employee_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.service.AddMember(c.Request().Context(), employee.CompanyID, id, req.EmployeeID); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("member added"))
}

func (h *TeamHandler) removeMember(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid team id"))
	}
	memberID, err := uuid.Parse(c.Param("employeeID"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid employee id"))
	}
	if err := h.service.RemoveMember(c.Request().Context(), employee.CompanyID, id, memberID); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("member removed"))
}

func (h *TeamHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrTeamNameRequired), errors.Is(err, service.ErrMemberNotEligible):
		return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}
