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

type EmployeeHandler struct {
	service *service.EmployeeService
}

func RegisterEmployees(e *echo.Echo, auth *service.AuthService, svc *service.EmployeeService) {
	handler := &EmployeeHandler{service: svc}

	group := e.Group("/api/v1/employees", RequireAuth(auth))
	group.GET("", handler.list, RequireRole(domain.EmployeeRoleAdmin, domain.EmployeeRoleTeamIncharge))
	group.GET("/:id", handler.get, RequireRole(domain.EmployeeRoleAdmin, domain.EmployeeRoleTeamIncharge))

	admin := e.Group("/api/v1/employees", RequireAuth(auth), RequireRole(domain.EmployeeRoleAdmin))
	admin.POST("", handler.create)
	admin.PATCH("/:id/status", handler.setStatus)
	admin.PATCH("/:id/role", handler.setRole)
	admin.DELETE("/:id", handler.remove)
}

func (h *EmployeeHandler) create(c echo.Context) error {
	employee, _ := CurrentEmployee(c)

	var req struct {
		Name   string  `json:"name"`
		Mobile string  `json:"mobile"`
		EmpID  string  `json:"emp_id"`
		Email  *string `json:"email"`
		Role   string  `json:"role"`
		Status string  `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	created, tempPassword, err := h.service.Create(c.Request().Context(), employee.CompanyID, service.CreateEmployeeInput{
		Name:   req.Name,
		Mobile: req.Mobile,
		EmpID:  req.EmpID,
		Email:  req.Email,
		Role:   domain.EmployeeRole(req.Role),
		Status: domain.EmployeeStatus(req.Status),
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"employee":      created,
		"temp_password": tempPassword,
	})
}

func (h *EmployeeHandler) list(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	employees, err := h.service.List(c.Request().Context(), employee.CompanyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
	return c.JSON(http.StatusOK, util.Data("employees", employees))
}

func (h *EmployeeHandler) get(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid employee id"))
	}
	found, err := h.service.Get(c.Request().Context(), employee.CompanyID, id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("employee", found))
}

func (h *EmployeeHandler) setStatus(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid employee id"))
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	updated, err := h.service.SetStatus(c.Request().Context(), employee.CompanyID, id, domain.EmployeeStatus(req.Status))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("employee", updated))
}

func (h *EmployeeHandler) setRole(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid employee id"))
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	updated, err := h.service.SetRole(c.Request().Context(), employee.CompanyID, id, domain.EmployeeRole(req.Role))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("employee", updated))
}

func (h *EmployeeHandler) remove(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid employee id"))
	}
	if err := h.service.Delete(c.Request().Context(), employee.CompanyID, id); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("employee deleted"))
}

func (h *EmployeeHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound), errors.Is(err, service.ErrEmployeeWrongTenant):
		return c.JSON(http.StatusNotFound, util.Error(service.ErrEmployeeNotFound.Error()))
	case errors.Is(err, service.ErrEmployeeInvalid):
		return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
	}
}
