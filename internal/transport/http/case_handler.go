package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/service"
	"github.com/shakti-crm/shakti-backend/internal/util"
)

type CaseHandler struct {
	service *service.CaseService
}

func RegisterCases(e *echo.Echo, auth *service.AuthService, svc *service.CaseService) {
	handler := &CaseHandler{service: svc}

	group := e.Group("/api/v1/cases", RequireAuth(auth))
	group.GET("/assigned", handler.listAssigned)
	group.GET("/:id", handler.get)

	staff := e.Group("/api/v1/cases", RequireAuth(auth), RequireRole(domain.EmployeeRoleAdmin, domain.EmployeeRoleTeamIncharge))
	staff.GET("", handler.list)
	staff.POST("", handler.create)
	staff.PATCH("/:id/assign", handler.assign)
}

func (h *CaseHandler) create(c echo.Context) error {
	employee, _ := CurrentEmployee(c)

	var req struct {
		ProductID      *uuid.UUID `json:"product_id"`
		CustomerName   string     `json:"customer_name"`
		CustomerMobile string     `json:"customer_mobile"`
		LoanAccountNo  string     `json:"loan_account_no"`
		Outstanding    float64    `json:"outstanding_amount"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	created, err := h.service.Create(c.Request().Context(), employee.CompanyID, service.CreateCaseInput{
		ProductID:      req.ProductID,
		CustomerName:   req.CustomerName,
		CustomerMobile: req.CustomerMobile,
		LoanAccountNo:  req.LoanAccountNo,
		Outstanding:    req.Outstanding,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("case", created))
}

func (h *CaseHandler) list(c echo.Context) error {
	employee, _ := CurrentEmployee(c)

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	cases, err := h.service.List(c.Request().Context(), employee.CompanyID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
	return c.JSON(http.StatusOK, util.Data("cases", cases))
}

func (h *CaseHandler) listAssigned(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	cases, err := h.service.ListAssigned(c.Request().Context(), employee.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
	return c.JSON(http.StatusOK, util.Data("cases", cases))
}

func (h *CaseHandler) get(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid case id"))
	}
	found, err := h.service.Get(c.Request().Context(), employee.CompanyID, id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("case", found))
}

func (h *CaseHandler) assign(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid case id"))
	}

	var req struct {
		TeamID     *uuid.UUID `json:"team_id"`
		EmployeeID *uuid.UUID `json:"employee_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	updated, err := h.service.Assign(c.Request().Context(), employee.CompanyID, id, req.TeamID, req.EmployeeID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("case", updated))
}

func (h *CaseHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrCaseNotFound), errors.Is(err, service.ErrEmployeeNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrCaseInvalid), errors.Is(err, service.ErrMemberNotEligible):
		return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}
