package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/service"
	"github.com/shakti-crm/shakti-backend/internal/util"
)

type CallHandler struct {
	service *service.CallService
}

func RegisterCalls(e *echo.Echo, auth *service.AuthService, svc *service.CallService) {
	handler := &CallHandler{service: svc}

	group := e.Group("/api/v1/cases/:id", RequireAuth(auth))
	group.POST("/calls", handler.logCall)
	group.POST("/collections", handler.logCollection)
	group.GET("/history", handler.history)
}

func (h *CallHandler) logCall(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid case id"))
	}

	var req struct {
		Disposition string     `json:"disposition"`
		Remarks     *string    `json:"remarks"`
		FollowUpAt  *time.Time `json:"follow_up_at"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	call, err := h.service.LogCall(c.Request().Context(), employee.CompanyID, employee.ID, service.LogCallInput{
		CaseID:      caseID,
		Disposition: domain.CallDisposition(req.Disposition),
		Remarks:     req.Remarks,
		FollowUpAt:  req.FollowUpAt,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("call", call))
}

func (h *CallHandler) logCollection(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid case id"))
	}

	var req struct {
		Amount      float64    `json:"amount"`
		Mode        string     `json:"mode"`
		ReceiptNo   *string    `json:"receipt_no"`
		CollectedAt *time.Time `json:"collected_at"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	collection, updatedCase, err := h.service.LogCollection(c.Request().Context(), employee.CompanyID, employee.ID, service.LogCollectionInput{
		CaseID:      caseID,
		Amount:      req.Amount,
		Mode:        domain.CollectionMode(req.Mode),
		ReceiptNo:   req.ReceiptNo,
		CollectedAt: req.CollectedAt,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"collection": collection,
		"case":       updatedCase,
	})
}

func (h *CallHandler) history(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid case id"))
	}

	calls, collections, err := h.service.CaseHistory(c.Request().Context(), employee.CompanyID, caseID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"calls":       calls,
		"collections": collections,
	})
}

func (h *CallHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrCaseNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrCallInvalid),
		errors.Is(err, service.ErrCollectionInvalid),
		errors.Is(err, service.ErrCollectionTooHigh):
		return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}
