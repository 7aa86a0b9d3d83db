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

type ProductHandler struct {
	service *service.ProductService
}

func RegisterProducts(e *echo.Echo, auth *service.AuthService, svc *service.ProductService) {
	handler := &ProductHandler{service: svc}

	group := e.Group("/api/v1/products", RequireAuth(auth))
	group.GET("", handler.list)
	group.GET("/:id", handler.get)

	admin := e.Group("/api/v1/products", RequireAuth(auth), RequireRole(domain.EmployeeRoleAdmin))
	admin.POST("", handler.create)
	admin.PATCH("/:id", handler.update)
	admin.DELETE("/:id", handler.remove)
}

func (h *ProductHandler) create(c echo.Context) error {
	employee, _ := CurrentEmployee(c)

	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	product, err := h.service.Create(c.Request().Context(), employee.CompanyID, req.Name, req.Description)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("product", product))
}

func (h *ProductHandler) list(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	products, err := h.service.List(c.Request().Context(), employee.CompanyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
	return c.JSON(http.StatusOK, util.Data("products", products))
}

func (h *ProductHandler) get(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid product id"))
	}
	product, err := h.service.Get(c.Request().Context(), employee.CompanyID, id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("product", product))
}

func (h *ProductHandler) update(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid product id"))
	}

	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	product, err := h.service.Update(c.Request().Context(), employee.CompanyID, id, req.Name, req.Description)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("product", product))
}

func (h *ProductHandler) remove(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid product id"))
	}
	if err := h.service.Delete(c.Request().Context(), employee.CompanyID, id); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("product deleted"))
}

func (h *ProductHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrProductNameRequired):
		return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}
