package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/service"
	"github.com/shakti-crm/shakti-backend/internal/util"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type EmployeeImportHandler struct {
	service       *service.EmployeeImportService
	maxUploadSize int64
}

func RegisterEmployeeImports(e *echo.Echo, auth *service.AuthService, svc *service.EmployeeImportService, maxUpload int64) {
	handler := &EmployeeImportHandler{
		service:       svc,
		maxUploadSize: maxUpload,
	}

	group := e.Group("/api/v1/admin/employee-imports", RequireAuth(auth), RequireRole(domain.EmployeeRoleAdmin))
	group.GET("/template", handler.template)
	group.POST("", handler.create)
	group.GET("/:id", handler.getJob)
	group.GET("/:id/errors", handler.downloadErrors)
}

func (h *EmployeeImportHandler) template(c echo.Context) error {
	data, err := service.BuildImportTemplate()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not generate template"))
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="employee-import-template.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, data)
}

func (h *EmployeeImportHandler) create(c echo.Context) error {
	employee, ok := CurrentEmployee(c)
	if !ok || employee == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("upload file is required"))
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}
	defer src.Close()

	limit := h.maxUploadSize
	if limit <= 0 {
		limit = 5 * 1024 * 1024
	}

	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("failed reading upload"))
	}
	if int64(len(data)) > limit {
		return c.JSON(http.StatusRequestEntityTooLarge, util.Error("upload exceeds size limit"))
	}

	job, result, credentials, err := h.service.Import(c.Request().Context(), employee.CompanyID, employee.ID, file.Filename, data)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"job":         buildImportJob(job),
		"result":      result,
		"credentials": credentials,
	})
}

func (h *EmployeeImportHandler) getJob(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid job id"))
	}
	job, err := h.service.GetJob(c.Request().Context(), jobID)
	if err != nil || job.CompanyID != employee.CompanyID {
		return c.JSON(http.StatusNotFound, util.Error("import job not found"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"job":  buildImportJob(job),
		"rows": buildImportRows(job.Rows),
	})
}

func (h *EmployeeImportHandler) downloadErrors(c echo.Context) error {
	employee, _ := CurrentEmployee(c)
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid job id"))
	}
	job, err := h.service.GetJob(c.Request().Context(), jobID)
	if err != nil || job.CompanyID != employee.CompanyID {
		return c.JSON(http.StatusNotFound, util.Error("import job not found"))
	}

	rowErrors := service.RowErrorsFromRecords(job.Rows)
	sheet, err := service.BuildErrorSheet(rowErrors)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not generate error sheet"))
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="employee-import-errors.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, sheet)
}

func (h *EmployeeImportHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrImportEmptyFile), errors.Is(err, service.ErrImportUnreadable):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrImportMissingColumns):
		return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
	case errors.Is(err, service.ErrImportTooLarge), errors.Is(err, service.ErrImportRowLimitExceeded):
		return c.JSON(http.StatusRequestEntityTooLarge, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}

func buildImportJob(job *domain.EmployeeImportJob) util.Envelope {
	resp := util.Envelope{
		"id":              job.ID,
		"uploaded_by":     job.UploadedBy,
		"status":          job.Status,
		"file_key":        job.FileKey,
		"total_rows":      job.TotalRows,
		"successful_rows": job.SuccessfulRows,
		"failed_rows":     job.FailedRows,
		"submitted_at":    job.SubmittedAt,
		"created_at":      job.CreatedAt,
		"updated_at":      job.UpdatedAt,
	}
	if job.CompletedAt != nil {
		resp["completed_at"] = *job.CompletedAt
	}
	return resp
}

func buildImportRows(rows []domain.EmployeeImportRowRecord) []util.Envelope {
	resp := make([]util.Envelope, 0, len(rows))
	for _, row := range rows {
		item := util.Envelope{
			"id":         row.ID,
			"row_number": row.RowNumber,
			"status":     row.Status,
			"name":       row.Name,
			"mobile":     row.Mobile,
			"emp_id":     row.EmpID,
			"role":       row.Role,
			"created_at": row.CreatedAt,
		}
		if row.ErrorMessage != nil {
			item["error"] = *row.ErrorMessage
		}
		resp = append(resp, item)
	}
	return resp
}
