package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/service"
)

type fakeImportJobs struct {
	jobs map[uuid.UUID]*domain.EmployeeImportJob
	rows []domain.EmployeeImportRowRecord
}

func newFakeImportJobs() *fakeImportJobs {
	return &fakeImportJobs{jobs: make(map[uuid.UUID]*domain.EmployeeImportJob)}
}

func (f *fakeImportJobs) CreateJob(ctx context.Context, job *domain.EmployeeImportJob) (*domain.EmployeeImportJob, error) {
	clone := *job
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	f.jobs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeImportJobs) UpdateJob(ctx context.Context, job *domain.EmployeeImportJob) (*domain.EmployeeImportJob, error) {
	clone := *job
	f.jobs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeImportJobs) FindJobByID(ctx context.Context, id uuid.UUID) (*domain.EmployeeImportJob, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *job
	return &clone, nil
}

func (f *fakeImportJobs) InsertRow(ctx context.Context, row *domain.EmployeeImportRowRecord) (*domain.EmployeeImportRowRecord, error) {
	inserted := *row
	inserted.ID = uuid.New()
	f.rows = append(f.rows, inserted)
	return &inserted, nil
}

func (f *fakeImportJobs) ListRowsByJob(ctx context.Context, jobID uuid.UUID) ([]domain.EmployeeImportRowRecord, error) {
	out := make([]domain.EmployeeImportRowRecord, 0)
	for _, row := range f.rows {
		if row.JobID == jobID {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeEmployees struct {
	employees []domain.Employee
}

func (f *fakeEmployees) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	clone := *employee
	clone.ID = uuid.New()
	f.employees = append(f.employees, clone)
	return &clone, nil
}

func (f *fakeEmployees) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Employee, error) {
	out := make([]domain.Employee, 0)
	for _, e := range f.employees {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployees) FindByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeEmployees) FindByMobile(ctx context.Context, mobile string) (*domain.Employee, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeEmployees) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EmployeeStatus) (*domain.Employee, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeEmployees) UpdateRole(ctx context.Context, id uuid.UUID, role domain.EmployeeRole) (*domain.Employee, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeEmployees) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte, mustChange bool) error {
	return nil
}

func (f *fakeEmployees) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func newImportHandlerForTest() (*EmployeeImportHandler, *fakeEmployees) {
	employees := &fakeEmployees{}
	svc := service.NewEmployeeImportService(newFakeImportJobs(), employees, nil, nil, service.EmployeeImportServiceConfig{
		MaxRows:      500,
		MaxFileBytes: 1024 * 1024,
	})
	return &EmployeeImportHandler{service: svc, maxUploadSize: 1024 * 1024}, employees
}

func uploadContext(t *testing.T, filename, contents string, employee *domain.Employee) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := io.Copy(part, strings.NewReader(contents)); err != nil {
		t.Fatalf("writing multipart body: %v", err)
	}
	writer.Close()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/employee-imports", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(contextEmployeeKey, employee)
	return c, rec
}

func TestEmployeeImportHandler_Create(t *testing.T) {
	handler, employees := newImportHandlerForTest()
	admin := &domain.Employee{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Role:      domain.EmployeeRoleAdmin,
		Status:    domain.EmployeeStatusActive,
	}

	csvData := strings.Join([]string{
		"Name,Mobile,EMP ID,Role,Status",
		"Asha Verma,9876543210,EMP001,Telecaller,active",
		"Bad Row,12,EMP002,Telecaller,active",
	}, "\n")

	c, rec := uploadContext(t, "roster.csv", csvData, admin)
	if err := handler.create(c); err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Result struct {
			Successful int `json:"successful"`
			Failed     int `json:"failed"`
		} `json:"result"`
		Credentials []struct {
			TempPassword string `json:"temp_password"`
		} `json:"credentials"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Result.Successful != 1 || resp.Result.Failed != 1 {
		t.Fatalf("expected 1/1, got %d/%d", resp.Result.Successful, resp.Result.Failed)
	}
	if len(resp.Credentials) != 1 || resp.Credentials[0].TempPassword == "" {
		t.Fatalf("expected one credential with a temp password, got %+v", resp.Credentials)
	}
	if len(employees.employees) != 1 {
		t.Fatalf("expected one created employee, got %d", len(employees.employees))
	}
}

func TestEmployeeImportHandler_CreateMapsSentinelErrors(t *testing.T) {
	handler, _ := newImportHandlerForTest()
	admin := &domain.Employee{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Role:      domain.EmployeeRoleAdmin,
		Status:    domain.EmployeeStatusActive,
	}

	c, rec := uploadContext(t, "cols.csv", "Name,Mobile\nAsha,9876543210", admin)
	if err := handler.create(c); err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing columns should map to 422, got %d", rec.Code)
	}
}

func TestEmployeeImportHandler_GetJobScopedToCompany(t *testing.T) {
	handler, _ := newImportHandlerForTest()
	admin := &domain.Employee{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Role:      domain.EmployeeRoleAdmin,
		Status:    domain.EmployeeStatusActive,
	}

	csvData := "Name,Mobile,EMP ID,Role,Status\nAsha Verma,9876543210,EMP001,Telecaller,active"
	c, rec := uploadContext(t, "roster.csv", csvData, admin)
	if err := handler.create(c); err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	var resp struct {
		Job struct {
			ID uuid.UUID `json:"id"`
		} `json:"job"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	getRec := httptest.NewRecorder()
	getCtx := e.NewContext(req, getRec)
	getCtx.SetParamNames("id")
	getCtx.SetParamValues(resp.Job.ID.String())
	getCtx.Set(contextEmployeeKey, admin)
	if err := handler.getJob(getCtx); err != nil {
		t.Fatalf("getJob returned error: %v", err)
	}
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getRec.Code)
	}

	outsider := &domain.Employee{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Role:      domain.EmployeeRoleAdmin,
		Status:    domain.EmployeeStatusActive,
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	foreignRec := httptest.NewRecorder()
	foreignCtx := e.NewContext(req, foreignRec)
	foreignCtx.SetParamNames("id")
	foreignCtx.SetParamValues(resp.Job.ID.String())
	foreignCtx.Set(contextEmployeeKey, outsider)
	if err := handler.getJob(foreignCtx); err != nil {
		t.Fatalf("getJob returned error: %v", err)
	}
	if foreignRec.Code != http.StatusNotFound {
		t.Fatalf("foreign company must not see the job, got %d", foreignRec.Code)
	}
}

func TestEmployeeImportHandler_Template(t *testing.T) {
	handler, _ := newImportHandlerForTest()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/employee-imports/template", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.template(c); err != nil {
		t.Fatalf("template returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != xlsxMIME {
		t.Fatalf("unexpected content type %q", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Fatalf("template should be an XLSX workbook")
	}
}
