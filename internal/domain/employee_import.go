package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportRow is one record parsed from an uploaded roster file, before any
// validation has run. Field values are kept exactly as parsed; trimming is the
// validator's concern.
type ImportRow struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	EmpID  string `json:"emp_id"`
	Role   string `json:"role"`
	Status string `json:"status,omitempty"`
}

// RowError records why a single row was not imported. Row is 1-based.
type RowError struct {
	Row   int       `json:"row"`
	Error string    `json:"error"`
	Data  ImportRow `json:"data"`
}

// ImportResult is the terminal outcome of one import call. Failed always
// equals len(Errors).
type ImportResult struct {
	Successful int        `json:"successful"`
	Failed     int        `json:"failed"`
	Errors     []RowError `json:"errors"`
}

type EmployeeImportStatus string

const (
	EmployeeImportStatusProcessing EmployeeImportStatus = "processing"
	EmployeeImportStatusCompleted  EmployeeImportStatus = "completed"
	EmployeeImportStatusFailed     EmployeeImportStatus = "failed"
)

type EmployeeImportRowStatus string

const (
	EmployeeImportRowStatusCreated EmployeeImportRowStatus = "created"
	EmployeeImportRowStatusFailed  EmployeeImportRowStatus = "failed"
)

type EmployeeImportJob struct {
	ID             uuid.UUID            `db:"id" json:"id"`
	CompanyID      uuid.UUID            `db:"company_id" json:"company_id"`
	UploadedBy     uuid.UUID            `db:"uploaded_by" json:"uploaded_by"`
	Status         EmployeeImportStatus `db:"status" json:"status"`
	FileKey        string               `db:"file_key" json:"file_key"`
	TotalRows      int                  `db:"total_rows" json:"total_rows"`
	SuccessfulRows int                  `db:"successful_rows" json:"successful_rows"`
	FailedRows     int                  `db:"failed_rows" json:"failed_rows"`
	SubmittedAt    time.Time            `db:"submitted_at" json:"submitted_at"`
	CompletedAt    *time.Time           `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt      time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `db:"updated_at" json:"updated_at"`

	Rows []EmployeeImportRowRecord `db:"-" json:"rows,omitempty"`
}

// EmployeeImportRowRecord is the persisted outcome of one processed row,
// kept so summaries and error sheets stay downloadable after the import call
// returns.
type EmployeeImportRowRecord struct {
	ID           uuid.UUID               `db:"id" json:"id"`
	JobID        uuid.UUID               `db:"job_id" json:"job_id"`
	RowNumber    int                     `db:"row_number" json:"row_number"`
	Status       EmployeeImportRowStatus `db:"status" json:"status"`
	ErrorMessage *string                 `db:"error" json:"error,omitempty"`
	Name         string                  `db:"name" json:"name"`
	Mobile       string                  `db:"mobile" json:"mobile"`
	EmpID        string                  `db:"emp_id" json:"emp_id"`
	Role         string                  `db:"role" json:"role"`
	RowStatus    string                  `db:"row_status" json:"row_status"`
	CreatedAt    time.Time               `db:"created_at" json:"created_at"`
}
