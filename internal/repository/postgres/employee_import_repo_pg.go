package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

type EmployeeImportRepository struct {
	db *sqlx.DB
}

func NewEmployeeImportRepo(db *sqlx.DB) *EmployeeImportRepository {
	return &EmployeeImportRepository{db: db}
}

func (r *EmployeeImportRepository) CreateJob(ctx context.Context, job *domain.EmployeeImportJob) (*domain.EmployeeImportJob, error) {
	const query = `
		INSERT INTO employee_import_job (
			id, company_id, uploaded_by, status, file_key,
			total_rows, successful_rows, failed_rows,
			submitted_at, completed_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, NOW(), NOW()
		)
		RETURNING id, company_id, uploaded_by, status, file_key,
		          total_rows, successful_rows, failed_rows,
		          submitted_at, completed_at, created_at, updated_at
	`

	var inserted domain.EmployeeImportJob
	if err := r.db.GetContext(ctx, &inserted, query,
		job.ID,
		job.CompanyID,
		job.UploadedBy,
		job.Status,
		job.FileKey,
		job.TotalRows,
		job.SuccessfulRows,
		job.FailedRows,
		job.SubmittedAt,
		nullTimePtr(job.CompletedAt),
	); err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (r *EmployeeImportRepository) UpdateJob(ctx context.Context, job *domain.EmployeeImportJob) (*domain.EmployeeImportJob, error) {
	const query = `
		UPDATE employee_import_job
		SET status = $2,
		    file_key = $3,
		    total_rows = $4,
		    successful_rows = $5,
		    failed_rows = $6,
		    submitted_at = $7,
		    completed_at = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, company_id, uploaded_by, status, file_key,
		          total_rows, successful_rows, failed_rows,
		          submitted_at, completed_at, created_at, updated_at
	`

	var updated domain.EmployeeImportJob
	if err := r.db.GetContext(ctx, &updated, query,
		job.ID,
		job.Status,
		job.FileKey,
		job.TotalRows,
		job.SuccessfulRows,
		job.FailedRows,
		job.SubmittedAt,
		nullTimePtr(job.CompletedAt),
	); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *EmployeeImportRepository) FindJobByID(ctx context.Context, id uuid.UUID) (*domain.EmployeeImportJob, error) {
	const query = `
		SELECT id, company_id, uploaded_by, status, file_key,
		       total_rows, successful_rows, failed_rows,
		       submitted_at, completed_at, created_at, updated_at
		FROM employee_import_job
		WHERE id = $1
	`

	var job domain.EmployeeImportJob
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *EmployeeImportRepository) InsertRow(ctx context.Context, row *domain.EmployeeImportRowRecord) (*domain.EmployeeImportRowRecord, error) {
	const query = `
		INSERT INTO employee_import_row (
			job_id, row_number, status, error, name, mobile, emp_id, role, row_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING id, job_id, row_number, status, error, name, mobile, emp_id, role, row_status, created_at
	`

	var inserted domain.EmployeeImportRowRecord
	if err := r.db.GetContext(ctx, &inserted, query,
		row.JobID,
		row.RowNumber,
		row.Status,
		nullStringPtr(row.ErrorMessage),
		row.Name,
		row.Mobile,
		row.EmpID,
		row.Role,
		row.RowStatus,
	); err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (r *EmployeeImportRepository) ListRowsByJob(ctx context.Context, jobID uuid.UUID) ([]domain.EmployeeImportRowRecord, error) {
	const query = `
		SELECT id, job_id, row_number, status, error, name, mobile, emp_id, role, row_status, created_at
		FROM employee_import_row
		WHERE job_id = $1
		ORDER BY id ASC
	`
	rows := make([]domain.EmployeeImportRowRecord, 0)
	if err := r.db.SelectContext(ctx, &rows, query, jobID); err != nil {
		return nil, err
	}
	return rows, nil
}

func nullStringPtr(ptr *string) sql.NullString {
	if ptr == nil || *ptr == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *ptr, Valid: true}
}

func nullTimePtr(ptr *time.Time) sql.NullTime {
	if ptr == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *ptr, Valid: true}
}
