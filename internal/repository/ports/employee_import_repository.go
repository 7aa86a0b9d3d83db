package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

type EmployeeImportRepository interface {
	CreateJob(ctx context.Context, job *domain.EmployeeImportJob) (*domain.EmployeeImportJob, error)
	UpdateJob(ctx context.Context, job *domain.EmployeeImportJob) (*domain.EmployeeImportJob, error)
	FindJobByID(ctx context.Context, id uuid.UUID) (*domain.EmployeeImportJob, error)
	InsertRow(ctx context.Context, row *domain.EmployeeImportRowRecord) (*domain.EmployeeImportRowRecord, error)
	ListRowsByJob(ctx context.Context, jobID uuid.UUID) ([]domain.EmployeeImportRowRecord, error)
}
