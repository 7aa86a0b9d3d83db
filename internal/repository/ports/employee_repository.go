package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	FindByMobile(ctx context.Context, mobile string) (*domain.Employee, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EmployeeStatus) (*domain.Employee, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.EmployeeRole) (*domain.Employee, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte, mustChange bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}
