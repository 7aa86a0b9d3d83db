package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

type CaseRepository interface {
	Create(ctx context.Context, c *domain.CustomerCase) (*domain.CustomerCase, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomerCase, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]domain.CustomerCase, error)
	ListByAssignee(ctx context.Context, employeeID uuid.UUID) ([]domain.CustomerCase, error)
	Assign(ctx context.Context, id uuid.UUID, teamID, employeeID *uuid.UUID) (*domain.CustomerCase, error)
	UpdateOutstanding(ctx context.Context, id uuid.UUID, outstanding float64, status domain.CaseStatus) (*domain.CustomerCase, error)
}
