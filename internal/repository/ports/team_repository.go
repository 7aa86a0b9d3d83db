package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) (*domain.Team, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Team, error)
	UpdateTarget(ctx context.Context, id uuid.UUID, target float64) (*domain.Team, error)
	AddMember(ctx context.Context, teamID, employeeID uuid.UUID) error
	RemoveMember(ctx context.Context, teamID, employeeID uuid.UUID) error
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.Employee, error)
}
