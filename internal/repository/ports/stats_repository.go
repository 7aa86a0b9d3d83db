package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

type StatsRepository interface {
	CompanySummary(ctx context.Context, companyID uuid.UUID) (*domain.CompanySummary, error)
	TeamSummary(ctx context.Context, teamID uuid.UUID) (*domain.TeamSummary, error)
	TelecallerSummary(ctx context.Context, employeeID uuid.UUID) (*domain.TelecallerSummary, error)
}
