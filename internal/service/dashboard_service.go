package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/repository/ports"
)

type DashboardService struct {
	stats ports.StatsRepository
	teams ports.TeamRepository
}

func NewDashboardService(stats ports.StatsRepository, teams ports.TeamRepository) *DashboardService {
	return &DashboardService{stats: stats, teams: teams}
}

func (s *DashboardService) CompanySummary(ctx context.Context, companyID uuid.UUID) (*domain.CompanySummary, error) {
	return s.stats.CompanySummary(ctx, companyID)
}

func (s *DashboardService) TeamSummary(ctx context.Context, companyID, teamID uuid.UUID) (*domain.TeamSummary, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, ErrTeamNotFound
	}
	if team.CompanyID != companyID {
		return nil, ErrTeamNotFound
	}
	return s.stats.TeamSummary(ctx, teamID)
}

func (s *DashboardService) TelecallerSummary(ctx context.Context, employeeID uuid.UUID) (*domain.TelecallerSummary, error) {
	return s.stats.TelecallerSummary(ctx, employeeID)
}
