package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/repository/ports"
)

var (
	ErrTeamNotFound      = errors.New("team not found")
	ErrTeamNameRequired  = errors.New("team name is required")
	ErrMemberNotEligible = errors.New("team members must be active telecallers of the same company")
)

type TeamService struct {
	teams     ports.TeamRepository
	employees ports.EmployeeRepository
}

func NewTeamService(teams ports.TeamRepository, employees ports.EmployeeRepository) *TeamService {
	return &TeamService{teams: teams, employees: employees}
}

func (s *TeamService) Create(ctx context.Context, companyID, inchargeID uuid.UUID, name string, target float64) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	incharge, err := s.employees.FindByID(ctx, inchargeID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}
	if incharge.CompanyID != companyID || !incharge.HasRole(domain.EmployeeRoleTeamIncharge, domain.EmployeeRoleAdmin) {
		return nil, ErrMemberNotEligible
	}
	return s.teams.Create(ctx, &domain.Team{
		CompanyID:    companyID,
		Name:         name,
		InchargeID:   inchargeID,
		TargetAmount: target,
	})
}

func (s *TeamService) Get(ctx context.Context, companyID, id uuid.UUID) (*domain.Team, error) {
	team, err := s.teams.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTeamNotFound
	}
	if team.CompanyID != companyID {
		return nil, ErrTeamNotFound
	}
	members, err := s.teams.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	team.Members = members
	return team, nil
}

func (s *TeamService) List(ctx context.Context, companyID uuid.UUID) ([]domain.Team, error) {
	return s.teams.ListByCompany(ctx, companyID)
}

func (s *TeamService) SetTarget(ctx context.Context, companyID, id uuid.UUID, target float64) (*domain.Team, error) {
	if _, err := s.Get(ctx, companyID, id); err != nil {
		return nil, err
	}
	return s.teams.UpdateTarget(ctx, id, target)
}

// AddMember enforces the assignment rule: only active telecallers of the
// team's company can be assigned.
func (s *TeamService) AddMember(ctx context.Context, companyID, teamID, employeeID uuid.UUID) error {
	team, err := s.Get(ctx, companyID, teamID)
	if err != nil {
		return err
	}
	employee, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return ErrEmployeeNotFound
	}
	if employee.CompanyID != team.CompanyID {
		return ErrMemberNotEligible
	}
	if !employee.HasRole(domain.EmployeeRoleTelecaller) || !employee.IsActive() {
		return ErrMemberNotEligible
	}
	return s.teams.AddMember(ctx, teamID, employeeID)
}

func (s *TeamService) RemoveMember(ctx context.Context, companyID, teamID, employeeID uuid.UUID) error {
	if _, err := s.Get(ctx, companyID, teamID); err != nil {
		return err
	}
	return s.teams.RemoveMember(ctx, teamID, employeeID)
}
