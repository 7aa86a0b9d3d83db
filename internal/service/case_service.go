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
	ErrCaseNotFound = errors.New("case not found")
	ErrCaseInvalid  = errors.New("case details are invalid")
)

type CaseService struct {
	cases     ports.CaseRepository
	employees ports.EmployeeRepository
}

func NewCaseService(cases ports.CaseRepository, employees ports.EmployeeRepository) *CaseService {
	return &CaseService{cases: cases, employees: employees}
}

type CreateCaseInput struct {
	ProductID      *uuid.UUID
	CustomerName   string
	CustomerMobile string
	LoanAccountNo  string
	Outstanding    float64
}

func (s *CaseService) Create(ctx context.Context, companyID uuid.UUID, input CreateCaseInput) (*domain.CustomerCase, error) {
	if strings.TrimSpace(input.CustomerName) == "" || strings.TrimSpace(input.CustomerMobile) == "" {
		return nil, ErrCaseInvalid
	}
	if input.Outstanding < 0 {
		return nil, ErrCaseInvalid
	}
	return s.cases.Create(ctx, &domain.CustomerCase{
		CompanyID:      companyID,
		ProductID:      input.ProductID,
		CustomerName:   strings.TrimSpace(input.CustomerName),
		CustomerMobile: strings.TrimSpace(input.CustomerMobile),
		LoanAccountNo:  strings.TrimSpace(input.LoanAccountNo),
		Outstanding:    input.Outstanding,
		Status:         domain.CaseStatusOpen,
	})
}

func (s *CaseService) Get(ctx context.Context, companyID, id uuid.UUID) (*domain.CustomerCase, error) {
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCaseNotFound
	}
	if c.CompanyID != companyID {
		return nil, ErrCaseNotFound
	}
	return c, nil
}

func (s *CaseService) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]domain.CustomerCase, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.cases.ListByCompany(ctx, companyID, limit, offset)
}

func (s *CaseService) ListAssigned(ctx context.Context, employeeID uuid.UUID) ([]domain.CustomerCase, error) {
	return s.cases.ListByAssignee(ctx, employeeID)
}

// Assign hands a case to a team and optionally a specific telecaller. The
// telecaller must belong to the same company.
func (s *CaseService) Assign(ctx context.Context, companyID, id uuid.UUID, teamID, employeeID *uuid.UUID) (*domain.CustomerCase, error) {
	if _, err := s.Get(ctx, companyID, id); err != nil {
		return nil, err
	}
	if employeeID != nil {
		employee, err := s.employees.FindByID(ctx, *employeeID)
		if err != nil {
			return nil, ErrEmployeeNotFound
		}
		if employee.CompanyID != companyID || !employee.HasRole(domain.EmployeeRoleTelecaller) {
			return nil, ErrMemberNotEligible
		}
	}
	return s.cases.Assign(ctx, id, teamID, employeeID)
}
