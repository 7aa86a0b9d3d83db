package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/repository/ports"
	"github.com/shakti-crm/shakti-backend/internal/util"
)

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeInvalid     = errors.New("employee details are invalid")
	ErrEmployeeWrongTenant = errors.New("employee belongs to a different company")
)

type EmployeeService struct {
	employees ports.EmployeeRepository
}

func NewEmployeeService(employees ports.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employees: employees}
}

type CreateEmployeeInput struct {
	Name   string
	Mobile string
	EmpID  string
	Email  *string
	Role   domain.EmployeeRole
	Status domain.EmployeeStatus
}

// Create adds a single employee with a generated one-time credential. The
// same field rules apply as for bulk import rows.
func (s *EmployeeService) Create(ctx context.Context, companyID uuid.UUID, input CreateEmployeeInput) (*domain.Employee, string, error) {
	row := domain.ImportRow{
		Name:   input.Name,
		Mobile: input.Mobile,
		EmpID:  input.EmpID,
		Role:   string(input.Role),
		Status: string(input.Status),
	}
	if input.Role == domain.EmployeeRoleAdmin {
		// Admins are provisioned outside the telecaller field rules; only
		// the basic fields need to be present.
		if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Mobile) == "" || strings.TrimSpace(input.EmpID) == "" {
			return nil, "", ErrEmployeeInvalid
		}
	} else if rowErr := validateRow(row, 0); rowErr != nil {
		return nil, "", errors.New(rowErr.Error)
	}

	tempPassword, err := util.GenerateTempPassword()
	if err != nil {
		return nil, "", err
	}
	hash, salt, err := util.DerivePassword(tempPassword)
	if err != nil {
		return nil, "", err
	}

	status := input.Status
	if status == "" {
		status = domain.EmployeeStatusActive
	}

	created, err := s.employees.Create(ctx, &domain.Employee{
		CompanyID:          companyID,
		Name:               strings.TrimSpace(input.Name),
		Mobile:             strings.TrimSpace(input.Mobile),
		EmpID:              strings.TrimSpace(input.EmpID),
		Email:              input.Email,
		Role:               input.Role,
		Status:             status,
		PasswordHash:       hash,
		PasswordSalt:       salt,
		MustChangePassword: true,
	})
	if err != nil {
		return nil, "", err
	}
	return created, tempPassword, nil
}

func (s *EmployeeService) List(ctx context.Context, companyID uuid.UUID) ([]domain.Employee, error) {
	return s.employees.ListByCompany(ctx, companyID)
}

func (s *EmployeeService) Get(ctx context.Context, companyID, id uuid.UUID) (*domain.Employee, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}
	if employee.CompanyID != companyID {
		return nil, ErrEmployeeWrongTenant
	}
	return employee, nil
}

func (s *EmployeeService) SetStatus(ctx context.Context, companyID, id uuid.UUID, status domain.EmployeeStatus) (*domain.Employee, error) {
	if status != domain.EmployeeStatusActive && status != domain.EmployeeStatusInactive {
		return nil, ErrEmployeeInvalid
	}
	if _, err := s.Get(ctx, companyID, id); err != nil {
		return nil, err
	}
	return s.employees.UpdateStatus(ctx, id, status)
}

func (s *EmployeeService) SetRole(ctx context.Context, companyID, id uuid.UUID, role domain.EmployeeRole) (*domain.Employee, error) {
	if role != domain.EmployeeRoleTelecaller && role != domain.EmployeeRoleTeamIncharge {
		return nil, ErrEmployeeInvalid
	}
	if _, err := s.Get(ctx, companyID, id); err != nil {
		return nil, err
	}
	return s.employees.UpdateRole(ctx, id, role)
}

func (s *EmployeeService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.Get(ctx, companyID, id); err != nil {
		return err
	}
	return s.employees.Delete(ctx, id)
}
