package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/repository/ports"
	"github.com/shakti-crm/shakti-backend/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid mobile or password")
	ErrEmployeeInactive   = errors.New("employee account is inactive")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthService struct {
	employees ports.EmployeeRepository
	tokens    *util.JWTManager
}

func NewAuthService(employees ports.EmployeeRepository, tokens *util.JWTManager) *AuthService {
	return &AuthService{employees: employees, tokens: tokens}
}

type LoginResult struct {
	Token              string          `json:"token"`
	Employee           domain.Employee `json:"employee"`
	MustChangePassword bool            `json:"must_change_password"`
}

func (s *AuthService) Login(ctx context.Context, mobile, password string) (*LoginResult, error) {
	employee, err := s.employees.FindByMobile(ctx, strings.TrimSpace(mobile))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !util.VerifyPassword(password, employee.PasswordSalt, employee.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !employee.IsActive() {
		return nil, ErrEmployeeInactive
	}

	token, _, err := s.tokens.Generate(employee.ID, employee.CompanyID, string(employee.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:              token,
		Employee:           *employee,
		MustChangePassword: employee.MustChangePassword,
	}, nil
}

// Authenticate resolves the bearer token presented on a request back to the
// employee record, re-checking status so a deactivated employee loses access
// before their token expires.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Employee, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	employee, err := s.employees.FindByID(ctx, claims.EmployeeID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !employee.IsActive() {
		return nil, ErrEmployeeInactive
	}
	return employee, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, employee *domain.Employee, currentPassword, newPassword string) error {
	if !util.VerifyPassword(currentPassword, employee.PasswordSalt, employee.PasswordHash) {
		return ErrInvalidCredentials
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	return s.employees.UpdatePassword(ctx, employee.ID, hash, salt, false)
}
