package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/util"
)

func seedLoginEmployee(t *testing.T, repo *memoryEmployeeRepo, mobile, password string, status domain.EmployeeStatus) *domain.Employee {
	t.Helper()
	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		t.Fatalf("DerivePassword: %v", err)
	}
	employee := &domain.Employee{
		ID:                 uuid.New(),
		CompanyID:          uuid.New(),
		Name:               "Asha Verma",
		Mobile:             mobile,
		EmpID:              "EMP001",
		Role:               domain.EmployeeRoleTelecaller,
		Status:             status,
		PasswordHash:       hash,
		PasswordSalt:       salt,
		MustChangePassword: true,
	}
	repo.seed(employee)
	return employee
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	repo := newMemoryEmployeeRepo()
	employee := seedLoginEmployee(t, repo, "9876543210", "changeMe1", domain.EmployeeStatusActive)
	svc := NewAuthService(repo, util.NewJWTManager("test-secret", time.Hour))

	result, err := svc.Login(context.Background(), "9876543210", "changeMe1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if !result.MustChangePassword {
		t.Fatalf("imported employee should be forced to change password")
	}

	authed, err := svc.Authenticate(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if authed.ID != employee.ID {
		t.Fatalf("expected employee %s, got %s", employee.ID, authed.ID)
	}
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	repo := newMemoryEmployeeRepo()
	seedLoginEmployee(t, repo, "9876543210", "changeMe1", domain.EmployeeStatusActive)
	svc := NewAuthService(repo, util.NewJWTManager("test-secret", time.Hour))

	if _, err := svc.Login(context.Background(), "9876543210", "wrong-pass"); err != ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "0000000000", "changeMe1"); err != ErrInvalidCredentials {
		t.Fatalf("unknown mobile: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_InactiveEmployeeLosesAccess(t *testing.T) {
	repo := newMemoryEmployeeRepo()
	employee := seedLoginEmployee(t, repo, "9876543210", "changeMe1", domain.EmployeeStatusActive)
	svc := NewAuthService(repo, util.NewJWTManager("test-secret", time.Hour))

	result, err := svc.Login(context.Background(), "9876543210", "changeMe1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if _, err := repo.UpdateStatus(context.Background(), employee.ID, domain.EmployeeStatusInactive); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), result.Token); err != ErrEmployeeInactive {
		t.Fatalf("expected ErrEmployeeInactive for deactivated holder, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "9876543210", "changeMe1"); err != ErrEmployeeInactive {
		t.Fatalf("expected ErrEmployeeInactive on login, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newMemoryEmployeeRepo()
	employee := seedLoginEmployee(t, repo, "9876543210", "changeMe1", domain.EmployeeStatusActive)
	svc := NewAuthService(repo, util.NewJWTManager("test-secret", time.Hour))

	if err := svc.ChangePassword(context.Background(), employee, "wrong", "newPass99"); err != ErrInvalidCredentials {
		t.Fatalf("wrong current password: expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), employee, "changeMe1", "weak"); err == nil {
		t.Fatalf("weak new password should be rejected")
	}
	if err := svc.ChangePassword(context.Background(), employee, "changeMe1", "newPass99"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	updated, err := repo.FindByID(context.Background(), employee.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if updated.MustChangePassword {
		t.Fatalf("flag should clear after a successful change")
	}
	if !util.VerifyPassword("newPass99", updated.PasswordSalt, updated.PasswordHash) {
		t.Fatalf("new password should verify")
	}
}
