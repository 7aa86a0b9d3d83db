package domain

import (
	"time"

	"github.com/google/uuid"
)

type EmployeeRole string

const (
	EmployeeRoleAdmin        EmployeeRole = "Admin"
	EmployeeRoleTeamIncharge EmployeeRole = "TeamIncharge"
	EmployeeRoleTelecaller   EmployeeRole = "Telecaller"
)

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

type Employee struct {
	ID                 uuid.UUID      `db:"id" json:"id"`
	CompanyID          uuid.UUID      `db:"company_id" json:"company_id"`
	Name               string         `db:"name" json:"name"`
	Mobile             string         `db:"mobile" json:"mobile"`
	EmpID              string         `db:"emp_id" json:"emp_id"`
	Email              *string        `db:"email" json:"email,omitempty"`
	Role               EmployeeRole   `db:"role" json:"role"`
	Status             EmployeeStatus `db:"status" json:"status"`
	PasswordHash       []byte         `db:"password_hash" json:"-"`
	PasswordSalt       []byte         `db:"password_salt" json:"-"`
	MustChangePassword bool           `db:"must_change_password" json:"must_change_password"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

func (e *Employee) HasRole(roles ...EmployeeRole) bool {
	for _, role := range roles {
		if e.Role == role {
			return true
		}
	}
	return false
}
