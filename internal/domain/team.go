package domain

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	CompanyID    uuid.UUID  `db:"company_id" json:"company_id"`
	Name         string     `db:"name" json:"name"`
	InchargeID   uuid.UUID  `db:"incharge_id" json:"incharge_id"`
	TargetAmount float64    `db:"target_amount" json:"target_amount"`
	TargetMonth  *time.Time `db:"target_month" json:"target_month,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`

	Members []Employee `db:"-" json:"members,omitempty"`
}

type TeamMember struct {
	TeamID     uuid.UUID `db:"team_id" json:"team_id"`
	EmployeeID uuid.UUID `db:"employee_id" json:"employee_id"`
	AddedAt    time.Time `db:"added_at" json:"added_at"`
}
