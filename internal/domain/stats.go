package domain

import (
	"time"

	"github.com/google/uuid"
)

type CompanySummary struct {
	TotalEmployees     int     `db:"total_employees" json:"total_employees"`
	ActiveTelecallers  int     `db:"active_telecallers" json:"active_telecallers"`
	TeamIncharges      int     `db:"team_incharges" json:"team_incharges"`
	OpenCases          int     `db:"open_cases" json:"open_cases"`
	CollectedThisMonth float64 `db:"collected_this_month" json:"collected_this_month"`
}

type TeamSummary struct {
	TeamID         uuid.UUID `db:"team_id" json:"team_id"`
	Members        int       `db:"members" json:"members"`
	TargetAmount   float64   `db:"target_amount" json:"target_amount"`
	Collected      float64   `db:"collected" json:"collected"`
	CallsThisMonth int       `db:"calls_this_month" json:"calls_this_month"`
}

type TelecallerSummary struct {
	EmployeeID     uuid.UUID  `db:"employee_id" json:"employee_id"`
	CallsToday     int        `db:"calls_today" json:"calls_today"`
	CollectedToday float64    `db:"collected_today" json:"collected_today"`
	AssignedCases  int        `db:"assigned_cases" json:"assigned_cases"`
	NextFollowUp   *time.Time `db:"next_follow_up" json:"next_follow_up,omitempty"`
}
