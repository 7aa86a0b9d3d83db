package domain

import (
	"time"

	"github.com/google/uuid"
)

type CaseStatus string

const (
	CaseStatusOpen    CaseStatus = "open"
	CaseStatusClosed  CaseStatus = "closed"
	CaseStatusSettled CaseStatus = "settled"
)

type CustomerCase struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	CompanyID      uuid.UUID  `db:"company_id" json:"company_id"`
	ProductID      *uuid.UUID `db:"product_id" json:"product_id,omitempty"`
	TeamID         *uuid.UUID `db:"team_id" json:"team_id,omitempty"`
	AssignedTo     *uuid.UUID `db:"assigned_to" json:"assigned_to,omitempty"`
	CustomerName   string     `db:"customer_name" json:"customer_name"`
	CustomerMobile string     `db:"customer_mobile" json:"customer_mobile"`
	LoanAccountNo  string     `db:"loan_account_no" json:"loan_account_no"`
	Outstanding    float64    `db:"outstanding_amount" json:"outstanding_amount"`
	Status         CaseStatus `db:"status" json:"status"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
