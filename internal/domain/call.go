package domain

import (
	"time"

	"github.com/google/uuid"
)

type CallDisposition string

const (
	CallDispositionConnected    CallDisposition = "connected"
	CallDispositionNoAnswer     CallDisposition = "no_answer"
	CallDispositionBusy         CallDisposition = "busy"
	CallDispositionWrongNumber  CallDisposition = "wrong_number"
	CallDispositionPromiseToPay CallDisposition = "promise_to_pay"
	CallDispositionPaid         CallDisposition = "paid"
)

type CallLog struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	CompanyID    uuid.UUID       `db:"company_id" json:"company_id"`
	CaseID       uuid.UUID       `db:"case_id" json:"case_id"`
	TelecallerID uuid.UUID       `db:"telecaller_id" json:"telecaller_id"`
	Disposition  CallDisposition `db:"disposition" json:"disposition"`
	Remarks      *string         `db:"remarks" json:"remarks,omitempty"`
	FollowUpAt   *time.Time      `db:"follow_up_at" json:"follow_up_at,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

type CollectionMode string

const (
	CollectionModeCash         CollectionMode = "cash"
	CollectionModeUPI          CollectionMode = "upi"
	CollectionModeCheque       CollectionMode = "cheque"
	CollectionModeBankTransfer CollectionMode = "bank_transfer"
)

type Collection struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	CompanyID    uuid.UUID      `db:"company_id" json:"company_id"`
	CaseID       uuid.UUID      `db:"case_id" json:"case_id"`
	TelecallerID uuid.UUID      `db:"telecaller_id" json:"telecaller_id"`
	Amount       float64        `db:"amount" json:"amount"`
	Mode         CollectionMode `db:"mode" json:"mode"`
	ReceiptNo    *string        `db:"receipt_no" json:"receipt_no,omitempty"`
	CollectedAt  time.Time      `db:"collected_at" json:"collected_at"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}
