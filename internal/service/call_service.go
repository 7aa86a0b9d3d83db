package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/repository/ports"
)

var (
	ErrCallInvalid       = errors.New("call details are invalid")
	ErrCollectionInvalid = errors.New("collection amount must be positive")
	ErrCollectionTooHigh = errors.New("collection exceeds outstanding amount")
)

var validDispositions = map[domain.CallDisposition]bool{
	domain.CallDispositionConnected:    true,
	domain.CallDispositionNoAnswer:     true,
	domain.CallDispositionBusy:         true,
	domain.CallDispositionWrongNumber:  true,
	domain.CallDispositionPromiseToPay: true,
	domain.CallDispositionPaid:         true,
}

var validModes = map[domain.CollectionMode]bool{
	domain.CollectionModeCash:         true,
	domain.CollectionModeUPI:          true,
	domain.CollectionModeCheque:       true,
	domain.CollectionModeBankTransfer: true,
}

type CallService struct {
	calls ports.CallRepository
	cases ports.CaseRepository
	now   func() time.Time
}

func NewCallService(calls ports.CallRepository, cases ports.CaseRepository) *CallService {
	return &CallService{calls: calls, cases: cases, now: time.Now}
}

type LogCallInput struct {
	CaseID      uuid.UUID
	Disposition domain.CallDisposition
	Remarks     *string
	FollowUpAt  *time.Time
}

func (s *CallService) LogCall(ctx context.Context, companyID, telecallerID uuid.UUID, input LogCallInput) (*domain.CallLog, error) {
	if !validDispositions[input.Disposition] {
		return nil, ErrCallInvalid
	}
	c, err := s.cases.FindByID(ctx, input.CaseID)
	if err != nil || c.CompanyID != companyID {
		return nil, ErrCaseNotFound
	}
	return s.calls.InsertCall(ctx, &domain.CallLog{
		CompanyID:    companyID,
		CaseID:       input.CaseID,
		TelecallerID: telecallerID,
		Disposition:  input.Disposition,
		Remarks:      input.Remarks,
		FollowUpAt:   input.FollowUpAt,
	})
}

type LogCollectionInput struct {
	CaseID      uuid.UUID
	Amount      float64
	Mode        domain.CollectionMode
	ReceiptNo   *string
	CollectedAt *time.Time
}

// LogCollection records a payment and reduces the case outstanding. A case
// collected down to zero is marked settled.
func (s *CallService) LogCollection(ctx context.Context, companyID, telecallerID uuid.UUID, input LogCollectionInput) (*domain.Collection, *domain.CustomerCase, error) {
	if input.Amount <= 0 {
		return nil, nil, ErrCollectionInvalid
	}
	if !validModes[input.Mode] {
		return nil, nil, ErrCollectionInvalid
	}

	c, err := s.cases.FindByID(ctx, input.CaseID)
	if err != nil || c.CompanyID != companyID {
		return nil, nil, ErrCaseNotFound
	}
	if input.Amount > c.Outstanding {
		return nil, nil, ErrCollectionTooHigh
	}

	collectedAt := s.now()
	if input.CollectedAt != nil {
		collectedAt = *input.CollectedAt
	}

	collection, err := s.calls.InsertCollection(ctx, &domain.Collection{
		CompanyID:    companyID,
		CaseID:       input.CaseID,
		TelecallerID: telecallerID,
		Amount:       input.Amount,
		Mode:         input.Mode,
		ReceiptNo:    input.ReceiptNo,
		CollectedAt:  collectedAt,
	})
	if err != nil {
		return nil, nil, err
	}

	remaining := c.Outstanding - input.Amount
	status := c.Status
	if remaining <= 0 {
		remaining = 0
		status = domain.CaseStatusSettled
	}
	updated, err := s.cases.UpdateOutstanding(ctx, c.ID, remaining, status)
	if err != nil {
		return nil, nil, err
	}
	return collection, updated, nil
}

func (s *CallService) CaseHistory(ctx context.Context, companyID, caseID uuid.UUID) ([]domain.CallLog, []domain.Collection, error) {
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil || c.CompanyID != companyID {
		return nil, nil, ErrCaseNotFound
	}
	calls, err := s.calls.ListCallsByCase(ctx, caseID)
	if err != nil {
		return nil, nil, err
	}
	collections, err := s.calls.ListCollectionsByCase(ctx, caseID)
	if err != nil {
		return nil, nil, err
	}
	return calls, collections, nil
}
