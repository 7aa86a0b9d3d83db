package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

type memoryCaseRepo struct {
	cases map[uuid.UUID]*domain.CustomerCase
}

func newMemoryCaseRepo() *memoryCaseRepo {
	return &memoryCaseRepo{cases: make(map[uuid.UUID]*domain.CustomerCase)}
}

func (m *memoryCaseRepo) Create(ctx context.Context, c *domain.CustomerCase) (*domain.CustomerCase, error) {
	clone := *c
	clone.ID = uuid.New()
	m.cases[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (m *memoryCaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomerCase, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *c
	return &clone, nil
}

func (m *memoryCaseRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]domain.CustomerCase, error) {
	out := make([]domain.CustomerCase, 0)
	for _, c := range m.cases {
		if c.CompanyID == companyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memoryCaseRepo) ListByAssignee(ctx context.Context, employeeID uuid.UUID) ([]domain.CustomerCase, error) {
	out := make([]domain.CustomerCase, 0)
	for _, c := range m.cases {
		if c.AssignedTo != nil && *c.AssignedTo == employeeID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memoryCaseRepo) Assign(ctx context.Context, id uuid.UUID, teamID, employeeID *uuid.UUID) (*domain.CustomerCase, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	c.TeamID = teamID
	c.AssignedTo = employeeID
	clone := *c
	return &clone, nil
}

func (m *memoryCaseRepo) UpdateOutstanding(ctx context.Context, id uuid.UUID, outstanding float64, status domain.CaseStatus) (*domain.CustomerCase, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	c.Outstanding = outstanding
	c.Status = status
	clone := *c
	return &clone, nil
}

type memoryCallRepo struct {
	calls       []domain.CallLog
	collections []domain.Collection
}

func (m *memoryCallRepo) InsertCall(ctx context.Context, call *domain.CallLog) (*domain.CallLog, error) {
	clone := *call
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	m.calls = append(m.calls, clone)
	return &clone, nil
}

func (m *memoryCallRepo) ListCallsByCase(ctx context.Context, caseID uuid.UUID) ([]domain.CallLog, error) {
	out := make([]domain.CallLog, 0)
	for _, call := range m.calls {
		if call.CaseID == caseID {
			out = append(out, call)
		}
	}
	return out, nil
}

func (m *memoryCallRepo) InsertCollection(ctx context.Context, collection *domain.Collection) (*domain.Collection, error) {
	clone := *collection
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	m.collections = append(m.collections, clone)
	return &clone, nil
}

func (m *memoryCallRepo) ListCollectionsByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Collection, error) {
	out := make([]domain.Collection, 0)
	for _, collection := range m.collections {
		if collection.CaseID == caseID {
			out = append(out, collection)
		}
	}
	return out, nil
}

func seedCase(cases *memoryCaseRepo, companyID uuid.UUID, outstanding float64) *domain.CustomerCase {
	created, _ := cases.Create(context.Background(), &domain.CustomerCase{
		CompanyID:      companyID,
		CustomerName:   "Borrower",
		CustomerMobile: "9000000000",
		LoanAccountNo:  "LN-1001",
		Outstanding:    outstanding,
		Status:         domain.CaseStatusOpen,
	})
	return created
}

func TestCallService_LogCall(t *testing.T) {
	cases := newMemoryCaseRepo()
	calls := &memoryCallRepo{}
	svc := NewCallService(calls, cases)
	companyID := uuid.New()
	c := seedCase(cases, companyID, 10000)

	if _, err := svc.LogCall(context.Background(), companyID, uuid.New(), LogCallInput{
		CaseID:      c.ID,
		Disposition: "shouted",
	}); err != ErrCallInvalid {
		t.Fatalf("unknown disposition: expected ErrCallInvalid, got %v", err)
	}

	if _, err := svc.LogCall(context.Background(), uuid.New(), uuid.New(), LogCallInput{
		CaseID:      c.ID,
		Disposition: domain.CallDispositionConnected,
	}); err != ErrCaseNotFound {
		t.Fatalf("foreign company: expected ErrCaseNotFound, got %v", err)
	}

	call, err := svc.LogCall(context.Background(), companyID, uuid.New(), LogCallInput{
		CaseID:      c.ID,
		Disposition: domain.CallDispositionPromiseToPay,
	})
	if err != nil {
		t.Fatalf("LogCall returned error: %v", err)
	}
	if call.Disposition != domain.CallDispositionPromiseToPay {
		t.Fatalf("unexpected disposition: %s", call.Disposition)
	}
}

func TestCallService_LogCollectionReducesOutstanding(t *testing.T) {
	cases := newMemoryCaseRepo()
	calls := &memoryCallRepo{}
	svc := NewCallService(calls, cases)
	fixed := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	companyID := uuid.New()
	c := seedCase(cases, companyID, 10000)

	collection, updated, err := svc.LogCollection(context.Background(), companyID, uuid.New(), LogCollectionInput{
		CaseID: c.ID,
		Amount: 4000,
		Mode:   domain.CollectionModeUPI,
	})
	if err != nil {
		t.Fatalf("LogCollection returned error: %v", err)
	}
	if collection.CollectedAt != fixed {
		t.Fatalf("collected_at should default to now, got %v", collection.CollectedAt)
	}
	if updated.Outstanding != 6000 || updated.Status != domain.CaseStatusOpen {
		t.Fatalf("unexpected case after partial collection: %+v", updated)
	}

	_, updated, err = svc.LogCollection(context.Background(), companyID, uuid.New(), LogCollectionInput{
		CaseID: c.ID,
		Amount: 6000,
		Mode:   domain.CollectionModeCash,
	})
	if err != nil {
		t.Fatalf("LogCollection returned error: %v", err)
	}
	if updated.Outstanding != 0 || updated.Status != domain.CaseStatusSettled {
		t.Fatalf("fully collected case should settle: %+v", updated)
	}
}

func TestCallService_LogCollectionRejectsBadAmounts(t *testing.T) {
	cases := newMemoryCaseRepo()
	calls := &memoryCallRepo{}
	svc := NewCallService(calls, cases)
	companyID := uuid.New()
	c := seedCase(cases, companyID, 5000)

	if _, _, err := svc.LogCollection(context.Background(), companyID, uuid.New(), LogCollectionInput{
		CaseID: c.ID,
		Amount: 0,
		Mode:   domain.CollectionModeCash,
	}); err != ErrCollectionInvalid {
		t.Fatalf("zero amount: expected ErrCollectionInvalid, got %v", err)
	}

	if _, _, err := svc.LogCollection(context.Background(), companyID, uuid.New(), LogCollectionInput{
		CaseID: c.ID,
		Amount: 100,
		Mode:   "gold",
	}); err != ErrCollectionInvalid {
		t.Fatalf("unknown mode: expected ErrCollectionInvalid, got %v", err)
	}

	if _, _, err := svc.LogCollection(context.Background(), companyID, uuid.New(), LogCollectionInput{
		CaseID: c.ID,
		Amount: 5001,
		Mode:   domain.CollectionModeCash,
	}); err != ErrCollectionTooHigh {
		t.Fatalf("over-collection: expected ErrCollectionTooHigh, got %v", err)
	}
}

func TestCallService_CaseHistory(t *testing.T) {
	cases := newMemoryCaseRepo()
	calls := &memoryCallRepo{}
	svc := NewCallService(calls, cases)
	companyID := uuid.New()
	c := seedCase(cases, companyID, 10000)

	if _, err := svc.LogCall(context.Background(), companyID, uuid.New(), LogCallInput{
		CaseID:      c.ID,
		Disposition: domain.CallDispositionConnected,
	}); err != nil {
		t.Fatalf("LogCall returned error: %v", err)
	}
	if _, _, err := svc.LogCollection(context.Background(), companyID, uuid.New(), LogCollectionInput{
		CaseID: c.ID,
		Amount: 1000,
		Mode:   domain.CollectionModeCheque,
	}); err != nil {
		t.Fatalf("LogCollection returned error: %v", err)
	}

	history, collections, err := svc.CaseHistory(context.Background(), companyID, c.ID)
	if err != nil {
		t.Fatalf("CaseHistory returned error: %v", err)
	}
	if len(history) != 1 || len(collections) != 1 {
		t.Fatalf("expected 1 call and 1 collection, got %d/%d", len(history), len(collections))
	}

	if _, _, err := svc.CaseHistory(context.Background(), uuid.New(), c.ID); err != ErrCaseNotFound {
		t.Fatalf("foreign company: expected ErrCaseNotFound, got %v", err)
	}
}
