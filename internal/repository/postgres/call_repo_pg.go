package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

type CallRepository struct {
	db *sqlx.DB
}

func NewCallRepo(db *sqlx.DB) *CallRepository {
	return &CallRepository{db: db}
}

func (r *CallRepository) InsertCall(ctx context.Context, call *domain.CallLog) (*domain.CallLog, error) {
	const query = `
        INSERT INTO call_log (company_id, case_id, telecaller_id, disposition, remarks, follow_up_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, company_id, case_id, telecaller_id, disposition, remarks, follow_up_at, created_at
    `
	row := r.db.QueryRowxContext(ctx, query,
		call.CompanyID,
		call.CaseID,
		call.TelecallerID,
		call.Disposition,
		call.Remarks,
		call.FollowUpAt,
	)
	var inserted domain.CallLog
	if err := row.StructScan(&inserted); err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (r *CallRepository) ListCallsByCase(ctx context.Context, caseID uuid.UUID) ([]domain.CallLog, error) {
	const query = `
        SELECT id, company_id, case_id, telecaller_id, disposition, remarks, follow_up_at, created_at
        FROM call_log
        WHERE case_id = $1
        ORDER BY created_at DESC
    `
	calls := make([]domain.CallLog, 0)
	if err := r.db.SelectContext(ctx, &calls, query, caseID); err != nil {
		return nil, err
	}
	return calls, nil
}

func (r *CallRepository) InsertCollection(ctx context.Context, collection *domain.Collection) (*domain.Collection, error) {
	const query = `
        INSERT INTO collection (company_id, case_id, telecaller_id, amount, mode, receipt_no, collected_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, company_id, case_id, telecaller_id, amount, mode, receipt_no, collected_at, created_at
    `
	row := r.db.QueryRowxContext(ctx, query,
		collection.CompanyID,
		collection.CaseID,
		collection.TelecallerID,
		collection.Amount,
		collection.Mode,
		collection.ReceiptNo,
		collection.CollectedAt,
	)
	var inserted domain.Collection
	if err := row.StructScan(&inserted); err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (r *CallRepository) ListCollectionsByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Collection, error) {
	const query = `
        SELECT id, company_id, case_id, telecaller_id, amount, mode, receipt_no, collected_at, created_at
        FROM collection
        WHERE case_id = $1
        ORDER BY collected_at DESC
    `
	collections := make([]domain.Collection, 0)
	if err := r.db.SelectContext(ctx, &collections, query, caseID); err != nil {
		return nil, err
	}
	return collections, nil
}
