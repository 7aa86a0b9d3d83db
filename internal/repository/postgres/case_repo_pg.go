package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

const caseColumns = `id, company_id, product_id, team_id, assigned_to, customer_name,
       customer_mobile, loan_account_no, outstanding_amount, status, created_at, updated_at`

type CaseRepository struct {
	db *sqlx.DB
}

func NewCaseRepo(db *sqlx.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

func (r *CaseRepository) Create(ctx context.Context, c *domain.CustomerCase) (*domain.CustomerCase, error) {
	const query = `
        INSERT INTO customer_case (company_id, product_id, team_id, assigned_to, customer_name,
                                   customer_mobile, loan_account_no, outstanding_amount, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + caseColumns

	row := r.db.QueryRowxContext(ctx, query,
		c.CompanyID,
		c.ProductID,
		c.TeamID,
		c.AssignedTo,
		c.CustomerName,
		c.CustomerMobile,
		c.LoanAccountNo,
		c.Outstanding,
		c.Status,
	)
	var inserted domain.CustomerCase
	if err := row.StructScan(&inserted); err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (r *CaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomerCase, error) {
	const query = `
        SELECT ` + caseColumns + `
        FROM customer_case
        WHERE id = $1
    `
	var c domain.CustomerCase
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]domain.CustomerCase, error) {
	const query = `
        SELECT ` + caseColumns + `
        FROM customer_case
        WHERE company_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	cases := make([]domain.CustomerCase, 0)
	if err := r.db.SelectContext(ctx, &cases, query, companyID, limit, offset); err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *CaseRepository) ListByAssignee(ctx context.Context, employeeID uuid.UUID) ([]domain.CustomerCase, error) {
	const query = `
        SELECT ` + caseColumns + `
        FROM customer_case
        WHERE assigned_to = $1 AND status = 'open'
        ORDER BY outstanding_amount DESC
    `
	cases := make([]domain.CustomerCase, 0)
	if err := r.db.SelectContext(ctx, &cases, query, employeeID); err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *CaseRepository) Assign(ctx context.Context, id uuid.UUID, teamID, employeeID *uuid.UUID) (*domain.CustomerCase, error) {
	const query = `
        UPDATE customer_case
        SET team_id = $2,
            assigned_to = $3,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + caseColumns

	row := r.db.QueryRowxContext(ctx, query, id, teamID, employeeID)
	var c domain.CustomerCase
	if err := row.StructScan(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepository) UpdateOutstanding(ctx context.Context, id uuid.UUID, outstanding float64, status domain.CaseStatus) (*domain.CustomerCase, error) {
	const query = `
        UPDATE customer_case
        SET outstanding_amount = $2,
            status = $3,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + caseColumns

	row := r.db.QueryRowxContext(ctx, query, id, outstanding, status)
	var c domain.CustomerCase
	if err := row.StructScan(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
