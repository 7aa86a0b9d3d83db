package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepo(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CompanySummary(ctx context.Context, companyID uuid.UUID) (*domain.CompanySummary, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM employee WHERE company_id = $1) AS total_employees,
            (SELECT COUNT(*) FROM employee WHERE company_id = $1 AND role = 'Telecaller' AND status = 'active') AS active_telecallers,
            (SELECT COUNT(*) FROM employee WHERE company_id = $1 AND role = 'TeamIncharge') AS team_incharges,
            (SELECT COUNT(*) FROM customer_case WHERE company_id = $1 AND status = 'open') AS open_cases,
            (SELECT COALESCE(SUM(amount), 0) FROM collection
             WHERE company_id = $1 AND collected_at >= date_trunc('month', NOW())) AS collected_this_month
    `
	var summary domain.CompanySummary
	if err := r.db.GetContext(ctx, &summary, query, companyID); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *StatsRepository) TeamSummary(ctx context.Context, teamID uuid.UUID) (*domain.TeamSummary, error) {
	const query = `
        SELECT
            t.id AS team_id,
            (SELECT COUNT(*) FROM team_member WHERE team_id = t.id) AS members,
            t.target_amount,
            COALESCE((SELECT SUM(c.amount) FROM collection c
                      JOIN team_member tm ON tm.employee_id = c.telecaller_id AND tm.team_id = t.id
                      WHERE c.collected_at >= date_trunc('month', NOW())), 0) AS collected,
            COALESCE((SELECT COUNT(*) FROM call_log cl
                      JOIN team_member tm ON tm.employee_id = cl.telecaller_id AND tm.team_id = t.id
                      WHERE cl.created_at >= date_trunc('month', NOW())), 0) AS calls_this_month
        FROM team t
        WHERE t.id = $1
    `
	var summary domain.TeamSummary
	if err := r.db.GetContext(ctx, &summary, query, teamID); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *StatsRepository) TelecallerSummary(ctx context.Context, employeeID uuid.UUID) (*domain.TelecallerSummary, error) {
	const query = `
        SELECT
            $1::uuid AS employee_id,
            (SELECT COUNT(*) FROM call_log WHERE telecaller_id = $1 AND created_at >= date_trunc('day', NOW())) AS calls_today,
            (SELECT COALESCE(SUM(amount), 0) FROM collection WHERE telecaller_id = $1 AND collected_at >= date_trunc('day', NOW())) AS collected_today,
            (SELECT COUNT(*) FROM customer_case WHERE assigned_to = $1 AND status = 'open') AS assigned_cases,
            (SELECT MIN(follow_up_at) FROM call_log WHERE telecaller_id = $1 AND follow_up_at >= NOW()) AS next_follow_up
    `
	var summary domain.TelecallerSummary
	if err := r.db.GetContext(ctx, &summary, query, employeeID); err != nil {
		return nil, err
	}
	return &summary, nil
}
