package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepo(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	const query = `
        INSERT INTO team (company_id, name, incharge_id, target_amount, target_month)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, company_id, name, incharge_id, target_amount, target_month, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query,
		team.CompanyID,
		team.Name,
		team.InchargeID,
		team.TargetAmount,
		team.TargetMonth,
	)
	var inserted domain.Team
	if err := row.StructScan(&inserted); err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	const query = `
        SELECT id, company_id, name, incharge_id, target_amount, target_month, created_at, updated_at
        FROM team
        WHERE id = $1
    `
	var team domain.Team
	if err := r.db.GetContext(ctx, &team, query, id); err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Team, error) {
	const query = `
        SELECT id, company_id, name, incharge_id, target_amount, target_month, created_at, updated_at
        FROM team
        WHERE company_id = $1
        ORDER BY created_at ASC
    `
	teams := make([]domain.Team, 0)
	if err := r.db.SelectContext(ctx, &teams, query, companyID); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *TeamRepository) UpdateTarget(ctx context.Context, id uuid.UUID, target float64) (*domain.Team, error) {
	const query = `
        UPDATE team
        SET target_amount = $2,
            updated_at = NOW()
        WHERE id = $1
        RETURNING id, company_id, name, incharge_id, target_amount, target_month, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, id, target)
	var team domain.Team
	if err := row.StructScan(&team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, teamID, employeeID uuid.UUID) error {
	const query = `
        INSERT INTO team_member (team_id, employee_id)
        VALUES ($1, $2)
        ON CONFLICT (team_id, employee_id) DO NOTHING
    `
	_, err := r.db.ExecContext(ctx, query, teamID, employeeID)
	return err
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, employeeID uuid.UUID) error {
	const query = `DELETE FROM team_member WHERE team_id = $1 AND employee_id = $2`
	_, err := r.db.ExecContext(ctx, query, teamID, employeeID)
	return err
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.Employee, error) {
	const query = `
        SELECT e.id, e.company_id, e.name, e.mobile, e.emp_id, e.email, e.role, e.status,
               e.password_hash, e.password_salt, e.must_change_password, e.created_at, e.updated_at
        FROM employee e
        JOIN team_member tm ON tm.employee_id = e.id
        WHERE tm.team_id = $1
        ORDER BY tm.added_at ASC
    `
	members := make([]domain.Employee, 0)
	if err := r.db.SelectContext(ctx, &members, query, teamID); err != nil {
		return nil, err
	}
	return members, nil
}
