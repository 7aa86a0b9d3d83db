package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

const employeeColumns = `id, company_id, name, mobile, emp_id, email, role, status,
       password_hash, password_salt, must_change_password, created_at, updated_at`

type EmployeeRepository struct {
	db *sqlx.DB
}

func NewEmployeeRepo(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	const query = `
        INSERT INTO employee (company_id, name, mobile, emp_id, email, role, status,
                              password_hash, password_salt, must_change_password)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING ` + employeeColumns

	row := r.db.QueryRowxContext(ctx, query,
		employee.CompanyID,
		employee.Name,
		employee.Mobile,
		employee.EmpID,
		employee.Email,
		employee.Role,
		employee.Status,
		employee.PasswordHash,
		employee.PasswordSalt,
		employee.MustChangePassword,
	)
	var inserted domain.Employee
	if err := row.StructScan(&inserted); err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (r *EmployeeRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Employee, error) {
	const query = `
        SELECT ` + employeeColumns + `
        FROM employee
        WHERE company_id = $1
        ORDER BY created_at ASC
    `
	employees := make([]domain.Employee, 0)
	if err := r.db.SelectContext(ctx, &employees, query, companyID); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	const query = `
        SELECT ` + employeeColumns + `
        FROM employee
        WHERE id = $1
    `
	var employee domain.Employee
	if err := r.db.GetContext(ctx, &employee, query, id); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) FindByMobile(ctx context.Context, mobile string) (*domain.Employee, error) {
	const query = `
        SELECT ` + employeeColumns + `
        FROM employee
        WHERE mobile = $1
    `
	var employee domain.Employee
	if err := r.db.GetContext(ctx, &employee, query, mobile); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EmployeeStatus) (*domain.Employee, error) {
	const query = `
        UPDATE employee
        SET status = $2,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + employeeColumns

	row := r.db.QueryRowxContext(ctx, query, id, status)
	var employee domain.Employee
	if err := row.StructScan(&employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.EmployeeRole) (*domain.Employee, error) {
	const query = `
        UPDATE employee
        SET role = $2,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + employeeColumns

	row := r.db.QueryRowxContext(ctx, query, id, role)
	var employee domain.Employee
	if err := row.StructScan(&employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte, mustChange bool) error {
	const query = `
        UPDATE employee
        SET password_hash = $2,
            password_salt = $3,
            must_change_password = $4,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, passwordHash, passwordSalt, mustChange)
	return err
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM employee WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
