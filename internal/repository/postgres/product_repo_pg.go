package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepo(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	const query = `
        INSERT INTO product (company_id, name, description)
        VALUES ($1, $2, $3)
        RETURNING id, company_id, name, description, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, product.CompanyID, product.Name, product.Description)
	var inserted domain.Product
	if err := row.StructScan(&inserted); err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	const query = `
        SELECT id, company_id, name, description, created_at, updated_at
        FROM product
        WHERE id = $1
    `
	var product domain.Product
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Product, error) {
	const query = `
        SELECT id, company_id, name, description, created_at, updated_at
        FROM product
        WHERE company_id = $1
        ORDER BY name ASC
    `
	products := make([]domain.Product, 0)
	if err := r.db.SelectContext(ctx, &products, query, companyID); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	const query = `
        UPDATE product
        SET name = $2,
            description = $3,
            updated_at = NOW()
        WHERE id = $1
        RETURNING id, company_id, name, description, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, product.ID, product.Name, product.Description)
	var updated domain.Product
	if err := row.StructScan(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM product WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
