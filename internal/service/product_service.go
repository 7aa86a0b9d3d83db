package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/repository/ports"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNameRequired = errors.New("product name is required")
)

type ProductService struct {
	products ports.ProductRepository
}

func NewProductService(products ports.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) Create(ctx context.Context, companyID uuid.UUID, name string, description *string) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProductNameRequired
	}
	return s.products.Create(ctx, &domain.Product{
		CompanyID:   companyID,
		Name:        name,
		Description: description,
	})
}

func (s *ProductService) Get(ctx context.Context, companyID, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if product.CompanyID != companyID {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, companyID uuid.UUID) ([]domain.Product, error) {
	return s.products.ListByCompany(ctx, companyID)
}

func (s *ProductService) Update(ctx context.Context, companyID, id uuid.UUID, name string, description *string) (*domain.Product, error) {
	product, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProductNameRequired
	}
	product.Name = name
	product.Description = description
	return s.products.Update(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.Get(ctx, companyID, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}
