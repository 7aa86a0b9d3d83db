package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

type CallRepository interface {
	InsertCall(ctx context.Context, call *domain.CallLog) (*domain.CallLog, error)
	ListCallsByCase(ctx context.Context, caseID uuid.UUID) ([]domain.CallLog, error)
	InsertCollection(ctx context.Context, collection *domain.Collection) (*domain.Collection, error)
	ListCollectionsByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Collection, error)
}
