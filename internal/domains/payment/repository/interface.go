package repository

import (
	"context"

	"stagelink-backend/internal/domains/payment/model"

	"github.com/google/uuid"
)

type RepositoryInterface interface {
	Insert(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	ListForReview(ctx context.Context, filter model.ReviewFilter) ([]model.Payment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Payment, error)

	// UpdateStatus stamps reviewed_at alongside the new status. It only
	// touches pending rows; a second review reports ErrAlreadyReviewed.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error
}
