package repository

import (
	"context"

	"stagelink-backend/internal/domains/show/model"

	"github.com/google/uuid"
)

// AdminFilter selects the moderation view: one status, everything, or
// the soft-deleted records.
type AdminFilter struct {
	Status  string // pending | approved | rejected | all
	Deleted bool   // true = only soft-deleted records
}

type RepositoryInterface interface {
	Insert(ctx context.Context, show *model.Show) error
	Update(ctx context.Context, show *model.Show) error

	// GetByID returns the record regardless of soft-delete state;
	// callers decide whether a deleted record is acceptable.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Show, error)

	ListByProducer(ctx context.Context, producerID uuid.UUID) ([]model.Show, error)

	// ListApproved returns the public feed snapshot: approved, not deleted
	ListApproved(ctx context.Context) ([]model.Show, error)

	ListForAdmin(ctx context.Context, filter AdminFilter) ([]model.Show, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShowStatus) error
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
}
