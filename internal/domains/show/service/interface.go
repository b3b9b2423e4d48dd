package service

import (
	"context"

	"stagelink-backend/internal/domains/show/model"
	"stagelink-backend/internal/domains/show/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// ServiceInterface is the producer-facing authoring surface
type ServiceInterface interface {
	Create(ctx context.Context, producerID uuid.UUID, req *model.ShowRequest, poster []byte) (*model.Show, error)
	Update(ctx context.Context, producerID, showID uuid.UUID, req *model.ShowRequest, poster []byte) (*model.Show, error)
	GetForEdit(ctx context.Context, producerID, showID uuid.UUID) (*model.ShowEditForm, error)
	ListByProducer(ctx context.Context, producerID uuid.UUID) ([]model.Show, error)
}

// ModerationInterface is the admin-facing state machine
type ModerationInterface interface {
	List(ctx context.Context, filter repository.AdminFilter) ([]model.Show, error)
	Approve(ctx context.Context, showID uuid.UUID) error
	Reject(ctx context.Context, showID uuid.UUID) error
	Reset(ctx context.Context, showID uuid.UUID) error
	Broadcast(ctx context.Context, showID uuid.UUID) error
	SoftDelete(ctx context.Context, showID uuid.UUID) error
	Restore(ctx context.Context, showID uuid.UUID) error
	SetFeatured(ctx context.Context, showID uuid.UUID, featured bool) error
}

// FeedInterface serves the public directory from a cached snapshot
type FeedInterface interface {
	Browse(ctx context.Context, filter FeedFilter, pages int, refresh bool) (*FeedPage, error)
	GetApproved(ctx context.Context, showID uuid.UUID) (*model.Show, error)
}

// PosterStorage is the slice of object storage the authoring flow needs
type PosterStorage interface {
	UploadPoster(ctx context.Context, key string, data []byte) (string, error)
	DeletePoster(ctx context.Context, key string) error
}

// TaskEnqueuer matches *asynq.Client, narrowed for tests
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
