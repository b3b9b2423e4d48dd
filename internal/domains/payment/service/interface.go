package service

import (
	"context"
	"time"

	"stagelink-backend/internal/domains/payment/model"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// ServiceInterface covers checkout plus the admin review queue
type ServiceInterface interface {
	Checkout(ctx context.Context, userID *uuid.UUID, req *model.CheckoutRequest, proof []byte) (*model.CheckoutResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Payment, error)

	ListForReview(ctx context.Context, filter model.ReviewFilter) ([]model.Payment, error)
	Approve(ctx context.Context, paymentID uuid.UUID) error
	Reject(ctx context.Context, paymentID uuid.UUID) error
	ProofURL(ctx context.Context, paymentID uuid.UUID) (string, error)

	// ExportReview renders the review queue as an xlsx workbook
	ExportReview(ctx context.Context, filter model.ReviewFilter) ([]byte, error)
}

// ProofStorage is the slice of object storage the checkout flow needs
type ProofStorage interface {
	UploadProof(ctx context.Context, key string, data []byte, contentType string) (string, error)
	PresignProofURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// TaskEnqueuer matches *asynq.Client, narrowed for tests
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
