package repository

import (
	"context"

	"stagelink-backend/internal/domains/profile/model"

	"github.com/google/uuid"
)

type RepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	// ListAudienceEmails returns the recipients of a show broadcast
	ListAudienceEmails(ctx context.Context) ([]string, error)
}
