package service

import (
	"context"
	"encoding/json"
	"time"

	"stagelink-backend/internal/domains/show/model"
	"stagelink-backend/internal/domains/show/repository"
	"stagelink-backend/internal/shared"
	"stagelink-backend/pkg/cache"
	"stagelink-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// broadcastLockTTL bounds how often one show can be broadcast. The lock
// is released early only when the enqueue itself fails.
const broadcastLockTTL = 10 * time.Minute

type ModerationService struct {
	repo     repository.RepositoryInterface
	enqueuer TaskEnqueuer
	cache    cache.Cache
}

func NewModerationService(repo repository.RepositoryInterface, enqueuer TaskEnqueuer, cacheClient cache.Cache) ModerationInterface {
	return &ModerationService{
		repo:     repo,
		enqueuer: enqueuer,
		cache:    cacheClient,
	}
}

func (s *ModerationService) List(ctx context.Context, filter repository.AdminFilter) ([]model.Show, error) {
	return s.repo.ListForAdmin(ctx, filter)
}

// Approve moves a pending show to approved and notifies the producer.
// The notification is best-effort; a failed enqueue is logged and the
// approval stands.
func (s *ModerationService) Approve(ctx context.Context, showID uuid.UUID) error {
	return s.decide(ctx, showID, model.StatusApproved)
}

// Reject moves a pending show to rejected and notifies the producer
func (s *ModerationService) Reject(ctx context.Context, showID uuid.UUID) error {
	return s.decide(ctx, showID, model.StatusRejected)
}

func (s *ModerationService) decide(ctx context.Context, showID uuid.UUID, status model.ShowStatus) error {
	show, err := s.repo.GetByID(ctx, showID)
	if err != nil {
		return err
	}
	if show.IsDeleted() {
		return model.ErrShowDeleted
	}
	if show.Status != model.StatusPending {
		return model.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, showID, status); err != nil {
		return err
	}
	s.invalidate(ctx, show.ProducerID)

	s.enqueueNotifyProducer(ctx, show, status)
	return nil
}

// Reset returns a decided show to pending. No notification is sent; the
// producer only hears about final decisions.
func (s *ModerationService) Reset(ctx context.Context, showID uuid.UUID) error {
	show, err := s.repo.GetByID(ctx, showID)
	if err != nil {
		return err
	}
	if show.IsDeleted() {
		return model.ErrShowDeleted
	}
	if show.Status == model.StatusPending {
		return model.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, showID, model.StatusPending); err != nil {
		return err
	}
	s.invalidate(ctx, show.ProducerID)
	return nil
}

// Broadcast fans an approved show out to every audience account. A
// short-lived lock guards against double submission from the admin UI.
func (s *ModerationService) Broadcast(ctx context.Context, showID uuid.UUID) error {
	show, err := s.repo.GetByID(ctx, showID)
	if err != nil {
		return err
	}
	if show.IsDeleted() {
		return model.ErrShowDeleted
	}
	if show.Status != model.StatusApproved {
		return model.ErrShowNotApproved
	}

	lockKey := "broadcast:lock:" + showID.String()
	acquired, err := s.cache.SetNX(ctx, lockKey, "1", broadcastLockTTL)
	if err != nil {
		return err
	}
	if !acquired {
		return model.ErrBroadcastInFlight
	}

	payload, err := json.Marshal(model.BroadcastShowPayload{
		ShowID:    show.ID,
		ShowTitle: show.Title,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeBroadcastShow, payload)
	if _, err := s.enqueuer.EnqueueContext(ctx, task, asynq.Queue(shared.QueueShows)); err != nil {
		// Give the admin another attempt instead of holding the lock
		if delErr := s.cache.Delete(ctx, lockKey); delErr != nil {
			logger.Warn("Failed to release broadcast lock", map[string]interface{}{
				"show_id": showID,
				"error":   delErr.Error(),
			})
		}
		return err
	}

	return nil
}

// SoftDelete hides a show from every surface without destroying it.
// Any status may be deleted.
func (s *ModerationService) SoftDelete(ctx context.Context, showID uuid.UUID) error {
	show, err := s.repo.GetByID(ctx, showID)
	if err != nil {
		return err
	}
	if show.IsDeleted() {
		return model.ErrShowDeleted
	}

	if err := s.repo.SetDeleted(ctx, showID, true); err != nil {
		return err
	}
	s.invalidate(ctx, show.ProducerID)
	return nil
}

// Restore undoes a soft delete. Status is preserved as it was.
func (s *ModerationService) Restore(ctx context.Context, showID uuid.UUID) error {
	show, err := s.repo.GetByID(ctx, showID)
	if err != nil {
		return err
	}
	if !show.IsDeleted() {
		return model.ErrShowNotDeleted
	}

	if err := s.repo.SetDeleted(ctx, showID, false); err != nil {
		return err
	}
	s.invalidate(ctx, show.ProducerID)
	return nil
}

func (s *ModerationService) SetFeatured(ctx context.Context, showID uuid.UUID, featured bool) error {
	show, err := s.repo.GetByID(ctx, showID)
	if err != nil {
		return err
	}
	if show.IsDeleted() {
		return model.ErrShowDeleted
	}

	if err := s.repo.SetFeatured(ctx, showID, featured); err != nil {
		return err
	}
	s.invalidate(ctx, show.ProducerID)
	return nil
}

func (s *ModerationService) enqueueNotifyProducer(ctx context.Context, show *model.Show, status model.ShowStatus) {
	payload, err := json.Marshal(model.NotifyProducerPayload{
		ShowID:     show.ID,
		ShowTitle:  show.Title,
		ProducerID: show.ProducerID,
		Status:     status.String(),
	})
	if err != nil {
		logger.Error("Failed to encode producer notification", err)
		return
	}

	task := asynq.NewTask(shared.TypeNotifyProducer, payload)
	if _, err := s.enqueuer.EnqueueContext(ctx, task, asynq.Queue(shared.QueueShows)); err != nil {
		logger.Error("Failed to enqueue producer notification", err)
	}
}

func (s *ModerationService) invalidate(ctx context.Context, producerID uuid.UUID) {
	keys := []string{cacheKeyFeedSnapshot, cacheKeyProducerPrefix + producerID.String()}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("Failed to invalidate show caches", map[string]interface{}{
			"producer_id": producerID,
			"error":       err.Error(),
		})
	}
}
