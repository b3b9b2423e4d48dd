package job

import (
	"context"
	"fmt"

	"stagelink-backend/internal/domains/profile/repository"
	"stagelink-backend/internal/domains/show/model"
	"stagelink-backend/internal/infrastructure/email"
	"stagelink-backend/internal/shared/utils"
	"stagelink-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// NotifyProducerHandler emails a producer about a moderation decision
type NotifyProducerHandler struct {
	profiles repository.RepositoryInterface
	email    email.EmailService
}

func NewNotifyProducerHandler(profiles repository.RepositoryInterface, emailService email.EmailService) *NotifyProducerHandler {
	return &NotifyProducerHandler{
		profiles: profiles,
		email:    emailService,
	}
}

func (h *NotifyProducerHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.NotifyProducerPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	profile, err := h.profiles.GetByID(ctx, payload.ProducerID)
	if err != nil {
		return fmt.Errorf("load producer %s: %w", payload.ProducerID, err)
	}

	var subject, body string
	switch payload.Status {
	case model.StatusApproved.String():
		subject = fmt.Sprintf("Your show %q has been approved", payload.ShowTitle)
		body = fmt.Sprintf(
			"Good news! %q has been approved and is now live in the directory.",
			payload.ShowTitle,
		)
	case model.StatusRejected.String():
		subject = fmt.Sprintf("Your show %q was not approved", payload.ShowTitle)
		body = fmt.Sprintf(
			"Unfortunately %q did not pass review. You can edit the listing and resubmit it at any time.",
			payload.ShowTitle,
		)
	default:
		// Only final decisions produce mail
		logger.Warn("Ignoring notification with unexpected status", map[string]interface{}{
			"show_id": payload.ShowID,
			"status":  payload.Status,
		})
		return nil
	}

	if err := h.email.SendEmail(ctx, email.EmailRequest{
		To:      []string{profile.Email},
		Subject: subject,
		Body:    body,
	}); err != nil {
		return fmt.Errorf("notify producer %s: %w", payload.ProducerID, err)
	}

	return nil
}
