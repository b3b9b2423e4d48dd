package job

import (
	"context"
	"fmt"

	profilerepo "stagelink-backend/internal/domains/profile/repository"
	"stagelink-backend/internal/domains/show/model"
	showrepo "stagelink-backend/internal/domains/show/repository"
	"stagelink-backend/internal/infrastructure/email"
	"stagelink-backend/internal/shared/utils"
	"stagelink-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// broadcastBatchSize bounds recipients per SMTP call
const broadcastBatchSize = 50

// BroadcastShowHandler mails every audience account about a show. The
// show is re-checked at processing time because moderation state may
// have changed between enqueue and delivery.
type BroadcastShowHandler struct {
	shows    showrepo.RepositoryInterface
	profiles profilerepo.RepositoryInterface
	email    email.EmailService
}

func NewBroadcastShowHandler(
	shows showrepo.RepositoryInterface,
	profiles profilerepo.RepositoryInterface,
	emailService email.EmailService,
) *BroadcastShowHandler {
	return &BroadcastShowHandler{
		shows:    shows,
		profiles: profiles,
		email:    emailService,
	}
}

func (h *BroadcastShowHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.BroadcastShowPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	show, err := h.shows.GetByID(ctx, payload.ShowID)
	if err != nil {
		return fmt.Errorf("load show %s: %w", payload.ShowID, err)
	}
	if show.IsDeleted() || show.Status != model.StatusApproved {
		logger.Warn("Skipping broadcast for show no longer approved", map[string]interface{}{
			"show_id": show.ID,
			"status":  show.Status,
			"deleted": show.IsDeleted(),
		})
		return nil
	}

	emails, err := h.profiles.ListAudienceEmails(ctx)
	if err != nil {
		return fmt.Errorf("list audience: %w", err)
	}
	if len(emails) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Now showing: %s", show.Title)
	body := broadcastBody(show)

	var failed int
	for start := 0; start < len(emails); start += broadcastBatchSize {
		end := start + broadcastBatchSize
		if end > len(emails) {
			end = len(emails)
		}

		if err := h.email.SendEmail(ctx, email.EmailRequest{
			To:      emails[start:end],
			Subject: subject,
			Body:    body,
		}); err != nil {
			failed += end - start
			logger.Error("Broadcast batch failed", err)
		}
	}

	if failed == len(emails) {
		return fmt.Errorf("broadcast for show %s: all %d recipients failed", show.ID, failed)
	}

	logger.Info("Broadcast delivered", map[string]interface{}{
		"show_id":    show.ID,
		"recipients": len(emails) - failed,
		"failed":     failed,
	})
	return nil
}

func broadcastBody(show *model.Show) string {
	body := fmt.Sprintf("%s is playing at %s, %s.", show.Title, show.Venue, show.City)
	if show.Date != nil {
		body += fmt.Sprintf(" Dates: %s.", *show.Date)
	}
	if show.TicketLink != nil {
		body += fmt.Sprintf(" Tickets: %s", *show.TicketLink)
	}
	return body
}
