package job

import (
	"context"
	"fmt"

	"stagelink-backend/internal/domains/payment/model"
	profilerepo "stagelink-backend/internal/domains/profile/repository"
	"stagelink-backend/internal/infrastructure/email"
	"stagelink-backend/internal/shared/utils"
	"stagelink-backend/pkg/logger"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

// PaymentNotificationHandler sends the payer-facing emails for the
// checkout and review flows.
type PaymentNotificationHandler struct {
	profiles profilerepo.RepositoryInterface
	email    email.EmailService
}

func NewPaymentNotificationHandler(profiles profilerepo.RepositoryInterface, emailService email.EmailService) *PaymentNotificationHandler {
	return &PaymentNotificationHandler{
		profiles: profiles,
		email:    emailService,
	}
}

// ProcessSubmitted confirms receipt of a payment to an account holder
func (h *PaymentNotificationHandler) ProcessSubmitted(ctx context.Context, t *asynq.Task) error {
	var payload model.PaymentSubmittedPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	profile, err := h.profiles.GetByID(ctx, payload.UserID)
	if err != nil {
		return fmt.Errorf("load payer %s: %w", payload.UserID, err)
	}

	amount := decimal.NewFromInt(payload.AmountCents).Shift(-2)
	body := fmt.Sprintf(
		"We received your reservation payment of PHP %s for %q. "+
			"Your reservation is confirmed once the payment is verified.",
		amount.StringFixed(2), payload.ShowTitle,
	)

	if err := h.email.SendEmail(ctx, email.EmailRequest{
		To:      []string{profile.Email},
		Subject: fmt.Sprintf("Payment received for %s", payload.ShowTitle),
		Body:    body,
	}); err != nil {
		return fmt.Errorf("confirm payment %s: %w", payload.PaymentID, err)
	}

	return nil
}

// ProcessReviewed tells the payer the outcome of the admin review.
// Guests are reached through the email captured at checkout.
func (h *PaymentNotificationHandler) ProcessReviewed(ctx context.Context, t *asynq.Task) error {
	var payload model.PaymentReviewedPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	to := payload.Email
	if to == "" && payload.UserID != nil {
		profile, err := h.profiles.GetByID(ctx, *payload.UserID)
		if err != nil {
			return fmt.Errorf("load payer %s: %w", *payload.UserID, err)
		}
		to = profile.Email
	}
	if to == "" {
		logger.Warn("Review notification has no reachable address", map[string]interface{}{
			"payment_id": payload.PaymentID,
		})
		return nil
	}

	var subject, body string
	switch model.PaymentStatus(payload.Status) {
	case model.PaymentApproved:
		subject = fmt.Sprintf("Your reservation for %s is confirmed", payload.ShowTitle)
		body = fmt.Sprintf(
			"Your payment for %q has been verified. See you at the show!",
			payload.ShowTitle,
		)
	case model.PaymentRejected:
		subject = fmt.Sprintf("Problem with your payment for %s", payload.ShowTitle)
		body = fmt.Sprintf(
			"We could not verify your payment for %q. "+
				"Please submit a new proof of payment or contact the producer.",
			payload.ShowTitle,
		)
	default:
		logger.Warn("Ignoring review notification with unexpected status", map[string]interface{}{
			"payment_id": payload.PaymentID,
			"status":     payload.Status,
		})
		return nil
	}

	if err := h.email.SendEmail(ctx, email.EmailRequest{
		To:      []string{to},
		Subject: subject,
		Body:    body,
	}); err != nil {
		return fmt.Errorf("notify payer for payment %s: %w", payload.PaymentID, err)
	}

	return nil
}
