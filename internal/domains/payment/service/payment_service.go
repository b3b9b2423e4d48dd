package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"stagelink-backend/internal/domains/payment/model"
	"stagelink-backend/internal/domains/payment/repository"
	"stagelink-backend/internal/domains/pricing"
	showmodel "stagelink-backend/internal/domains/show/model"
	showrepo "stagelink-backend/internal/domains/show/repository"
	"stagelink-backend/internal/shared"
	"stagelink-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

// maxProofSize bounds the uploaded proof image
const maxProofSize = 5 << 20

type PaymentService struct {
	repo        repository.RepositoryInterface
	shows       showrepo.RepositoryInterface
	storage     ProofStorage
	feeCalc     *pricing.FeeCalculator
	enqueuer    TaskEnqueuer
	proofExpiry time.Duration
}

func NewPaymentService(
	repo repository.RepositoryInterface,
	shows showrepo.RepositoryInterface,
	proofStorage ProofStorage,
	feeCalc *pricing.FeeCalculator,
	enqueuer TaskEnqueuer,
	proofExpiry time.Duration,
) ServiceInterface {
	return &PaymentService{
		repo:        repo,
		shows:       shows,
		storage:     proofStorage,
		feeCalc:     feeCalc,
		enqueuer:    enqueuer,
		proofExpiry: proofExpiry,
	}
}

// Checkout records a manual reservation-fee payment. The proof image is
// required; guests must also supply name and email. The fee amount is
// taken from the show record and falls back to the fee policy when the
// record predates persisted fees.
func (s *PaymentService) Checkout(ctx context.Context, userID *uuid.UUID, req *model.CheckoutRequest, proof []byte) (*model.CheckoutResponse, error) {
	if len(proof) == 0 {
		return nil, model.ErrMissingProof
	}
	if len(proof) > maxProofSize {
		return nil, &model.ValidationError{Message: "proof image exceeds the 5MB limit"}
	}
	if err := req.Validate(userID != nil); err != nil {
		return nil, err
	}

	contentType := http.DetectContentType(proof)
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return nil, &model.ValidationError{Message: "proof must be a JPEG, PNG or WebP image"}
	}

	show, err := s.shows.GetByID(ctx, req.ShowID)
	if err != nil {
		return nil, err
	}
	if show.IsDeleted() {
		return nil, showmodel.ErrShowDeleted
	}
	if show.Status != showmodel.StatusApproved {
		return nil, showmodel.ErrShowNotApproved
	}

	amountCents, err := s.feeCents(show)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		ID:          uuid.New(),
		ShowID:      show.ID,
		AmountCents: amountCents,
		Status:      model.PaymentPending,
	}
	if userID != nil {
		payment.UserID = userID
	} else {
		payment.GuestName = &req.GuestName
		payment.GuestEmail = &req.GuestEmail
	}

	key := fmt.Sprintf("%s/%s%s", show.ID, payment.ID, extensionFor(contentType))
	if _, err := s.storage.UploadProof(ctx, key, proof, contentType); err != nil {
		return nil, fmt.Errorf("upload proof: %w", err)
	}
	payment.ProofKey = key

	proofURL, err := s.storage.PresignProofURL(ctx, key, s.proofExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign proof url: %w", err)
	}
	payment.ProofURL = proofURL

	if err := s.repo.Insert(ctx, payment); err != nil {
		return nil, err
	}

	if userID != nil {
		s.enqueueSubmitted(ctx, payment, show.Title)
	}

	return &model.CheckoutResponse{
		PaymentID:   payment.ID,
		AmountCents: payment.AmountCents,
		ProofURL:    payment.ProofURL,
		Status:      string(payment.Status),
	}, nil
}

func (s *PaymentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Payment, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *PaymentService) ListForReview(ctx context.Context, filter model.ReviewFilter) ([]model.Payment, error) {
	return s.repo.ListForReview(ctx, filter)
}

func (s *PaymentService) Approve(ctx context.Context, paymentID uuid.UUID) error {
	return s.review(ctx, paymentID, model.PaymentApproved)
}

func (s *PaymentService) Reject(ctx context.Context, paymentID uuid.UUID) error {
	return s.review(ctx, paymentID, model.PaymentRejected)
}

// ProofURL mints a fresh presigned link; the one stored at submission
// time expires after a week.
func (s *PaymentService) ProofURL(ctx context.Context, paymentID uuid.UUID) (string, error) {
	payment, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return "", err
	}
	return s.storage.PresignProofURL(ctx, payment.ProofKey, s.proofExpiry)
}

func (s *PaymentService) review(ctx context.Context, paymentID uuid.UUID, status model.PaymentStatus) error {
	payment, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, paymentID, status); err != nil {
		return err
	}

	show, err := s.shows.GetByID(ctx, payment.ShowID)
	showTitle := ""
	if err == nil {
		showTitle = show.Title
	}

	s.enqueueReviewed(ctx, payment, showTitle, status)
	return nil
}

// feeCents resolves the fee in centavos: the persisted reservation_fee
// wins, older rows without one fall back to the policy.
func (s *PaymentService) feeCents(show *showmodel.Show) (int64, error) {
	if show.ReservationFee != nil && show.ReservationFee.IsPositive() {
		return show.ReservationFee.Shift(2).IntPart(), nil
	}

	if show.Price != nil {
		fee := s.feeCalc.ReservationFee(*show.Price, string(show.Niche))
		if fee.GreaterThan(decimal.Zero) {
			return fee.Shift(2).IntPart(), nil
		}
	}

	return 0, model.ErrNoReservationFee
}

func (s *PaymentService) enqueueSubmitted(ctx context.Context, payment *model.Payment, showTitle string) {
	payload, err := json.Marshal(model.PaymentSubmittedPayload{
		PaymentID:   payment.ID,
		ShowID:      payment.ShowID,
		ShowTitle:   showTitle,
		UserID:      *payment.UserID,
		AmountCents: payment.AmountCents,
	})
	if err != nil {
		logger.Error("Failed to encode payment confirmation", err)
		return
	}

	task := asynq.NewTask(shared.TypePaymentSubmitted, payload)
	if _, err := s.enqueuer.EnqueueContext(ctx, task, asynq.Queue(shared.QueuePayments)); err != nil {
		// The payment is already recorded; the confirmation is best-effort
		logger.Error("Failed to enqueue payment confirmation", err)
	}
}

func (s *PaymentService) enqueueReviewed(ctx context.Context, payment *model.Payment, showTitle string, status model.PaymentStatus) {
	reviewPayload := model.PaymentReviewedPayload{
		PaymentID: payment.ID,
		ShowTitle: showTitle,
		Status:    string(status),
		UserID:    payment.UserID,
		Email:     payment.PayerEmail(),
	}

	payload, err := json.Marshal(reviewPayload)
	if err != nil {
		logger.Error("Failed to encode review notification", err)
		return
	}

	task := asynq.NewTask(shared.TypePaymentReviewed, payload)
	if _, err := s.enqueuer.EnqueueContext(ctx, task, asynq.Queue(shared.QueuePayments)); err != nil {
		logger.Error("Failed to enqueue review notification", err)
	}
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
