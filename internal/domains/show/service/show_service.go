package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"stagelink-backend/internal/domains/pricing"
	"stagelink-backend/internal/domains/show/model"
	"stagelink-backend/internal/domains/show/repository"
	"stagelink-backend/internal/infrastructure/storage"
	"stagelink-backend/pkg/cache"
	"stagelink-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cache keys invalidated when a producer's shows change
const (
	cacheKeyFeedSnapshot   = "shows:feed"
	cacheKeyProducerPrefix = "shows:producer:"
)

type ShowService struct {
	repo      repository.RepositoryInterface
	storage   PosterStorage
	processor *storage.ImageProcessor
	feeCalc   *pricing.FeeCalculator
	cache     cache.Cache
}

func NewShowService(
	repo repository.RepositoryInterface,
	posterStorage PosterStorage,
	processor *storage.ImageProcessor,
	feeCalc *pricing.FeeCalculator,
	cacheClient cache.Cache,
) ServiceInterface {
	return &ShowService{
		repo:      repo,
		storage:   posterStorage,
		processor: processor,
		feeCalc:   feeCalc,
		cache:     cacheClient,
	}
}

// Create validates the draft, assembles the record and inserts it with
// status forced to pending. The poster, when present, is validated and
// uploaded before the insert; any failure aborts the whole submission.
func (s *ShowService) Create(ctx context.Context, producerID uuid.UUID, req *model.ShowRequest, poster []byte) (*model.Show, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	show, err := s.assemble(producerID, req)
	if err != nil {
		return nil, err
	}
	show.ID = uuid.New()
	show.Status = model.StatusPending

	if len(poster) > 0 {
		url, err := s.uploadPoster(ctx, producerID, poster)
		if err != nil {
			return nil, err
		}
		show.PosterURL = &url
	}

	if err := s.repo.Insert(ctx, show); err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, producerID)
	return show, nil
}

// Update rewrites content fields of an owned show. Moderation status is
// left untouched; the reservation fee is recomputed because price or
// niche may have changed.
func (s *ShowService) Update(ctx context.Context, producerID, showID uuid.UUID, req *model.ShowRequest, poster []byte) (*model.Show, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if existing.ProducerID != producerID {
		return nil, model.ErrNotOwner
	}
	if existing.IsDeleted() {
		return nil, model.ErrShowDeleted
	}

	show, err := s.assemble(producerID, req)
	if err != nil {
		return nil, err
	}
	show.ID = existing.ID
	show.Status = existing.Status
	show.IsFeatured = existing.IsFeatured
	show.CreatedAt = existing.CreatedAt
	show.PosterURL = existing.PosterURL

	replaced := len(poster) > 0 && existing.PosterURL != nil
	if len(poster) > 0 {
		url, err := s.uploadPoster(ctx, producerID, poster)
		if err != nil {
			return nil, err
		}
		show.PosterURL = &url
	}

	if err := s.repo.Update(ctx, show); err != nil {
		return nil, err
	}

	// The replaced poster object is orphaned once the row points at the
	// new one; removal failures are logged, never surfaced.
	if replaced {
		s.deletePoster(ctx, *existing.PosterURL)
	}

	s.invalidateCaches(ctx, producerID)
	return show, nil
}

// GetForEdit returns the decomposed form values for an owned show
func (s *ShowService) GetForEdit(ctx context.Context, producerID, showID uuid.UUID) (*model.ShowEditForm, error) {
	show, err := s.repo.GetByID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if show.ProducerID != producerID {
		return nil, model.ErrNotOwner
	}

	return model.NewEditForm(show), nil
}

func (s *ShowService) ListByProducer(ctx context.Context, producerID uuid.UUID) ([]model.Show, error) {
	return s.repo.ListByProducer(ctx, producerID)
}

// assemble turns the validated draft into a persistable record using the
// duration, schedule and fee composition rules.
func (s *ShowService) assemble(producerID uuid.UUID, req *model.ShowRequest) (*model.Show, error) {
	date, scheduleMeta, err := req.Schedule().Compose()
	if err != nil {
		return nil, &model.ValidationError{Message: err.Error()}
	}

	show := &model.Show{
		ProducerID:           producerID,
		Title:                req.Title,
		Description:          optional(req.Description),
		Director:             optional(req.Director),
		Duration:             model.ComposeDuration(req.DurationHours, req.DurationMinutes),
		Date:                 date,
		Metadata:             model.Metadata{Schedule: scheduleMeta},
		Venue:                req.Venue,
		City:                 req.City,
		Niche:                model.Niche(req.Niche),
		TicketLink:           optional(req.TicketLink),
		PaymentInstructions:  optional(req.PaymentInstructions),
		CollectBalanceOnsite: req.CollectBalanceOnsite,
		ProductionStatus:     model.ProductionStatus(req.ProductionStatus),
	}
	if show.ProductionStatus == "" {
		show.ProductionStatus = model.ProductionOngoing
	}

	// Empty collections stay nil; the repository persists them as NULL
	if len(req.Genres) > 0 {
		show.Genres = req.Genres
	}
	if len(req.Tags) > 0 {
		show.Tags = req.Tags
	}
	if len(req.CastMembers) > 0 {
		show.CastMembers = req.CastMembers
	}

	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		fee := s.feeCalc.ReservationFee(price, req.Niche)
		show.Price = &price
		show.ReservationFee = &fee
	}

	return show, nil
}

func (s *ShowService) uploadPoster(ctx context.Context, producerID uuid.UUID, data []byte) (string, error) {
	if err := s.processor.ValidateImage(data); err != nil {
		return "", &model.ValidationError{Message: err.Error()}
	}

	processed, err := s.processor.ProcessPoster(data)
	if err != nil {
		return "", fmt.Errorf("process poster: %w", err)
	}

	key := fmt.Sprintf("%s/%d.jpg", producerID, time.Now().UnixNano())
	url, err := s.storage.UploadPoster(ctx, key, processed)
	if err != nil {
		return "", fmt.Errorf("upload poster: %w", err)
	}
	return url, nil
}

func (s *ShowService) deletePoster(ctx context.Context, posterURL string) {
	key := posterKeyFromURL(posterURL)
	if key == "" {
		return
	}
	if err := s.storage.DeletePoster(ctx, key); err != nil {
		logger.Warn("Failed to delete replaced poster", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// posterKeyFromURL recovers the object key from a public poster URL of
// the form http://<host>/<bucket>/<producer_id>/<ts>.jpg
func posterKeyFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return ""
	}
	return parts[1]
}

// invalidateCaches drops the cached views that depend on this producer's
// shows. Cache failures are logged, never surfaced.
func (s *ShowService) invalidateCaches(ctx context.Context, producerID uuid.UUID) {
	keys := []string{cacheKeyFeedSnapshot, cacheKeyProducerPrefix + producerID.String()}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("Failed to invalidate show caches", map[string]interface{}{
			"producer_id": producerID,
			"error":       err.Error(),
		})
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
