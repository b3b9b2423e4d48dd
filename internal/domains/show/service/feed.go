package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"stagelink-backend/internal/domains/show/model"
	"stagelink-backend/internal/domains/show/repository"
	"stagelink-backend/pkg/cache"
	"stagelink-backend/pkg/logger"

	"github.com/google/uuid"
)

// PageSize is the fixed reveal increment of the public directory
const PageSize = 12

const feedSnapshotTTL = 5 * time.Minute

// FeedTab is the temporal bucket selector
type FeedTab string

const (
	TabUpcoming FeedTab = "upcoming"
	TabOngoing  FeedTab = "ongoing"
	TabPast     FeedTab = "past"
)

// FeedFilter is the full directory filter state. All criteria are
// conjunctive; zero values mean "no restriction" except Tab, which
// always selects exactly one bucket.
type FeedFilter struct {
	Query    string
	City     string
	Genre    string
	Tab      FeedTab
	FromDate *time.Time
}

// FeedPage is one revealed prefix of the filtered list
type FeedPage struct {
	Shows    []model.Show `json:"shows"`
	Total    int          `json:"total"`
	Revealed int          `json:"revealed"`
	HasMore  bool         `json:"has_more"`
}

type FeedService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
	now   func() time.Time
}

func NewFeedService(repo repository.RepositoryInterface, cacheClient cache.Cache) FeedInterface {
	return &FeedService{
		repo:  repo,
		cache: cacheClient,
		now:   time.Now,
	}
}

// Browse applies the filter pipeline to the approved-show snapshot and
// reveals the first `pages` pages. refresh bypasses the cached snapshot.
func (s *FeedService) Browse(ctx context.Context, filter FeedFilter, pages int, refresh bool) (*FeedPage, error) {
	snapshot, err := s.snapshot(ctx, refresh)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(s.now())
	filtered := FilterShows(snapshot, filter, today)
	return Paginate(filtered, pages), nil
}

func (s *FeedService) GetApproved(ctx context.Context, showID uuid.UUID) (*model.Show, error) {
	show, err := s.repo.GetByID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if show.IsDeleted() {
		return nil, model.ErrShowNotFound
	}
	if show.Status != model.StatusApproved {
		return nil, model.ErrShowNotFound
	}
	return show, nil
}

// snapshot returns the approved-show list, served from Redis when warm.
// Cache failures degrade to a direct database read.
func (s *FeedService) snapshot(ctx context.Context, refresh bool) ([]model.Show, error) {
	if !refresh {
		var cached []model.Show
		found, err := s.cache.Get(ctx, cacheKeyFeedSnapshot, &cached)
		if err != nil {
			logger.Warn("Feed snapshot cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		if found {
			return cached, nil
		}
	}

	shows, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKeyFeedSnapshot, shows, feedSnapshotTTL); err != nil {
		logger.Warn("Failed to cache feed snapshot", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return shows, nil
}

// FilterShows runs the directory pipeline over a snapshot: text search,
// then city, then genre, then the temporal bucket, then featured-first
// ordering. The input slice is never mutated.
func FilterShows(snapshot []model.Show, filter FeedFilter, today time.Time) []model.Show {
	out := make([]model.Show, 0, len(snapshot))

	// The filter bars send "All" as a real value meaning no restriction
	city := filter.City
	if city == "All" {
		city = ""
	}
	genre := filter.Genre
	if genre == "All" {
		genre = ""
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, show := range snapshot {
		if query != "" && !matchesQuery(&show, query) {
			continue
		}
		if city != "" && show.City != city {
			continue
		}
		if genre != "" && !matchesGenre(&show, genre) {
			continue
		}
		if filter.FromDate != nil && !endsOnOrAfter(&show, *filter.FromDate) {
			continue
		}
		if !inBucket(&show, filter.Tab, today) {
			continue
		}
		out = append(out, show)
	}

	sortBucket(out, filter.Tab)
	return out
}

// Paginate reveals the first `pages` pages of the filtered list. Pages
// are zero-based: pages=1 reveals one page.
func Paginate(filtered []model.Show, pages int) *FeedPage {
	if pages < 1 {
		pages = 1
	}

	total := len(filtered)
	revealed := pages * PageSize
	if revealed > total {
		revealed = total
	}

	return &FeedPage{
		Shows:    filtered[:revealed],
		Total:    total,
		Revealed: revealed,
		HasMore:  revealed < total,
	}
}

func matchesQuery(show *model.Show, query string) bool {
	if strings.Contains(strings.ToLower(show.Title), query) {
		return true
	}
	if show.Description != nil && strings.Contains(strings.ToLower(*show.Description), query) {
		return true
	}
	return false
}

// matchesGenre matches an exact genre tag, with two special values that
// select by producer niche instead.
func matchesGenre(show *model.Show, genre string) bool {
	switch genre {
	case "Local/Community":
		return show.Niche == model.NicheLocal
	case "University":
		return show.Niche == model.NicheUniversity
	}
	return containsFold(show.Genres, genre)
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

func endsOnOrAfter(show *model.Show, from time.Time) bool {
	_, end, ok := model.EffectiveRange(show.Date, show.Metadata.Schedule)
	if !ok {
		return false
	}
	return !end.Before(truncateToDay(from))
}

// inBucket assigns the show to exactly one temporal bucket.
//
// Shows with a derivable range bucket by date, with one override: a
// range that has lapsed stays ongoing while the producer still marks
// the production ongoing. Shows with no derivable range fall back to
// the production status alone and never appear under upcoming.
func inBucket(show *model.Show, tab FeedTab, today time.Time) bool {
	start, end, ok := model.EffectiveRange(show.Date, show.Metadata.Schedule)

	switch tab {
	case TabUpcoming:
		return ok && start.After(today)

	case TabOngoing:
		if !ok {
			return show.ProductionStatus == model.ProductionOngoing
		}
		if !start.After(today) && !end.Before(today) {
			return true
		}
		return show.ProductionStatus == model.ProductionOngoing && !start.After(today)

	case TabPast:
		if !ok {
			return show.ProductionStatus == model.ProductionCompleted
		}
		if !end.Before(today) {
			return false
		}
		// Lapsed range claimed by the ongoing override
		if show.ProductionStatus == model.ProductionOngoing && !start.After(today) {
			return false
		}
		return true

	default:
		return inBucket(show, TabUpcoming, today)
	}
}

// sortBucket orders featured shows first, then by start date: soonest
// first for upcoming, most recent first otherwise. The sort is stable
// so equal keys keep the snapshot's created_at ordering.
func sortBucket(shows []model.Show, tab FeedTab) {
	sort.SliceStable(shows, func(i, j int) bool {
		if shows[i].IsFeatured != shows[j].IsFeatured {
			return shows[i].IsFeatured
		}

		si, _, iOK := model.EffectiveRange(shows[i].Date, shows[i].Metadata.Schedule)
		sj, _, jOK := model.EffectiveRange(shows[j].Date, shows[j].Metadata.Schedule)
		if iOK != jOK {
			return iOK
		}
		if !iOK {
			return false
		}

		if tab == TabUpcoming {
			return si.Before(sj)
		}
		return sj.Before(si)
	})
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
