package service

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"sync"
	"testing"

	"stagelink-backend/internal/domains/pricing"
	"stagelink-backend/internal/domains/show/model"
	"stagelink-backend/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePosterStorage struct {
	mu      sync.Mutex
	uploads []string
	deleted []string
}

func (s *fakePosterStorage) UploadPoster(ctx context.Context, key string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, key)
	return "http://minio.local/show-posters/" + key, nil
}

func (s *fakePosterStorage) DeletePoster(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}

func posterBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 60))
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, img, nil))
	return buf.Bytes()
}

func draftRequest() *model.ShowRequest {
	price := 500.0
	return &model.ShowRequest{
		Title:        "Mula sa Buwan",
		ScheduleKind: "single",
		Date:         "2026-04-01",
		Venue:        "Samsung Performing Arts Theater",
		City:         "Makati",
		Niche:        "local",
		Price:        &price,
	}
}

func newAuthoringService(repo *fakeShowRepo, posters *fakePosterStorage) ServiceInterface {
	return NewShowService(repo, posters, storage.NewImageProcessor(), pricing.NewFeeCalculator(), newFakeCache())
}

func TestUpdateReplacingPosterDeletesOldObject(t *testing.T) {
	repo := newFakeShowRepo()
	posters := &fakePosterStorage{}
	svc := newAuthoringService(repo, posters)
	producerID := uuid.New()

	created, err := svc.Create(context.Background(), producerID, draftRequest(), posterBytes(t))
	require.NoError(t, err)
	require.NotNil(t, created.PosterURL)
	require.Len(t, posters.uploads, 1)
	oldKey := posters.uploads[0]

	updated, err := svc.Update(context.Background(), producerID, created.ID, draftRequest(), posterBytes(t))
	require.NoError(t, err)
	require.NotNil(t, updated.PosterURL)
	assert.NotEqual(t, *created.PosterURL, *updated.PosterURL)

	// The orphaned object is removed once the row points at the new one
	assert.Equal(t, []string{oldKey}, posters.deleted)
}

func TestUpdateWithoutNewPosterKeepsOldObject(t *testing.T) {
	repo := newFakeShowRepo()
	posters := &fakePosterStorage{}
	svc := newAuthoringService(repo, posters)
	producerID := uuid.New()

	created, err := svc.Create(context.Background(), producerID, draftRequest(), posterBytes(t))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), producerID, created.ID, draftRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, created.PosterURL, updated.PosterURL)
	assert.Empty(t, posters.deleted)
}

func TestPosterKeyFromURL(t *testing.T) {
	key := posterKeyFromURL("http://minio.local/show-posters/abc/123.jpg")
	assert.Equal(t, "abc/123.jpg", key)

	assert.Empty(t, posterKeyFromURL("http://minio.local/show-posters"))
	assert.Empty(t, posterKeyFromURL("://bad"))
}
