package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"stagelink-backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStorage handles uploads to the show-posters and payment-proofs buckets.
// Posters are public; proofs are only reachable through presigned URLs.
type MinIOStorage struct {
	client       *minio.Client
	posterBucket string
	proofBucket  string
}

func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	s := &MinIOStorage{
		client:       client,
		posterBucket: cfg.PosterBucket,
		proofBucket:  cfg.ProofBucket,
	}

	ctx := context.Background()
	for _, bucket := range []string{cfg.PosterBucket, cfg.ProofBucket} {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
	}

	return s, nil
}

// UploadPoster stores a processed poster and returns its public URL.
// key convention: <producer_id>/<unix_ts>.jpg
func (s *MinIOStorage) UploadPoster(ctx context.Context, key string, data []byte) (string, error) {
	if err := s.put(ctx, s.posterBucket, key, data, "image/jpeg"); err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s/%s/%s", s.client.EndpointURL().Host, s.posterBucket, key), nil
}

// UploadProof stores a payment-proof image and returns the object key.
// The key, not a URL, is persisted; access goes through PresignProofURL.
func (s *MinIOStorage) UploadProof(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := s.put(ctx, s.proofBucket, key, data, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// PresignProofURL generates a time-limited retrieval URL for a proof object
func (s *MinIOStorage) PresignProofURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.proofBucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign proof url: %w", err)
	}
	return presigned.String(), nil
}

// DeletePoster removes a poster object, used when a show's poster is replaced
func (s *MinIOStorage) DeletePoster(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.posterBucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete poster: %w", err)
	}
	return nil
}

func (s *MinIOStorage) put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(
		ctx,
		bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return fmt.Errorf("failed to upload to %s: %w", bucket, err)
	}
	return nil
}
