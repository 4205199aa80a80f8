// Package minioinfra stores uploaded objects in a MinIO (or other S3-compatible) bucket.
package minioinfra

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/homefix-api/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store wraps minio-go for a single bucket.
type Store struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewClient creates a minio client from the MINIO_* settings.
func NewClient(cfg *config.Config) (*minio.Client, error) {
	// minio-go expects host:port without a scheme
	endpoint := strings.TrimPrefix(cfg.MinIOEndpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return client, nil
}

func NewStore(client *minio.Client, bucket string, cfg *config.Config) *Store {
	return &Store{client: client, bucket: bucket, baseURL: publicBase(cfg, bucket)}
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

func (s *Store) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func (s *Store) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

func publicBase(cfg *config.Config, bucket string) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL + "/" + bucket
	}
	endpoint := strings.TrimRight(cfg.MinIOEndpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		scheme := "http://"
		if cfg.MinIOUseSSL {
			scheme = "https://"
		}
		endpoint = scheme + endpoint
	}
	return endpoint + "/" + bucket
}
