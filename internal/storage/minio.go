package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage wraps a MinIO bucket. A nil *Storage is valid and rejects uploads,
// so object storage stays optional in local setups.
type Storage struct {
	client *minio.Client
	bucket string
	url    string
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Connect(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	if cfg.Endpoint == "" {
		logger.Println("minio disabled, no endpoint configured")
		return nil, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	logger.Printf("connected to minio at %s, bucket %s", cfg.Endpoint, cfg.Bucket)
	return &Storage{
		client: client,
		bucket: cfg.Bucket,
		url:    fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket),
	}, nil
}

// Upload writes data under key and returns the object URL.
func (s *Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("minio put %s: %w", key, err)
	}
	return s.url + "/" + key, nil
}
