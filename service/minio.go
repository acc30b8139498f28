package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/akashkendre1298/vastureports/config"
	"github.com/akashkendre1298/vastureports/model"
)

// MinioService hands generated reports to the browser through presigned MinIO links
type MinioService struct {
	client *minio.Client
	bucket string
	config *config.MinioConfig
}

func NewMinioService(cfg *config.MinioConfig) (*MinioService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioService{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *MinioService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Expiry is the lifetime of a presigned download link
func (s *MinioService) Expiry() time.Duration {
	return time.Duration(s.config.ExpireMinutes) * time.Minute
}

// ObjectName is the key an artifact is uploaded under
func ObjectName(kind model.ReportKind, id, filename string) string {
	return fmt.Sprintf("reports/%s/%s/%s", kind, id, filename)
}

// Publish uploads artifact and returns a presigned URL that downloads it under its report filename
func (s *MinioService) Publish(ctx context.Context, kind model.ReportKind, id string, artifact *model.Artifact) (string, error) {
	objectName := ObjectName(kind, id, artifact.Filename)

	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(artifact.Data), int64(len(artifact.Data)),
		minio.PutObjectOptions{ContentType: artifact.ContentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	params := url.Values{}
	params.Set("response-content-disposition", ContentDisposition(artifact.Filename))

	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, s.Expiry(), params)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return u.String(), nil
}

// ContentDisposition is the attachment header value for filename
func ContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
