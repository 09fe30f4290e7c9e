package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
)

func validateConfig(cfg Config) error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("storage: endpoint is required")
	}
	if cfg.BucketDocs == "" || cfg.BucketPhotos == "" {
		return fmt.Errorf("storage: both buckets are required")
	}
	return nil
}

func (s *implStorage) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, bucket := range []string{s.config.BucketDocs, s.config.BucketPhotos} {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			s.connected = false
			return fmt.Errorf("storage: check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.config.Region}); err != nil {
				s.connected = false
				return fmt.Errorf("storage: create bucket %s: %w", bucket, err)
			}
		}
	}
	s.connected = true
	return nil
}

func (s *implStorage) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.connected {
		return fmt.Errorf("storage: not connected")
	}
	if _, err := s.client.BucketExists(ctx, s.config.BucketDocs); err != nil {
		return fmt.Errorf("storage: health check failed: %w", err)
	}
	return nil
}

func (s *implStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	return nil
}

func (s *implStorage) Upload(ctx context.Context, req *UploadRequest) (*FileInfo, error) {
	if req == nil || req.Bucket == "" || req.Key == "" || req.Reader == nil {
		return nil, fmt.Errorf("storage: invalid upload request")
	}

	opts := minio.PutObjectOptions{ContentType: req.ContentType}
	if req.Metadata != nil {
		opts.UserMetadata = req.Metadata
	} else {
		opts.UserMetadata = make(map[string]string)
	}
	if req.OriginalName != "" {
		opts.UserMetadata["original-name"] = req.OriginalName
	}

	info, err := s.client.PutObject(ctx, req.Bucket, req.Key, req.Reader, req.Size, opts)
	if err != nil {
		return nil, fmt.Errorf("storage: upload %s/%s: %w", req.Bucket, req.Key, err)
	}

	return &FileInfo{
		Bucket:       req.Bucket,
		Key:          req.Key,
		OriginalName: req.OriginalName,
		Size:         info.Size,
		ContentType:  req.ContentType,
		ETag:         info.ETag,
		LastModified: time.Now(),
		Metadata:     req.Metadata,
	}, nil
}

func (s *implStorage) Download(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage: download %s/%s: %w", bucket, key, err)
	}
	// GetObject is lazy; surface missing objects now.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("storage: stat %s/%s: %w", bucket, key, err)
	}
	return obj, nil
}

func (s *implStorage) PresignedGetURL(ctx context.Context, bucket, key string, expiry time.Duration) (*PresignedURL, error) {
	u, err := s.client.PresignedGetObject(ctx, bucket, key, expiry, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: presign %s/%s: %w", bucket, key, err)
	}
	return &PresignedURL{
		URL:       u.String(),
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

func (s *implStorage) Delete(ctx context.Context, bucket, key string) error {
	if err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *implStorage) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return false, nil
		}
		return false, fmt.Errorf("storage: stat %s/%s: %w", bucket, key, err)
	}
	return true, nil
}

func (s *implStorage) DocsBucket() string   { return s.config.BucketDocs }
func (s *implStorage) PhotosBucket() string { return s.config.BucketPhotos }
