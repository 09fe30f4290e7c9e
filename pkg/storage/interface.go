package storage

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// IStorage is the object store client used for report sources and photos.
type IStorage interface {
	Connect(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Close() error

	Upload(ctx context.Context, req *UploadRequest) (*FileInfo, error)
	Download(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	PresignedGetURL(ctx context.Context, bucket, key string, expiry time.Duration) (*PresignedURL, error)
	Delete(ctx context.Context, bucket, key string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)

	DocsBucket() string
	PhotosBucket() string
}

// NewStorage creates a new object store client. It does not connect;
// call Connect before use.
func NewStorage(cfg Config) (IStorage, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, err
	}

	return &implStorage{
		client: client,
		config: cfg,
	}, nil
}
