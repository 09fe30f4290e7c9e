package storage

import (
	"io"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
)

// Config holds the object store configuration.
type Config struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	Region       string
	BucketDocs   string
	BucketPhotos string
}

// implStorage implements IStorage.
type implStorage struct {
	client    *minio.Client
	config    Config
	mu        sync.RWMutex
	connected bool
}

// FileInfo represents metadata about a stored object.
type FileInfo struct {
	Bucket       string            `json:"bucket"`
	Key          string            `json:"key"`
	OriginalName string            `json:"original_name"`
	Size         int64             `json:"size"`
	ContentType  string            `json:"content_type"`
	ETag         string            `json:"etag"`
	LastModified time.Time         `json:"last_modified"`
	Metadata     map[string]string `json:"metadata"`
}

// UploadRequest contains the parameters for uploading an object.
type UploadRequest struct {
	Bucket       string
	Key          string
	OriginalName string
	Reader       io.Reader
	Size         int64
	ContentType  string
	Metadata     map[string]string
}

// PresignedURL is a time-limited download URL for an object.
type PresignedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
