package storage

import "time"

const (
	// DocURLExpiry is the lifetime of presigned URLs for analyzed documents.
	DocURLExpiry = 1 * time.Hour
	// PhotoURLExpiry is the lifetime of presigned URLs for shared photos.
	PhotoURLExpiry = 24 * time.Hour

	maxIdleConns        = 100
	maxIdleConnsPerHost = 10
	idleConnTimeout     = 90 * time.Second
)
