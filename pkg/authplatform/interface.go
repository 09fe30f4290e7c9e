package authplatform

import (
	"context"

	pkgHTTP "renov-srv/pkg/http"
)

// IAuthPlatform exchanges mobile-client login codes for platform sessions.
type IAuthPlatform interface {
	ExchangeCode(ctx context.Context, code string) (*Session, error)
}

// New creates a new platform auth client. Returns the interface.
func New(client pkgHTTP.IClient, cfg Config) IAuthPlatform {
	return &implAuthPlatform{
		client: client,
		config: cfg,
	}
}
