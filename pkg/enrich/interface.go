package enrich

import (
	"context"
	"time"

	pkghttp "renov-srv/pkg/http"
	"renov-srv/pkg/log"
	"renov-srv/pkg/resilience"
)

// IEnrichment fetches third-party company background data. Both lookups
// are best-effort; callers degrade gracefully when they fail.
type IEnrichment interface {
	CompanyProfile(ctx context.Context, companyName string) (*CompanyProfile, error)
	Litigation(ctx context.Context, companyName string) ([]LitigationRecord, error)
}

// NewEnrichment creates a new enrichment client. Returns the interface.
func NewEnrichment(cfg Config, l log.Logger) IEnrichment {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &implEnrichment{
		config: cfg,
		client: pkghttp.NewClient(pkghttp.ClientConfig{
			Timeout:   cfg.Timeout,
			Retries:   2,
			RetryWait: 300 * time.Millisecond,
		}),
		exec: resilience.NewExecutor(resilience.Config{}, l),
		l:    l,
	}
}
