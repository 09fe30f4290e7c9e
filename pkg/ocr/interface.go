package ocr

import (
	"context"
	"time"

	"renov-srv/pkg/http"
	"renov-srv/pkg/log"
	"renov-srv/pkg/resilience"

	"golang.org/x/time/rate"
)

// IOCR extracts text from document photos and scans.
type IOCR interface {
	Recognize(ctx context.Context, req *RecognizeRequest) (*RecognizeResult, error)
}

// NewOCR creates a new OCR client. Returns the interface.
func NewOCR(cfg Config, l log.Logger) IOCR {
	if cfg.QPS <= 0 {
		cfg.QPS = 5
	}
	if cfg.MaxImageHeight <= 0 {
		cfg.MaxImageHeight = 4000
	}

	return &implOCR{
		config: cfg,
		client: http.NewClient(http.ClientConfig{
			Timeout:   30 * time.Second,
			Retries:   2,
			RetryWait: 500 * time.Millisecond,
		}),
		limiter: rate.NewLimiter(rate.Limit(cfg.QPS), 1),
		exec:    resilience.NewExecutor(resilience.Config{}, l),
		l:       l,
	}
}
