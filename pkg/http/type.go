package http

import (
	"net/http"
	"time"
)

// ClientConfig holds configuration for the outbound HTTP client shared
// by the OCR, LLM, enrichment and auth platform adapters.
type ClientConfig struct {
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
}

// clientImpl implements IClient.
type clientImpl struct {
	client *http.Client
	config ClientConfig
}
