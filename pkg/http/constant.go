package http

import "time"

const (
	// DefaultTimeout fits the slowest outbound dependencies, the
	// enrichment and auth platform providers.
	DefaultTimeout = 30 * time.Second
	// DefaultRetries is the default number of retries.
	DefaultRetries = 3
	// DefaultRetryWait is the fixed pause between attempts.
	DefaultRetryWait = 1 * time.Second
)

// DefaultConfig returns default ClientConfig.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		Timeout:   DefaultTimeout,
		Retries:   DefaultRetries,
		RetryWait: DefaultRetryWait,
	}
}
