package llmagent

import (
	"context"
	"time"

	pkghttp "renov-srv/pkg/http"
	"renov-srv/pkg/log"
	"renov-srv/pkg/resilience"
)

// IAgent is the LLM agent used for report analysis and consultation.
// Callers bound each invocation with a context deadline.
type IAgent interface {
	Invoke(ctx context.Context, req *InvokeRequest) (*InvokeResult, error)
}

// NewAgent creates a new agent client. Returns the interface.
func NewAgent(cfg Config, l log.Logger) IAgent {
	return &implAgent{
		config: cfg,
		client: pkghttp.NewClient(pkghttp.ClientConfig{
			Timeout:   60 * time.Second,
			Retries:   1,
			RetryWait: time.Second,
		}),
		exec:         resilience.NewExecutor(resilience.Config{}, l),
		l:            l,
		pollInterval: 2 * time.Second,
	}
}
