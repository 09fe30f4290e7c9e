package llmagent

import (
	"time"

	pkghttp "renov-srv/pkg/http"
	"renov-srv/pkg/log"
	"renov-srv/pkg/resilience"
)

// Config holds agent provider configuration. The chat-service provider
// is primary; the streaming provider is used when the primary fails and
// a fallback key is configured.
type Config struct {
	APIToken    string
	BotID       string
	SiteURL     string
	FallbackKey string
	FallbackURL string
}

// Role of a conversation turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one prior exchange in a conversation, prepended to the
// request so the agent sees the session history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// InvokeRequest carries one agent invocation.
type InvokeRequest struct {
	Prompt  string
	History []Turn
	// UserID keys provider-side conversation attribution.
	UserID string
}

// InvokeResult is the agent's reply.
type InvokeResult struct {
	Content  string
	Provider string // "chat" or "stream"
}

// implAgent implements IAgent.
type implAgent struct {
	config Config
	client pkghttp.IClient
	exec   *resilience.Executor
	l      log.Logger

	pollInterval time.Duration
}
