package llmagent

import (
	"context"
	"fmt"
)

// Invoke runs the prompt against the primary chat-service provider.
// When the primary fails and a fallback key is configured, the same
// request is replayed against the streaming provider under whatever
// time remains on the context.
func (a *implAgent) Invoke(ctx context.Context, req *InvokeRequest) (*InvokeResult, error) {
	if req == nil || req.Prompt == "" {
		return nil, fmt.Errorf("llmagent: empty prompt")
	}

	content, err := a.invokeChat(ctx, req)
	if err == nil {
		return &InvokeResult{Content: content, Provider: "chat"}, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if a.config.FallbackKey == "" {
		return nil, err
	}
	a.l.Warnf(ctx, "llmagent.Invoke: chat provider failed, trying stream fallback: %v", err)

	content, ferr := a.invokeStream(ctx, req)
	if ferr != nil {
		return nil, fmt.Errorf("llmagent: chat provider failed (%v); stream fallback failed: %w", err, ferr)
	}
	return &InvokeResult{Content: content, Provider: "stream"}, nil
}

// buildMessages flattens history plus the current prompt into the
// provider message list, oldest first.
func buildMessages(req *InvokeRequest) []Turn {
	msgs := make([]Turn, 0, len(req.History)+1)
	msgs = append(msgs, req.History...)
	msgs = append(msgs, Turn{Role: RoleUser, Content: req.Prompt})
	return msgs
}
