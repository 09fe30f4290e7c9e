package scope

import (
	"context"

	"renov-srv/internal/model"
)

// Payload is the verified token payload.
type Payload struct {
	UserID    string
	Subject   string
	Role      string
	Issuer    string
	ID        string
	IssuedAt  int64
	ExpiresAt int64
}

// Manager verifies an access token into a Payload.
type Manager interface {
	Verify(token string) (Payload, error)
}

type scopeKey struct{}
type payloadKey struct{}

// NewScope builds the request scope from a verified payload.
func NewScope(payload Payload) model.Scope {
	userID := payload.UserID
	if userID == "" {
		userID = payload.Subject
	}
	return model.Scope{
		UserID: userID,
		Role:   payload.Role,
	}
}

// SetScopeToContext attaches the scope to the context.
func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, sc)
}

// GetScopeFromContext returns the scope, or a zero scope when absent.
func GetScopeFromContext(ctx context.Context) model.Scope {
	sc, _ := ctx.Value(scopeKey{}).(model.Scope)
	return sc
}

// SetPayloadToContext attaches the raw token payload to the context.
func SetPayloadToContext(ctx context.Context, p Payload) context.Context {
	return context.WithValue(ctx, payloadKey{}, p)
}

// GetPayloadFromContext returns the token payload, or a zero payload when absent.
func GetPayloadFromContext(ctx context.Context) Payload {
	p, _ := ctx.Value(payloadKey{}).(Payload)
	return p
}
