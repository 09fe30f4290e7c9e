package consult

import (
	"context"

	"renov-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// CreateSession opens a consultation session, optionally linked to
	// one of the caller's reports.
	CreateSession(ctx context.Context, sc model.Scope, input CreateSessionInput) (SessionOutput, error)

	// PostMessage appends the user message, obtains the assistant reply
	// and appends it. Both writes and the quota increment commit in one
	// transaction. Escalated sessions record the message without
	// invoking the assistant.
	PostMessage(ctx context.Context, sc model.Scope, input PostMessageInput) (MessageOutput, error)

	GetSession(ctx context.Context, sc model.Scope, input GetSessionInput) (SessionDetailOutput, error)

	// Escalate hands the session to human review. Later messages are
	// queued for a human instead of the assistant.
	Escalate(ctx context.Context, sc model.Scope, input EscalateInput) (SessionOutput, error)
}
