package repository

import (
	"context"

	"renov-srv/internal/model"
)

//go:generate mockery --name ConsultRepository
type ConsultRepository interface {
	CreateSession(ctx context.Context, opts CreateSessionOptions) (*model.ConsultSession, error)
	GetSession(ctx context.Context, sessionID int64) (*model.ConsultSession, error)

	// ListRecentMessages returns the newest messages of a session in
	// ascending id order, capped at limit.
	ListRecentMessages(ctx context.Context, sessionID int64, limit int) ([]model.ConsultMessage, error)

	// AppendMessage inserts a single message outside any exchange
	// (escalated sessions).
	AppendMessage(ctx context.Context, opts AppendMessageOptions) (*model.ConsultMessage, error)

	// AppendExchange inserts the user message and the assistant reply,
	// and applies the guarded quota increment when Quota is set, all in
	// one transaction. A full quota aborts the whole exchange with
	// ErrQuotaExhausted.
	AppendExchange(ctx context.Context, opts AppendExchangeOptions) (*model.ConsultMessage, *model.ConsultMessage, error)

	// GetQuotaUsed reads the owner's counter for the month; zero when
	// absent.
	GetQuotaUsed(ctx context.Context, ownerID, yearMonth string) (int, error)

	Escalate(ctx context.Context, sessionID int64) error
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	ConsultRepository
}
