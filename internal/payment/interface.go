package payment

import (
	"context"

	"renov-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// CreateOrder opens a paid-unlock order for one locked report.
	// Gateway interaction happens client-side; the order is the
	// server-side anchor the callback confirms against.
	CreateOrder(ctx context.Context, sc model.Scope, input CreateOrderInput) (OrderOutput, error)

	// ConfirmPaid marks the order paid and unlocks its report
	// atomically. Trusts the collaborator's verification.
	ConfirmPaid(ctx context.Context, sc model.Scope, input ConfirmPaidInput) (OrderOutput, error)
}
