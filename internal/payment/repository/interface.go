package repository

import (
	"context"

	"renov-srv/internal/model"
)

//go:generate mockery --name PaymentRepository
type PaymentRepository interface {
	CreateOrder(ctx context.Context, opts CreateOrderOptions) (*model.PaymentOrder, error)
	GetOrder(ctx context.Context, opts GetOrderOptions) (*model.PaymentOrder, error)

	// ConfirmPaid moves a created order to paid and unlocks its report.
	// Both writes commit in the same transaction; a second confirmation
	// of the same order returns ErrOrderNotPayable.
	ConfirmPaid(ctx context.Context, opts ConfirmPaidOptions) (*model.PaymentOrder, error)
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	PaymentRepository
}
