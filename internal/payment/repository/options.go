package repository

import "time"

type CreateOrderOptions struct {
	OwnerID       string
	ReportVariant string
	ReportID      int64
	AmountFen     int64
}

type GetOrderOptions struct {
	OrderID int64
	OwnerID string
}

type ConfirmPaidOptions struct {
	OrderID int64
	OwnerID string
	Now     time.Time
}
