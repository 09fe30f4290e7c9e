package model

import "time"

// Payment order statuses.
const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
)

// PaymentOrder is a thin record of a paid-unlock purchase. Gateway
// verification happens outside this service; confirm-paid trusts the
// collaborator's callback.
type PaymentOrder struct {
	ID            int64
	OwnerID       string
	ReportVariant string
	ReportID      int64
	AmountFen     int64
	Status        string
	CreatedAt     time.Time
	PaidAt        *time.Time
}
