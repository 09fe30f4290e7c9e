package payment

import "renov-srv/internal/model"

type CreateOrderInput struct {
	ReportID int64
}

type ConfirmPaidInput struct {
	OrderID int64
}

type OrderOutput struct {
	Order *model.PaymentOrder
}
