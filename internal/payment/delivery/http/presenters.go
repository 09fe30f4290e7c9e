package http

import "renov-srv/internal/payment"

type createOrderReq struct {
	ReportID int64 `json:"report_id" binding:"required"`
}

func (r createOrderReq) toInput() payment.CreateOrderInput {
	return payment.CreateOrderInput{
		ReportID: r.ReportID,
	}
}

type confirmPaidReq struct {
	OrderID int64 `json:"order_id" binding:"required"`
}

func (r confirmPaidReq) toInput() payment.ConfirmPaidInput {
	return payment.ConfirmPaidInput{
		OrderID: r.OrderID,
	}
}

type orderResp struct {
	ID        int64  `json:"id"`
	ReportID  int64  `json:"report_id"`
	Variant   string `json:"variant"`
	AmountFen int64  `json:"amount_fen"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
	PaidAt    *int64 `json:"paid_at,omitempty"`
}

func (h *handler) newOrderResp(o payment.OrderOutput) orderResp {
	resp := orderResp{
		ID:        o.Order.ID,
		ReportID:  o.Order.ReportID,
		Variant:   o.Order.ReportVariant,
		AmountFen: o.Order.AmountFen,
		Status:    o.Order.Status,
		CreatedAt: o.Order.CreatedAt.Unix(),
	}
	if o.Order.PaidAt != nil {
		ts := o.Order.PaidAt.Unix()
		resp.PaidAt = &ts
	}
	return resp
}
