package http

import (
	"renov-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary Create a paid-unlock order
// @Description Open an order for unlocking one locked report
// @Tags Payments
// @Accept json
// @Produce json
// @Param body body createOrderReq true "Create order request"
// @Success 200 {object} orderResp
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/payments/create [post]
func (h *handler) CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processCreateOrderRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "payment.delivery.http.CreateOrder: processCreateOrderRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.CreateOrder(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "payment.delivery.http.CreateOrder: usecase CreateOrder failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newOrderResp(o))
}

// @Summary Confirm an order as paid
// @Description Settle an order after gateway verification and unlock its report
// @Tags Payments
// @Accept json
// @Produce json
// @Param body body confirmPaidReq true "Confirm paid request"
// @Success 200 {object} orderResp
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/payments/confirm-paid [post]
func (h *handler) ConfirmPaid(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processConfirmPaidRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "payment.delivery.http.ConfirmPaid: processConfirmPaidRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.ConfirmPaid(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "payment.delivery.http.ConfirmPaid: usecase ConfirmPaid failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newOrderResp(o))
}
