package http

import (
	"errors"

	"renov-srv/internal/entitlement"
	"renov-srv/pkg/response"
	"renov-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// @Summary Create an invitation code
// @Description Issue (or return) the caller's shareable invitation code
// @Tags Entitlements
// @Produce json
// @Success 200 {object} invitationResp
// @Failure 500 {object} response.Resp
// @Router /api/v1/invitations/create [post]
func (h *handler) CreateInvitation(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)

	o, err := h.uc.CreateInvitation(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "entitlement.delivery.http.CreateInvitation: usecase CreateInvitation failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newInvitationResp(o))
}

// @Summary List unlock entitlements
// @Tags Entitlements
// @Produce json
// @Success 200 {object} listEntitlementsResp
// @Router /api/v1/entitlements/list [get]
func (h *handler) ListEntitlements(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)

	o, err := h.uc.ListEntitlements(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "entitlement.delivery.http.ListEntitlements: usecase ListEntitlements failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListEntitlementsResp(o))
}

// @Summary Spend an entitlement on a report
// @Description Unlock one locked report with an available entitlement
// @Tags Entitlements
// @Accept json
// @Produce json
// @Param body body consumeReq true "Consume request"
// @Success 200 {object} consumeResp
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/invitations/use-free-unlock [post]
func (h *handler) ConsumeEntitlement(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processConsumeRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "entitlement.delivery.http.ConsumeEntitlement: processConsumeRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	if err := h.uc.ConsumeEntitlement(ctx, sc, req.toInput()); err != nil {
		// Having nothing to spend is a normal outcome, not a fault.
		if errors.Is(err, entitlement.ErrNoEntitlement) {
			response.OK(c, consumeResp{Unlocked: false})
			return
		}
		h.l.Errorf(ctx, "entitlement.delivery.http.ConsumeEntitlement: usecase ConsumeEntitlement failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, consumeResp{Unlocked: true})
}
