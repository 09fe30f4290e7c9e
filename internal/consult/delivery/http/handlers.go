package http

import (
	"renov-srv/internal/consult"
	"renov-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary Create a consultation session
// @Description Open a session, optionally linked to one of your reports
// @Tags Consultation
// @Accept json
// @Produce json
// @Param body body createSessionReq true "Session request"
// @Success 200 {object} sessionResp
// @Failure 403 {object} response.Resp
// @Router /api/v1/consultation/session [post]
func (h *handler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processCreateSessionRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "consult.delivery.http.CreateSession: processCreateSessionRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.CreateSession(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "consult.delivery.http.CreateSession: usecase CreateSession failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newSessionResp(o.Session))
}

// @Summary Post a consultation message
// @Description Append a message and receive the assistant reply
// @Tags Consultation
// @Accept json
// @Produce json
// @Param body body postMessageReq true "Message request"
// @Success 200 {object} postMessageResp
// @Failure 403 {object} response.Resp
// @Failure 422 {object} response.Resp
// @Router /api/v1/consultation/message [post]
func (h *handler) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processPostMessageRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "consult.delivery.http.PostMessage: processPostMessageRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.PostMessage(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "consult.delivery.http.PostMessage: usecase PostMessage failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newPostMessageResp(o))
}

// @Summary Get a consultation session
// @Description Return session info with its recent messages
// @Tags Consultation
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} sessionDetailResp
// @Failure 404 {object} response.Resp
// @Router /api/v1/consultation/session/{id} [get]
func (h *handler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	id, sc, err := h.processSessionIDRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "consult.delivery.http.GetSession: processSessionIDRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.GetSession(ctx, sc, consult.GetSessionInput{SessionID: id})
	if err != nil {
		h.l.Errorf(ctx, "consult.delivery.http.GetSession: usecase GetSession failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSessionDetailResp(o))
}

// @Summary Escalate a session to human review
// @Tags Consultation
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} sessionResp
// @Failure 404 {object} response.Resp
// @Router /api/v1/consultation/session/{id}/escalate [post]
func (h *handler) Escalate(c *gin.Context) {
	ctx := c.Request.Context()

	id, sc, err := h.processSessionIDRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "consult.delivery.http.Escalate: processSessionIDRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.Escalate(ctx, sc, consult.EscalateInput{SessionID: id})
	if err != nil {
		h.l.Errorf(ctx, "consult.delivery.http.Escalate: usecase Escalate failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newSessionResp(o.Session))
}
