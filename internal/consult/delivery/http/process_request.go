package http

import (
	"strconv"

	"renov-srv/internal/model"
	"renov-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h *handler) processCreateSessionRequest(c *gin.Context) (createSessionReq, model.Scope, error) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, errInvalidBody
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processPostMessageRequest(c *gin.Context) (postMessageReq, model.Scope, error) {
	var req postMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, errInvalidBody
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processSessionIDRequest(c *gin.Context) (int64, model.Scope, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.Scope{}, errInvalidSessionID
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return id, sc, nil
}
