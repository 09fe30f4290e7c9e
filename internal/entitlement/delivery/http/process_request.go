package http

import (
	"renov-srv/internal/model"
	"renov-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h *handler) processConsumeRequest(c *gin.Context) (consumeReq, model.Scope, error) {
	var req consumeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, errInvalidBody
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}
