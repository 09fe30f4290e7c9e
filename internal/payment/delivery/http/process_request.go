package http

import (
	"renov-srv/internal/model"
	"renov-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h *handler) processCreateOrderRequest(c *gin.Context) (createOrderReq, model.Scope, error) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, errInvalidBody
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processConfirmPaidRequest(c *gin.Context) (confirmPaidReq, model.Scope, error) {
	var req confirmPaidReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, errInvalidBody
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}
