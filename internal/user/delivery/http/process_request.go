package http

import (
	"renov-srv/internal/model"
	"renov-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h *handler) processLoginRequest(c *gin.Context) (loginReq, error) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, errCodeRequired
	}
	return req, nil
}

func (h *handler) processUpdateProfileRequest(c *gin.Context) (updateProfileReq, model.Scope, error) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, errInvalidBody
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}
