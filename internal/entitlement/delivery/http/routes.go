package http

import (
	"renov-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")

	invitations := api.Group("/invitations", mw.Auth(), mw.UserRateLimit())
	{
		invitations.POST("/create", h.CreateInvitation)
		invitations.POST("/use-free-unlock", h.ConsumeEntitlement)
	}

	entitlements := api.Group("/entitlements", mw.Auth(), mw.UserRateLimit())
	{
		entitlements.GET("/list", h.ListEntitlements)
	}
}
