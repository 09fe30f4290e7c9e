package http

import (
	"renov-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")

	consultation := api.Group("/consultation", mw.Auth(), mw.UserRateLimit())
	{
		consultation.POST("/session", h.CreateSession)
		consultation.GET("/session/:id", h.GetSession)
		consultation.POST("/session/:id/escalate", h.Escalate)
		consultation.POST("/message", h.PostMessage)
	}
}
