package http

import (
	"renov-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")

	payments := api.Group("/payments", mw.Auth(), mw.UserRateLimit())
	{
		payments.POST("/create", h.CreateOrder)
		payments.POST("/confirm-paid", h.ConfirmPaid)
	}
}
