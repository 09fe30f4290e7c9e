package http

import (
	"renov-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")

	users := api.Group("/users")
	{
		users.POST("/login", h.Login)
		users.GET("/profile", mw.Auth(), mw.UserRateLimit(), h.GetProfile)
		users.PUT("/profile", mw.Auth(), mw.UserRateLimit(), h.UpdateProfile)
	}
}
