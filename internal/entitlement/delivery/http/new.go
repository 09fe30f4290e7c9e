package http

import (
	"renov-srv/internal/entitlement"
	"renov-srv/internal/middleware"
	"renov-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l  log.Logger
	uc entitlement.UseCase
}

func New(l log.Logger, uc entitlement.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
