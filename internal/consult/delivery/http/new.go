package http

import (
	"renov-srv/internal/consult"
	"renov-srv/internal/middleware"
	"renov-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l  log.Logger
	uc consult.UseCase
}

func New(l log.Logger, uc consult.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
