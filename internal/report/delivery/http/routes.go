package http

import (
	"renov-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")

	quotes := api.Group("/quotes")
	{
		quotes.POST("/upload", mw.UploadAuth(), mw.UserRateLimit(), mw.UploadRateLimit(), h.UploadQuote)
		quotes.GET("/quote/:id", mw.Auth(), mw.UserRateLimit(), h.GetQuote)
		quotes.DELETE("/quote/:id", mw.Auth(), mw.UserRateLimit(), h.DeleteReport)
		quotes.POST("/quote/:id/restore", mw.Auth(), mw.UserRateLimit(), h.RestoreReport)
		quotes.GET("/list", mw.Auth(), mw.UserRateLimit(), h.ListQuotes)
	}

	contracts := api.Group("/contracts")
	{
		contracts.POST("/upload", mw.UploadAuth(), mw.UserRateLimit(), mw.UploadRateLimit(), h.UploadContract)
		contracts.GET("/contract/:id", mw.Auth(), mw.UserRateLimit(), h.GetContract)
		contracts.DELETE("/contract/:id", mw.Auth(), mw.UserRateLimit(), h.DeleteReport)
		contracts.POST("/contract/:id/restore", mw.Auth(), mw.UserRateLimit(), h.RestoreReport)
		contracts.GET("/list", mw.Auth(), mw.UserRateLimit(), h.ListContracts)
	}

	companies := api.Group("/companies")
	{
		companies.POST("/scan", mw.Auth(), mw.UserRateLimit(), mw.CompanyScanRateLimit(), h.ScanCompany)
		companies.GET("/scan/:id", mw.Auth(), mw.UserRateLimit(), h.GetCompany)
		companies.GET("/list", mw.Auth(), mw.UserRateLimit(), h.ListCompanies)
	}

	acceptance := api.Group("/acceptance")
	{
		acceptance.POST("/upload-photo", mw.UploadAuth(), mw.UserRateLimit(), mw.UploadRateLimit(), h.UploadAcceptancePhoto)
		acceptance.POST("/analyze", mw.Auth(), mw.UserRateLimit(), h.AnalyzeAcceptance)
		acceptance.GET("/list", mw.Auth(), mw.UserRateLimit(), h.ListAcceptance)
		acceptance.GET("/:id", mw.Auth(), mw.UserRateLimit(), h.GetAcceptance)
		acceptance.POST("/:id/request-recheck", mw.Auth(), mw.UserRateLimit(), h.RequestRecheck)
	}
}
