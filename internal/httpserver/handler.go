package httpserver

import (
	"time"

	consulthttp "renov-srv/internal/consult/delivery/http"
	consultPostgre "renov-srv/internal/consult/repository/postgre"
	consultUsecase "renov-srv/internal/consult/usecase"
	entitlementhttp "renov-srv/internal/entitlement/delivery/http"
	entitlementPostgre "renov-srv/internal/entitlement/repository/postgre"
	entitlementUsecase "renov-srv/internal/entitlement/usecase"
	"renov-srv/internal/middleware"
	paymenthttp "renov-srv/internal/payment/delivery/http"
	paymentPostgre "renov-srv/internal/payment/repository/postgre"
	paymentUsecase "renov-srv/internal/payment/usecase"
	reporthttp "renov-srv/internal/report/delivery/http"
	reportPostgre "renov-srv/internal/report/repository/postgre"
	reportUsecase "renov-srv/internal/report/usecase"
	userhttp "renov-srv/internal/user/delivery/http"
	userPostgre "renov-srv/internal/user/repository/postgre"
	userUsecase "renov-srv/internal/user/usecase"
	"renov-srv/pkg/authplatform"
	"renov-srv/pkg/enrich"
	pkgHTTP "renov-srv/pkg/http"
	"renov-srv/pkg/llmagent"
	"renov-srv/pkg/ocr"
)

const day = 24 * time.Hour

func (srv *HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.l, srv.jwtManager, srv.redisClient, middleware.RateLimitConfig{
		PerUser:     srv.config.RateLimit.PerUser,
		CompanyScan: srv.config.RateLimit.CompanyScan,
		Upload:      srv.config.RateLimit.Upload,
	})

	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	// External providers
	ocrClient := ocr.NewOCR(ocr.Config{
		Endpoint:       srv.config.OCR.Endpoint,
		QPS:            srv.config.OCR.QPS,
		MaxImageHeight: srv.config.OCR.MaxImageHeight,
	}, srv.l)
	agent := llmagent.NewAgent(llmagent.Config{
		APIToken:    srv.config.LLM.APIToken,
		BotID:       srv.config.LLM.BotID,
		SiteURL:     srv.config.LLM.SiteURL,
		FallbackKey: srv.config.LLM.FallbackKey,
		FallbackURL: srv.config.LLM.FallbackURL,
	}, srv.l)
	enrichClient := enrich.NewEnrichment(enrich.Config{
		RegistryToken:   srv.config.Enrichment.RegistryToken,
		RegistryURL:     srv.config.Enrichment.RegistryURL,
		LitigationToken: srv.config.Enrichment.LitigationToken,
		LitigationURL:   srv.config.Enrichment.LitigationURL,
		Timeout:         time.Duration(srv.config.Enrichment.TimeoutSeconds) * time.Second,
	}, srv.l)
	authPlatform := authplatform.New(pkgHTTP.NewClient(pkgHTTP.ClientConfig{
		Timeout: 10 * time.Second,
	}), authplatform.Config{
		AppID:   srv.config.AuthPlatform.AppID,
		Secret:  srv.config.AuthPlatform.Secret,
		BaseURL: srv.config.AuthPlatform.BaseURL,
	})

	// Repositories
	reportRepo := reportPostgre.New(srv.postgresDB, srv.l)
	userRepo := userPostgre.New(srv.postgresDB, srv.l)
	entitlementRepo := entitlementPostgre.New(srv.postgresDB, srv.l)
	consultRepo := consultPostgre.New(srv.postgresDB, srv.l)
	paymentRepo := paymentPostgre.New(srv.postgresDB, srv.l)

	// Usecases. Entitlement feeds user (invitation redemption on first
	// login), user feeds report (first-free unlock), report feeds
	// consult and payment.
	entitlementUC := entitlementUsecase.New(entitlementRepo, srv.l, entitlementUsecase.Config{
		InvitationExpiry: time.Duration(srv.config.Limits.InvitationExpiryDays) * day,
	})
	userUC := userUsecase.New(userRepo, authPlatform, srv.encrypter, srv.jwtManager, entitlementUC, srv.l)
	reportUC := reportUsecase.New(
		reportRepo, srv.storage, ocrClient, agent, enrichClient, userUC,
		srv.taskProducer, srv.eventProducer, srv.l,
		reportUsecase.Config{
			CompanyCacheWindow:  time.Duration(srv.config.Limits.CompanyCacheDays) * day,
			MaxUploadBytes:      srv.config.Limits.MaxUploadBytes,
			MaxPhotoUploadBytes: srv.config.Limits.MaxPhotoUploadBytes,
			RestoreRetention:    time.Duration(srv.config.Limits.RecycleRetentionDays) * day,
		},
	)
	consultUC := consultUsecase.New(consultRepo, reportUC, userUC, agent, srv.storage, srv.l, consultUsecase.Config{
		FreeQuotaPerMonth: srv.config.Limits.FreeQuotaPerMonth,
	})
	paymentUC := paymentUsecase.New(paymentRepo, reportUC, srv.l, paymentUsecase.Config{})

	// HTTP handlers
	root := srv.gin.Group("")
	reporthttp.New(srv.l, reportUC).RegisterRoutes(root, mw)
	userhttp.New(srv.l, userUC).RegisterRoutes(root, mw)
	entitlementhttp.New(srv.l, entitlementUC).RegisterRoutes(root, mw)
	consulthttp.New(srv.l, consultUC).RegisterRoutes(root, mw)
	paymenthttp.New(srv.l, paymentUC).RegisterRoutes(root, mw)

	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(middleware.Recovery(srv.l))
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}
