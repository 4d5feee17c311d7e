package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"productlab/studyhub/internal/config"
	"productlab/studyhub/internal/handler/middleware"
	"productlab/studyhub/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	adminAuth service.AdminAuthService,
	studyHandler *StudyHandler,
	signupHandler *SignupHandler,
	waitlistHandler *WaitlistHandler,
	adminHandler *AdminHandler,
	sessionHandler *SessionHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := r.Group("/api/v1")
	{
		public.GET("/studies", studyHandler.List)
		public.GET("/studies/:id", studyHandler.Get)
		public.POST("/studies/:id/signup", signupHandler.Submit)
		public.POST("/waitlist", waitlistHandler.Join)
		public.POST("/admin/session", sessionHandler.Login)
	}

	// Admin routes
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AdminAuth(adminAuth, logger))
	{
		admin.DELETE("/session", sessionHandler.Logout)

		admin.GET("/studies", adminHandler.ListStudies)
		admin.POST("/studies", adminHandler.CreateStudy)
		admin.GET("/studies/:id", adminHandler.GetStudy)
		admin.PUT("/studies/:id", adminHandler.UpdateStudy)
		admin.DELETE("/studies/:id", adminHandler.DeleteStudy)
		admin.GET("/studies/:id/signups", adminHandler.ListSignups)
		admin.GET("/studies/:id/signups/export", adminHandler.ExportSignups)

		admin.PATCH("/signups/:id", adminHandler.UpdateSignup)
	}

	return r
}
