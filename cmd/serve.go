package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"productlab/studyhub/internal/config"
	"productlab/studyhub/internal/events"
	"productlab/studyhub/internal/handler"
	"productlab/studyhub/internal/model"
	"productlab/studyhub/internal/repository"
	"productlab/studyhub/internal/service"
	jwtpkg "productlab/studyhub/pkg/jwt"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	// 1. Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 2. Initialize logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// 3. Connect to PostgreSQL
	db, err := config.NewPostgresDB(cfg.Database.Postgres, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	// 4. Auto-migrate if enabled
	if cfg.Database.Postgres.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto-migrate: %w", err)
		}
		logger.Info("database migration completed")
	}

	// 5. Initialize admin session store (Redis or in-memory)
	var sessions repository.SessionStore
	switch cfg.Session.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		sessions = repository.NewRedisSessionStore(redisClient)
		logger.Info("using Redis session store")
	default:
		sessions = repository.NewMemorySessionStore()
		logger.Info("using in-memory session store")
	}

	// 6. Initialize event publisher
	var publisher events.EventPublisher = events.NoopPublisher{}
	if cfg.Events.Backend == "nats" {
		natsPublisher, err := events.NewNatsPublisher(cfg.Events.NatsURL, cfg.Events.SubjectPrefix, logger)
		if err != nil {
			return err
		}
		publisher = natsPublisher
		logger.Info("publishing events to NATS", zap.String("url", cfg.Events.NatsURL))
	}
	defer publisher.Close()

	// 7. Initialize repositories
	studyRepo := repository.NewPGStudyRepository(db)
	signupRepo := repository.NewPGSignupRepository(db)
	waitlistRepo := repository.NewPGWaitlistRepository(db)

	// 8. Initialize JWT manager
	jwtManager := jwtpkg.NewManager(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.Session.TTL)

	// 9. Initialize services
	loc, err := cfg.Studies.Location()
	if err != nil {
		return err
	}
	studyService := service.NewStudyService(studyRepo, signupRepo, loc)
	var mailer service.MailSender
	if cfg.SMTP.Enabled {
		mailer, err = service.NewSMTPSender(cfg.SMTP)
		if err != nil {
			return err
		}
		logger.Info("signup confirmation e-mail enabled", zap.String("smtp_host", cfg.SMTP.Host))
	}
	signupService := service.NewSignupService(signupRepo, publisher, mailer, logger)
	waitlistService := service.NewWaitlistService(waitlistRepo)
	adminAuth := service.NewAdminAuthService(service.AdminCredential{
		Username:     cfg.Admin.Username,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	}, sessions, jwtManager)

	// 10. Initialize handlers
	studyHandler := handler.NewStudyHandler(studyService, logger)
	signupHandler := handler.NewSignupHandler(signupService, logger)
	waitlistHandler := handler.NewWaitlistHandler(waitlistService, logger)
	adminHandler := handler.NewAdminHandler(studyService, signupService, logger)
	sessionHandler := handler.NewSessionHandler(adminAuth, logger)

	// 11. Setup router
	router := handler.SetupRouter(cfg, logger, adminAuth, studyHandler, signupHandler, waitlistHandler, adminHandler, sessionHandler)

	// 12. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 13. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", addr), zap.String("studies_timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 14. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("server exited gracefully")
	return nil
}
