package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/config"
	"github.com/yukikurage/company-tracker-api/internal/database"
	"github.com/yukikurage/company-tracker-api/internal/handlers"
	"github.com/yukikurage/company-tracker-api/internal/logging"
	"github.com/yukikurage/company-tracker-api/internal/repository"
	"github.com/yukikurage/company-tracker-api/internal/services"
	"github.com/yukikurage/company-tracker-api/internal/telegram"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.LogLevel, cfg.GinMode == gin.ReleaseMode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Connect to database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	// Run migrations
	if cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	notifier, err := telegram.NewBotNotifier(cfg.TelegramBotToken, logger)
	if err != nil {
		return err
	}
	if cfg.TelegramWebhookSecret == "" {
		logger.Warn("TELEGRAM_WEBHOOK_SECRET not set; webhook calls will be rejected")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)

	// Initialize services
	tokens := services.NewTokenService(cfg.JWTSecret)
	companyService := services.NewCompanyService(companyRepo)
	authService := services.NewAuthService(userRepo, companyRepo, tokens)

	router := handlers.NewRouter(handlers.Dependencies{
		Tokens:        tokens,
		Auth:          authService,
		Companies:     companyService,
		Employees:     services.NewEmployeeService(repository.NewEmployeeRepository(db)),
		OrgStructure:  services.NewOrgStructureService(repository.NewOrgNodeRepository(db)),
		Processes:     services.NewProcessService(repository.NewProcessRepository(db), companyService),
		Instructions:  services.NewInstructionService(repository.NewInstructionRepository(db), companyService),
		Tasks:         services.NewTaskService(repository.NewTaskRepository(db)),
		Results:       services.NewResultService(repository.NewResultRepository(db)),
		Telegram:      services.NewTelegramService(repository.NewTelegramRepository(db), companyService, authService, notifier, cfg.FrontendURL, logger),
		WebhookSecret: cfg.TelegramWebhookSecret,
		Log:           logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
