package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stripe/stripe-go/v79"

	"go-totl-backend/config"
	v1 "go-totl-backend/internal/delivery/http/v1"
	"go-totl-backend/internal/repository/postgres"
	"go-totl-backend/internal/usecase"
	"go-totl-backend/pkg/auth"
	"go-totl-backend/pkg/database"
	"go-totl-backend/pkg/email"
	"go-totl-backend/pkg/logger"
	"go-totl-backend/pkg/redis"
	"go-totl-backend/pkg/validation"
)

// @title           TOTL Backend API
// @version         1.0
// @description     Backend for the TOTL talent and casting platform.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting TOTL backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting falls back to in-memory when absent)
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
		}
		defer redis.Close()
	}

	// 5. Setup Stripe
	stripe.Key = cfg.StripeSecretKey

	// 6. Setup Repositories
	profileRepo := postgres.NewProfileRepository(dbPool)
	talentRepo := postgres.NewTalentProfileRepository(dbPool)
	clientRepo := postgres.NewClientProfileRepository(dbPool)
	gigRepo := postgres.NewGigRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	bookingRepo := postgres.NewBookingRepository(dbPool)
	portfolioRepo := postgres.NewPortfolioRepository(dbPool)
	clientApplicationRepo := postgres.NewClientApplicationRepository(dbPool)
	webhookEventRepo := postgres.NewWebhookEventRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)

	// 7. Setup Email Service
	emailService := email.NewService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - notifications will be skipped")
	}

	// 8. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	bootStateUC := usecase.NewBootStateUsecase(profileRepo, talentRepo, clientRepo)
	onboardingUC := usecase.NewOnboardingUsecase(profileRepo, talentRepo, clientRepo, bootStateUC, validate)
	talentUC := usecase.NewTalentUsecase(talentRepo)
	clientUC := usecase.NewClientUsecase(clientRepo, clientApplicationRepo, profileRepo, validate)
	gigUC := usecase.NewGigUsecase(gigRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, gigRepo, bookingRepo, profileRepo, emailService, validate)
	bookingUC := usecase.NewBookingUsecase(bookingRepo)
	portfolioUC := usecase.NewPortfolioUsecase(portfolioRepo, validate)
	adminUC := usecase.NewAdminUsecase(adminRepo, profileRepo, clientRepo, clientApplicationRepo, gigRepo)
	billingUC := usecase.NewBillingUsecase(profileRepo, cfg.FrontendURL, cfg.StripePriceID)
	webhookUC := usecase.NewWebhookUsecase(webhookEventRepo, profileRepo)

	// 9. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		BootStateUC:   bootStateUC,
		OnboardingUC:  onboardingUC,
		TalentUC:      talentUC,
		ClientUC:      clientUC,
		GigUC:         gigUC,
		ApplicationUC: applicationUC,
		BookingUC:     bookingUC,
		PortfolioUC:   portfolioUC,
		AdminUC:       adminUC,
		BillingUC:     billingUC,
		WebhookUC:     webhookUC,
		Profiles:      profileRepo,
		Mailer:        emailService,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
