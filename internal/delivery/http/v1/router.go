package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-totl-backend/config"
	"go-totl-backend/internal/delivery/http/middleware"
	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/auth"
	"go-totl-backend/pkg/email"
)

type RouterDeps struct {
	BootStateUC   domain.BootStateUsecase
	OnboardingUC  domain.OnboardingUsecase
	TalentUC      domain.TalentUsecase
	ClientUC      domain.ClientUsecase
	GigUC         domain.GigUsecase
	ApplicationUC domain.ApplicationUsecase
	BookingUC     domain.BookingUsecase
	PortfolioUC   domain.PortfolioUsecase
	AdminUC       domain.AdminUsecase
	BillingUC     domain.BillingUsecase
	WebhookUC     domain.WebhookUsecase
	Profiles      domain.ProfileRepository
	Mailer        *email.Service
	JWKSProvider  *auth.Provider
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares. CORS must be first!
	r.Use(middleware.CORSMiddleware())
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.GlobalRateLimitMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Stripe webhook and internal email routes bypass user auth: the webhook
	// authenticates with its signature, internal email with a shared key.
	NewWebhookHandler(v1, deps.WebhookUC, deps.Config.StripeWebhookSecret)
	NewEmailHandler(v1, deps.Mailer, deps.Config.InternalEmailKey)

	// Identify attaches claims and the profile row when a token is present,
	// but never rejects. RequireAuth and the route gate do the enforcement.
	// Public browse routes still run Identify so gig detail can recognize a
	// client looking at their own draft.
	identified := v1.Group("")
	identified.Use(middleware.Identify(deps.JWKSProvider, deps.Config, deps.Profiles))

	protected := identified.Group("")
	protected.Use(middleware.RequireAuth())

	// App-shaped groups run the route gate: suspension, onboarding, and
	// terminal access rules apply before any handler.
	gated := protected.Group("")
	gated.Use(middleware.RouteGate())

	talent := gated.Group("/talent")
	client := gated.Group("/client")
	admin := gated.Group("/admin")

	NewAuthHandler(v1, protected, deps.BootStateUC, deps.Profiles, deps.Config)
	NewBillingHandler(protected, deps.BillingUC)
	NewOnboardingHandler(gated, deps.OnboardingUC, deps.BootStateUC)
	NewGigHandler(identified, client, deps.GigUC)
	NewTalentHandler(identified, talent, deps.TalentUC)
	NewClientHandler(client, talent, deps.ClientUC, deps.OnboardingUC)
	NewApplicationHandler(talent, client, deps.ApplicationUC)
	NewBookingHandler(talent, client, deps.BookingUC)
	NewPortfolioHandler(talent, deps.PortfolioUC, deps.Config)
	NewAdminHandler(admin, deps.AdminUC)

	return r
}
