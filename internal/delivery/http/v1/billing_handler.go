package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/delivery/http/middleware"
	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
)

type BillingHandler struct {
	billingUC domain.BillingUsecase
}

func NewBillingHandler(protected *gin.RouterGroup, billingUC domain.BillingUsecase) {
	handler := &BillingHandler{billingUC: billingUC}

	billing := protected.Group("/billing")
	{
		billing.GET("/subscription", handler.Subscription)
		billing.POST("/checkout", handler.Checkout)
		billing.POST("/portal", handler.Portal)
	}
}

// Subscription godoc
// @Summary      Current subscription status
// @Description  Subscription fields as last synced from Stripe webhooks
// @Tags         billing
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /billing/subscription [get]
// @Security     BearerAuth
func (h *BillingHandler) Subscription(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.Error(apperror.Unauthorized("Authorization required"))
		return
	}

	response.Success(c, http.StatusOK, "Subscription retrieved", gin.H{
		"status":             profile.SubscriptionStatus,
		"current_period_end": profile.SubscriptionCurrentPeriodEnd,
	})
}

type CheckoutRequest struct {
	PriceID string `json:"price_id"`
}

// Checkout godoc
// @Summary      Create a checkout session
// @Description  Creates a Stripe subscription checkout session and returns its URL
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        request  body      CheckoutRequest  false  "Optional price override"
// @Success      200      {object}  response.Response
// @Router       /billing/checkout [post]
// @Security     BearerAuth
func (h *BillingHandler) Checkout(c *gin.Context) {
	// Body is optional; without it the configured default price is used.
	var req CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
	}

	userID := c.GetString(string(domain.KeyUserID))
	url, err := h.billingUC.CreateCheckoutSession(c.Request.Context(), userID, req.PriceID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Checkout session created", gin.H{"url": url})
}

// Portal godoc
// @Summary      Create a billing portal session
// @Description  Returns the Stripe customer portal URL for self-service billing
// @Tags         billing
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response  "No billing account yet"
// @Router       /billing/portal [post]
// @Security     BearerAuth
func (h *BillingHandler) Portal(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	url, err := h.billingUC.CreatePortalSession(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Portal session created", gin.H{"url": url})
}
