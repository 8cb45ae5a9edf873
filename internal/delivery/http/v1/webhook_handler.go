package v1

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/logger"
)

// Stripe recommends a 64 KiB cap on webhook payloads.
const maxWebhookBodyBytes = 65536

type WebhookHandler struct {
	webhookUC     domain.WebhookUsecase
	signingSecret string
}

// NewWebhookHandler registers the Stripe webhook endpoint. It lives outside
// the auth middleware: Stripe authenticates with the signature header, and
// responses deliberately carry no detail beyond the status code.
func NewWebhookHandler(r *gin.RouterGroup, webhookUC domain.WebhookUsecase, signingSecret string) {
	handler := &WebhookHandler{webhookUC: webhookUC, signingSecret: signingSecret}
	r.POST("/webhooks/stripe", handler.HandleStripe)
}

func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	if h.signingSecret == "" {
		c.Status(http.StatusServiceUnavailable)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.signingSecret)
	if err != nil {
		logger.Log.Warn("webhook signature verification failed", "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	// Only subscription lifecycle events are handled; everything else is
	// acknowledged so Stripe stops retrying.
	if !strings.HasPrefix(string(event.Type), "customer.subscription.") {
		c.Status(http.StatusOK)
		return
	}

	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		logger.Log.Error("webhook payload parse failed", "event_id", event.ID, "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	subEvent := &domain.SubscriptionEvent{
		ID:               event.ID,
		Type:             string(event.Type),
		Created:          event.Created,
		SubscriptionID:   sub.ID,
		Status:           string(sub.Status),
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
	}
	if sub.Customer != nil {
		subEvent.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		subEvent.PriceID = sub.Items.Data[0].Price.ID
	}

	if err := h.webhookUC.HandleSubscriptionEvent(c.Request.Context(), subEvent); err != nil {
		logger.Log.Error("webhook processing failed", "event_id", event.ID, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
