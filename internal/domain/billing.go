package domain

import (
	"context"
	"time"
)

type WebhookEventStatus string

const (
	WebhookReceived  WebhookEventStatus = "received"
	WebhookProcessed WebhookEventStatus = "processed"
	WebhookIgnored   WebhookEventStatus = "ignored"
	WebhookFailed    WebhookEventStatus = "failed"
)

// WebhookEvent is a row in the idempotency ledger. The unique constraint on
// EventID is what gives webhook processing its at-most-once semantics:
// insert-then-process, and a duplicate-key violation means "already handled".
type WebhookEvent struct {
	EventID      string             `json:"event_id"`
	EventType    string             `json:"event_type"`
	CustomerID   string             `json:"customer_id"`
	EventCreated int64              `json:"event_created"`
	Status       WebhookEventStatus `json:"status"`
	LastError    string             `json:"last_error,omitempty"`
	ReceivedAt   time.Time          `json:"received_at"`
}

type WebhookEventRepository interface {
	// Insert records the event with status "received". Returns ErrDuplicate
	// when the event ID is already in the ledger.
	Insert(ctx context.Context, event *WebhookEvent) error
	MarkStatus(ctx context.Context, eventID string, status WebhookEventStatus, lastError string) error
	// LatestProcessedCreated returns the created timestamp of the newest
	// processed event for a customer, or 0 when none exists.
	LatestProcessedCreated(ctx context.Context, customerID string) (int64, error)
}

// SubscriptionEvent is the provider-agnostic shape of a subscription webhook
// event after signature verification and payload parsing.
type SubscriptionEvent struct {
	ID               string
	Type             string
	Created          int64
	CustomerID       string
	SubscriptionID   string
	Status           string
	PriceID          string
	CurrentPeriodEnd int64
}

type WebhookUsecase interface {
	// HandleSubscriptionEvent applies a subscription event at most once.
	// Duplicates and out-of-order events return nil (acknowledge, no side
	// effects); a processing failure marks the ledger row failed and returns
	// the error so the provider retries.
	HandleSubscriptionEvent(ctx context.Context, event *SubscriptionEvent) error
}

type BillingUsecase interface {
	// EnsureCustomer returns the profile's Stripe customer ID, creating the
	// customer first when missing.
	EnsureCustomer(ctx context.Context, userID string) (string, error)
	CreateCheckoutSession(ctx context.Context, userID, priceID string) (string, error)
	CreatePortalSession(ctx context.Context, userID string) (string, error)
}
