package usecase

import (
	"context"
	"errors"
	"time"

	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/logger"
)

type webhookUsecase struct {
	events   domain.WebhookEventRepository
	profiles domain.ProfileRepository
}

func NewWebhookUsecase(events domain.WebhookEventRepository, profiles domain.ProfileRepository) domain.WebhookUsecase {
	return &webhookUsecase{events: events, profiles: profiles}
}

// HandleSubscriptionEvent runs insert-then-process against the ledger.
// The unique event ID makes retries idempotent; the per-customer created
// timestamp makes out-of-order delivery harmless.
func (u *webhookUsecase) HandleSubscriptionEvent(ctx context.Context, event *domain.SubscriptionEvent) error {
	err := u.events.Insert(ctx, &domain.WebhookEvent{
		EventID:      event.ID,
		EventType:    event.Type,
		CustomerID:   event.CustomerID,
		EventCreated: event.Created,
		Status:       domain.WebhookReceived,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			logger.Log.Info("duplicate webhook event acknowledged", "event_id", event.ID, "type", event.Type)
			return nil
		}
		return err
	}

	// No customer reference means nothing to apply the update to. Retrying
	// cannot fix that, so acknowledge instead of forcing a retry loop.
	if event.CustomerID == "" {
		logger.Log.Warn("subscription event without customer reference ignored", "event_id", event.ID, "type", event.Type)
		return u.events.MarkStatus(ctx, event.ID, domain.WebhookIgnored, "missing customer reference")
	}

	// Stale event: a newer one for this customer already applied.
	latest, err := u.events.LatestProcessedCreated(ctx, event.CustomerID)
	if err != nil {
		return u.fail(ctx, event, err)
	}
	if latest > event.Created {
		logger.Log.Info("out-of-order webhook event ignored",
			"event_id", event.ID, "event_created", event.Created, "latest_processed", latest)
		return u.events.MarkStatus(ctx, event.ID, domain.WebhookIgnored, "")
	}

	if err := u.profiles.UpdateSubscription(ctx, event.CustomerID, subscriptionUpdate(event)); err != nil {
		return u.fail(ctx, event, err)
	}

	return u.events.MarkStatus(ctx, event.ID, domain.WebhookProcessed, "")
}

// fail marks the ledger row failed and surfaces a 500 so the provider
// retries the delivery.
func (u *webhookUsecase) fail(ctx context.Context, event *domain.SubscriptionEvent, cause error) error {
	if markErr := u.events.MarkStatus(ctx, event.ID, domain.WebhookFailed, cause.Error()); markErr != nil {
		logger.Log.Error("failed to mark webhook event", "event_id", event.ID, "error", markErr)
	}
	return apperror.Internal(cause)
}

func subscriptionUpdate(event *domain.SubscriptionEvent) domain.SubscriptionUpdate {
	sub := domain.SubscriptionUpdate{
		Status:  event.Status,
		PriceID: event.PriceID,
	}
	if event.Type == "customer.subscription.deleted" {
		sub.Status = "canceled"
	}
	if event.CurrentPeriodEnd > 0 {
		end := time.Unix(event.CurrentPeriodEnd, 0).UTC()
		sub.CurrentPeriodEnd = &end
	}
	return sub
}
