package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-totl-backend/internal/domain"
)

type webhookEventRepo struct {
	db *pgxpool.Pool
}

func NewWebhookEventRepository(db *pgxpool.Pool) domain.WebhookEventRepository {
	return &webhookEventRepo{db: db}
}

// Insert is the idempotency barrier: the primary key on event_id turns a
// redelivery into ErrDuplicate before any processing happens.
func (r *webhookEventRepo) Insert(ctx context.Context, event *domain.WebhookEvent) error {
	query := `INSERT INTO stripe_webhook_events
              (event_id, event_type, customer_id, event_created, status, received_at)
              VALUES ($1, $2, $3, $4, $5, now())`
	_, err := r.db.Exec(ctx, query,
		event.EventID, event.EventType, event.CustomerID, event.EventCreated, event.Status,
	)
	return translateErr(err)
}

func (r *webhookEventRepo) MarkStatus(ctx context.Context, eventID string, status domain.WebhookEventStatus, lastError string) error {
	query := `UPDATE stripe_webhook_events SET status = $2, last_error = $3 WHERE event_id = $1`
	tag, err := r.db.Exec(ctx, query, eventID, status, lastError)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *webhookEventRepo) LatestProcessedCreated(ctx context.Context, customerID string) (int64, error) {
	query := `SELECT COALESCE(max(event_created), 0)
              FROM stripe_webhook_events
              WHERE customer_id = $1 AND status = 'processed'`
	var latest int64
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&latest); err != nil {
		return 0, translateErr(err)
	}
	return latest, nil
}
