package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-totl-backend/internal/domain"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

// translateErr maps driver errors onto the domain sentinels the usecases
// branch on.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domain.ErrDuplicate
	}
	return err
}

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

const profileColumns = `id, email, role, account_type, display_name, is_suspended,
	email_verified_at, stripe_customer_id, subscription_status, subscription_price_id,
	subscription_current_period_end, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.Role, &p.AccountType, &p.DisplayName, &p.IsSuspended,
		&p.EmailVerifiedAt, &p.StripeCustomerID, &p.SubscriptionStatus, &p.SubscriptionPriceID,
		&p.SubscriptionCurrentPeriodEnd, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO profiles (id, email, role, account_type, display_name, email_verified_at, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.Email, profile.Role, profile.AccountType,
		profile.DisplayName, profile.EmailVerifiedAt,
	)
	return translateErr(err)
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRow(ctx, query, id))
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return scanProfile(r.db.QueryRow(ctx, query, email))
}

func (r *profileRepo) UpdateDisplayName(ctx context.Context, id, displayName string) error {
	query := `UPDATE profiles SET display_name = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id, displayName)
}

func (r *profileRepo) UpdateAccountType(ctx context.Context, id string, accountType domain.AccountType) error {
	query := `UPDATE profiles SET account_type = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id, accountType)
}

func (r *profileRepo) UpdateSuspended(ctx context.Context, id string, suspended bool) error {
	query := `UPDATE profiles SET is_suspended = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id, suspended)
}

func (r *profileRepo) UpdateStripeCustomer(ctx context.Context, id, customerID string) error {
	query := `UPDATE profiles SET stripe_customer_id = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id, customerID)
}

func (r *profileRepo) UpdateSubscription(ctx context.Context, customerID string, sub domain.SubscriptionUpdate) error {
	query := `UPDATE profiles
              SET subscription_status = $2, subscription_price_id = $3,
                  subscription_current_period_end = $4, updated_at = now()
              WHERE stripe_customer_id = $1`
	tag, err := r.db.Exec(ctx, query, customerID, sub.Status, sub.PriceID, sub.CurrentPeriodEnd)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// exec runs a single-row update and reports ErrNotFound when nothing matched.
func (r *profileRepo) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
