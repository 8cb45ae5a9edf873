package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-totl-backend/internal/domain"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	query := `SELECT
              (SELECT count(*) FROM profiles),
              (SELECT count(*) FROM profiles WHERE role = 'talent'),
              (SELECT count(*) FROM profiles WHERE role = 'client' OR account_type = 'client'),
              (SELECT count(*) FROM gigs WHERE status = 'open'),
              (SELECT count(*) FROM applications),
              (SELECT count(*) FROM bookings),
              (SELECT count(*) FROM client_applications WHERE status = 'pending')`
	var stats domain.AdminStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalTalents, &stats.TotalClients,
		&stats.OpenGigs, &stats.TotalApplications, &stats.TotalBookings,
		&stats.PendingClientApplications,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &stats, nil
}

func (r *adminRepo) ListUsers(ctx context.Context, filter domain.UserFilter) ([]domain.Profile, int64, error) {
	where := `WHERE ($1 = '' OR role = $1)`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM profiles `+where, filter.Role).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	query := `SELECT ` + profileColumns + ` FROM profiles ` + where + `
              ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, filter.Role, filter.PageSize, (filter.Page-1)*filter.PageSize)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(
			&p.ID, &p.Email, &p.Role, &p.AccountType, &p.DisplayName, &p.IsSuspended,
			&p.EmailVerifiedAt, &p.StripeCustomerID, &p.SubscriptionStatus, &p.SubscriptionPriceID,
			&p.SubscriptionCurrentPeriodEnd, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, translateErr(err)
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}
