package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-totl-backend/internal/domain"
)

type clientProfileRepo struct {
	db *pgxpool.Pool
}

func NewClientProfileRepository(db *pgxpool.Pool) domain.ClientProfileRepository {
	return &clientProfileRepo{db: db}
}

func (r *clientProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.ClientProfile, error) {
	query := `SELECT user_id, company_name, website, industry, contact_phone, created_at, updated_at
              FROM client_profiles WHERE user_id = $1`
	var c domain.ClientProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&c.UserID, &c.CompanyName, &c.Website, &c.Industry, &c.ContactPhone,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &c, nil
}

func (r *clientProfileRepo) Upsert(ctx context.Context, profile *domain.ClientProfile) error {
	query := `INSERT INTO client_profiles
              (user_id, company_name, website, industry, contact_phone, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, now(), now())
              ON CONFLICT (user_id) DO UPDATE SET
                  company_name = EXCLUDED.company_name,
                  website = EXCLUDED.website,
                  industry = EXCLUDED.industry,
                  contact_phone = EXCLUDED.contact_phone,
                  updated_at = now()`
	_, err := r.db.Exec(ctx, query,
		profile.UserID, profile.CompanyName, profile.Website, profile.Industry, profile.ContactPhone,
	)
	return translateErr(err)
}
