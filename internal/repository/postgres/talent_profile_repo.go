package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"go-totl-backend/internal/domain"
)

type talentProfileRepo struct {
	db *pgxpool.Pool
}

func NewTalentProfileRepository(db *pgxpool.Pool) domain.TalentProfileRepository {
	return &talentProfileRepo{db: db}
}

const talentColumns = `user_id, first_name, last_name, location, height_cm,
	specialties, experience_level, instagram_url, portfolio_url, created_at, updated_at`

func (r *talentProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.TalentProfile, error) {
	query := `SELECT ` + talentColumns + ` FROM talent_profiles WHERE user_id = $1`
	var t domain.TalentProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&t.UserID, &t.FirstName, &t.LastName, &t.Location, &t.HeightCM,
		pq.Array(&t.Specialties), &t.ExperienceLevel, &t.InstagramURL, &t.PortfolioURL,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &t, nil
}

// Upsert keeps onboarding idempotent: re-submitting the form overwrites the
// row instead of failing on the primary key.
func (r *talentProfileRepo) Upsert(ctx context.Context, profile *domain.TalentProfile) error {
	query := `INSERT INTO talent_profiles
              (user_id, first_name, last_name, location, height_cm, specialties,
               experience_level, instagram_url, portfolio_url, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
              ON CONFLICT (user_id) DO UPDATE SET
                  first_name = EXCLUDED.first_name,
                  last_name = EXCLUDED.last_name,
                  location = EXCLUDED.location,
                  height_cm = EXCLUDED.height_cm,
                  specialties = EXCLUDED.specialties,
                  experience_level = EXCLUDED.experience_level,
                  instagram_url = EXCLUDED.instagram_url,
                  portfolio_url = EXCLUDED.portfolio_url,
                  updated_at = now()`
	_, err := r.db.Exec(ctx, query,
		profile.UserID, profile.FirstName, profile.LastName, profile.Location,
		profile.HeightCM, pq.Array(profile.Specialties), profile.ExperienceLevel,
		profile.InstagramURL, profile.PortfolioURL,
	)
	return translateErr(err)
}

func (r *talentProfileRepo) List(ctx context.Context, page, pageSize int) ([]domain.TalentProfile, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM talent_profiles WHERE first_name <> ''`).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	query := `SELECT ` + talentColumns + `
              FROM talent_profiles
              WHERE first_name <> ''
              ORDER BY created_at DESC
              LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	var profiles []domain.TalentProfile
	for rows.Next() {
		var t domain.TalentProfile
		if err := rows.Scan(
			&t.UserID, &t.FirstName, &t.LastName, &t.Location, &t.HeightCM,
			pq.Array(&t.Specialties), &t.ExperienceLevel, &t.InstagramURL, &t.PortfolioURL,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, 0, translateErr(err)
		}
		profiles = append(profiles, t)
	}
	return profiles, total, rows.Err()
}
