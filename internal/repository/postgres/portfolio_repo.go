package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-totl-backend/internal/domain"
)

type portfolioRepo struct {
	db *pgxpool.Pool
}

func NewPortfolioRepository(db *pgxpool.Pool) domain.PortfolioRepository {
	return &portfolioRepo{db: db}
}

func (r *portfolioRepo) Create(ctx context.Context, item *domain.PortfolioItem) error {
	query := `INSERT INTO portfolio_items (talent_id, image_url, caption, position, created_at)
              VALUES ($1, $2, $3, $4, now())
              RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, item.TalentID, item.ImageURL, item.Caption, item.Position).
		Scan(&item.ID, &item.CreatedAt)
	return translateErr(err)
}

func (r *portfolioRepo) GetByID(ctx context.Context, id int64) (*domain.PortfolioItem, error) {
	query := `SELECT id, talent_id, image_url, caption, position, created_at
              FROM portfolio_items WHERE id = $1`
	var item domain.PortfolioItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.TalentID, &item.ImageURL, &item.Caption, &item.Position, &item.CreatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &item, nil
}

func (r *portfolioRepo) ListByTalent(ctx context.Context, talentID string) ([]domain.PortfolioItem, error) {
	query := `SELECT id, talent_id, image_url, caption, position, created_at
              FROM portfolio_items WHERE talent_id = $1
              ORDER BY position ASC, created_at ASC`
	rows, err := r.db.Query(ctx, query, talentID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var items []domain.PortfolioItem
	for rows.Next() {
		var item domain.PortfolioItem
		if err := rows.Scan(&item.ID, &item.TalentID, &item.ImageURL, &item.Caption, &item.Position, &item.CreatedAt); err != nil {
			return nil, translateErr(err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *portfolioRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM portfolio_items WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
