package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-totl-backend/internal/domain"
)

type gigRepo struct {
	db *pgxpool.Pool
}

func NewGigRepository(db *pgxpool.Pool) domain.GigRepository {
	return &gigRepo{db: db}
}

const gigColumns = `id, client_id, title, description, category, location,
	compensation_min, compensation_max, currency, start_date, end_date, status,
	created_at, updated_at`

func (r *gigRepo) Create(ctx context.Context, gig *domain.Gig) error {
	query := `INSERT INTO gigs
              (client_id, title, description, category, location, compensation_min,
               compensation_max, currency, start_date, end_date, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
              RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		gig.ClientID, gig.Title, gig.Description, gig.Category, gig.Location,
		gig.CompensationMin, gig.CompensationMax, gig.Currency,
		gig.StartDate, gig.EndDate, gig.Status,
	).Scan(&gig.ID, &gig.CreatedAt, &gig.UpdatedAt)
	return translateErr(err)
}

func (r *gigRepo) GetByID(ctx context.Context, id int64) (*domain.Gig, error) {
	query := `SELECT ` + gigColumns + ` FROM gigs WHERE id = $1`
	var g domain.Gig
	err := r.db.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.ClientID, &g.Title, &g.Description, &g.Category, &g.Location,
		&g.CompensationMin, &g.CompensationMax, &g.Currency, &g.StartDate, &g.EndDate,
		&g.Status, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &g, nil
}

func (r *gigRepo) Update(ctx context.Context, gig *domain.Gig) error {
	query := `UPDATE gigs
              SET title = $2, description = $3, category = $4, location = $5,
                  compensation_min = $6, compensation_max = $7, currency = $8,
                  start_date = $9, end_date = $10, status = $11, updated_at = now()
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		gig.ID, gig.Title, gig.Description, gig.Category, gig.Location,
		gig.CompensationMin, gig.CompensationMax, gig.Currency,
		gig.StartDate, gig.EndDate, gig.Status,
	)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *gigRepo) UpdateStatus(ctx context.Context, id int64, status domain.GigStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE gigs SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *gigRepo) ListOpen(ctx context.Context, filter domain.GigFilter) ([]domain.Gig, int64, error) {
	// Filters are optional; empty strings match everything.
	where := `WHERE status = 'open'
              AND ($1 = '' OR category = $1)
              AND ($2 = '' OR location ILIKE '%' || $2 || '%')`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM gigs `+where, filter.Category, filter.Location).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	query := fmt.Sprintf(`SELECT %s FROM gigs %s ORDER BY created_at DESC LIMIT $3 OFFSET $4`, gigColumns, where)
	rows, err := r.db.Query(ctx, query, filter.Category, filter.Location, filter.PageSize, (filter.Page-1)*filter.PageSize)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	gigs, err := scanGigs(rows)
	return gigs, total, err
}

func (r *gigRepo) ListByClient(ctx context.Context, clientID string, page, pageSize int) ([]domain.Gig, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM gigs WHERE client_id = $1`, clientID).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	query := `SELECT ` + gigColumns + ` FROM gigs WHERE client_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, clientID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	gigs, err := scanGigs(rows)
	return gigs, total, err
}

func scanGigs(rows pgx.Rows) ([]domain.Gig, error) {
	var gigs []domain.Gig
	for rows.Next() {
		var g domain.Gig
		if err := rows.Scan(
			&g.ID, &g.ClientID, &g.Title, &g.Description, &g.Category, &g.Location,
			&g.CompensationMin, &g.CompensationMax, &g.Currency, &g.StartDate, &g.EndDate,
			&g.Status, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, translateErr(err)
		}
		gigs = append(gigs, g)
	}
	return gigs, rows.Err()
}
