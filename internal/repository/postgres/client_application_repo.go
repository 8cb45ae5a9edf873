package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-totl-backend/internal/domain"
)

type clientApplicationRepo struct {
	db *pgxpool.Pool
}

func NewClientApplicationRepository(db *pgxpool.Pool) domain.ClientApplicationRepository {
	return &clientApplicationRepo{db: db}
}

const clientApplicationColumns = `id, user_id, company_name, website, reason, status,
	COALESCE(reviewed_by, ''), created_at, updated_at`

// Create relies on a partial unique index on (user_id) WHERE status =
// 'pending' to enforce one open application per user.
func (r *clientApplicationRepo) Create(ctx context.Context, app *domain.ClientApplication) error {
	query := `INSERT INTO client_applications (user_id, company_name, website, reason, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, now(), now())
              RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, app.UserID, app.CompanyName, app.Website, app.Reason, app.Status).
		Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	return translateErr(err)
}

func (r *clientApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.ClientApplication, error) {
	query := `SELECT ` + clientApplicationColumns + ` FROM client_applications WHERE id = $1`
	return scanClientApplication(r.db.QueryRow(ctx, query, id))
}

func (r *clientApplicationRepo) GetPendingByUserID(ctx context.Context, userID string) (*domain.ClientApplication, error) {
	query := `SELECT ` + clientApplicationColumns + `
              FROM client_applications
              WHERE user_id = $1 AND status = 'pending'
              ORDER BY created_at DESC LIMIT 1`
	return scanClientApplication(r.db.QueryRow(ctx, query, userID))
}

func (r *clientApplicationRepo) List(ctx context.Context, status domain.ClientApplicationStatus, page, pageSize int) ([]domain.ClientApplication, int64, error) {
	where := `WHERE ($1 = '' OR status = $1)`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM client_applications `+where, status).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	query := `SELECT ` + clientApplicationColumns + ` FROM client_applications ` + where + `
              ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, status, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	var apps []domain.ClientApplication
	for rows.Next() {
		var a domain.ClientApplication
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.CompanyName, &a.Website, &a.Reason, &a.Status,
			&a.ReviewedBy, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, 0, translateErr(err)
		}
		apps = append(apps, a)
	}
	return apps, total, rows.Err()
}

func (r *clientApplicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ClientApplicationStatus, reviewedBy string) error {
	query := `UPDATE client_applications
              SET status = $2, reviewed_by = $3, updated_at = now()
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, status, reviewedBy)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanClientApplication(row pgx.Row) (*domain.ClientApplication, error) {
	var a domain.ClientApplication
	err := row.Scan(
		&a.ID, &a.UserID, &a.CompanyName, &a.Website, &a.Reason, &a.Status,
		&a.ReviewedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &a, nil
}
