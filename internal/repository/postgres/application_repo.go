package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-totl-backend/internal/domain"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `id, gig_id, talent_id, cover_note, status, created_at, updated_at`

// Create relies on the unique (gig_id, talent_id) constraint for the
// one-application-per-gig rule; the violation surfaces as ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (gig_id, talent_id, cover_note, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, now(), now())
              RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, app.GigID, app.TalentID, app.CoverNote, app.Status).
		Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	return translateErr(err)
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	var a domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.GigID, &a.TalentID, &a.CoverNote, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &a, nil
}

func (r *applicationRepo) ListByTalent(ctx context.Context, talentID string, page, pageSize int) ([]domain.Application, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM applications WHERE talent_id = $1`, talentID).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	query := `SELECT ` + applicationColumns + `
              FROM applications WHERE talent_id = $1
              ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, talentID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	apps, err := scanApplications(rows)
	return apps, total, err
}

func (r *applicationRepo) ListByGig(ctx context.Context, gigID int64, page, pageSize int) ([]domain.Application, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM applications WHERE gig_id = $1`, gigID).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	query := `SELECT ` + applicationColumns + `
              FROM applications WHERE gig_id = $1
              ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, gigID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	apps, err := scanApplications(rows)
	return apps, total, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE applications SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanApplications(rows pgx.Rows) ([]domain.Application, error) {
	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(&a.ID, &a.GigID, &a.TalentID, &a.CoverNote, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, translateErr(err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
