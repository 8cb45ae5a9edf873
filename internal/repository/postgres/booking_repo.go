package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-totl-backend/internal/domain"
)

type bookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) domain.BookingRepository {
	return &bookingRepo{db: db}
}

const bookingColumns = `id, gig_id, talent_id, client_id, status, starts_at, ends_at, created_at, updated_at`

func (r *bookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	query := `INSERT INTO bookings (gig_id, talent_id, client_id, status, starts_at, ends_at, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, now(), now())
              RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		booking.GigID, booking.TalentID, booking.ClientID, booking.Status,
		booking.StartsAt, booking.EndsAt,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	return translateErr(err)
}

func (r *bookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var b domain.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.GigID, &b.TalentID, &b.ClientID, &b.Status,
		&b.StartsAt, &b.EndsAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &b, nil
}

func (r *bookingRepo) ListByTalent(ctx context.Context, talentID string, page, pageSize int) ([]domain.Booking, int64, error) {
	return r.list(ctx, `talent_id`, talentID, page, pageSize)
}

func (r *bookingRepo) ListByClient(ctx context.Context, clientID string, page, pageSize int) ([]domain.Booking, int64, error) {
	return r.list(ctx, `client_id`, clientID, page, pageSize)
}

func (r *bookingRepo) list(ctx context.Context, column, userID string, page, pageSize int) ([]domain.Booking, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings WHERE `+column+` = $1`, userID).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + column + ` = $1
              ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	return bookings, total, err
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.GigID, &b.TalentID, &b.ClientID, &b.Status,
			&b.StartsAt, &b.EndsAt, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, translateErr(err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
