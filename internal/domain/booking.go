package domain

import (
	"context"
	"time"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is created when a client accepts an application.
type Booking struct {
	ID        int64         `json:"id"`
	GigID     int64         `json:"gig_id"`
	TalentID  string        `json:"talent_id"`
	ClientID  string        `json:"client_id"`
	Status    BookingStatus `json:"status"`
	StartsAt  *time.Time    `json:"starts_at,omitempty"`
	EndsAt    *time.Time    `json:"ends_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	ListByTalent(ctx context.Context, talentID string, page, pageSize int) ([]Booking, int64, error)
	ListByClient(ctx context.Context, clientID string, page, pageSize int) ([]Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, status BookingStatus) error
}

type BookingUsecase interface {
	ListForTalent(ctx context.Context, talentID string, page, pageSize int) ([]Booking, int64, error)
	ListForClient(ctx context.Context, clientID string, page, pageSize int) ([]Booking, int64, error)
	// Complete and Cancel are client actions on bookings they own.
	Complete(ctx context.Context, clientID string, bookingID int64) error
	Cancel(ctx context.Context, userID string, bookingID int64) error
}
