package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationAccepted    ApplicationStatus = "accepted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationWithdrawn   ApplicationStatus = "withdrawn"
)

// Application is a talent's application to a gig. One per talent per gig,
// enforced by a unique constraint.
type Application struct {
	ID        int64             `json:"id"`
	GigID     int64             `json:"gig_id"`
	TalentID  string            `json:"talent_id"`
	CoverNote string            `json:"cover_note,omitempty"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	ListByTalent(ctx context.Context, talentID string, page, pageSize int) ([]Application, int64, error)
	ListByGig(ctx context.Context, gigID int64, page, pageSize int) ([]Application, int64, error)
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus) error
}

// ApplyRequest is the payload for applying to a gig.
type ApplyRequest struct {
	GigID     int64  `json:"gig_id" validate:"required,gt=0"`
	CoverNote string `json:"cover_note" validate:"omitempty,max=4000"`
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, talentID string, req *ApplyRequest) (*Application, error)
	Withdraw(ctx context.Context, talentID string, applicationID int64) error
	ListMine(ctx context.Context, talentID string, page, pageSize int) ([]Application, int64, error)
	// Client-side review. The caller must own the gig the application
	// belongs to; accepting creates a booking.
	ListForGig(ctx context.Context, clientID string, gigID int64, page, pageSize int) ([]Application, int64, error)
	Review(ctx context.Context, clientID string, applicationID int64, status ApplicationStatus) (*Application, error)
}
