package domain

import (
	"context"
	"time"
)

// ClientProfile is the role-specific row for client (career builder) users.
// Onboarding is incomplete until CompanyName is non-empty.
type ClientProfile struct {
	UserID       string    `json:"user_id"`
	CompanyName  string    `json:"company_name"`
	Website      string    `json:"website,omitempty"`
	Industry     string    `json:"industry,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ClientProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*ClientProfile, error)
	Upsert(ctx context.Context, profile *ClientProfile) error
}

// ClientProfileRequest is the client profile completion payload.
type ClientProfileRequest struct {
	CompanyName  string `json:"company_name" validate:"required,max=160,no_emoji"`
	Website      string `json:"website" validate:"omitempty,url"`
	Industry     string `json:"industry" validate:"omitempty,max=120"`
	ContactPhone string `json:"contact_phone" validate:"omitempty,valid_phone"`
}

// ClientApplicationStatus tracks talent-to-client promotion requests.
type ClientApplicationStatus string

const (
	ClientApplicationPending  ClientApplicationStatus = "pending"
	ClientApplicationApproved ClientApplicationStatus = "approved"
	ClientApplicationRejected ClientApplicationStatus = "rejected"
)

// ClientApplication is a talent's request for client access. Approval flips
// the profile's account type to client; the role is never rewritten.
type ClientApplication struct {
	ID          int64                   `json:"id"`
	UserID      string                  `json:"user_id"`
	CompanyName string                  `json:"company_name"`
	Website     string                  `json:"website,omitempty"`
	Reason      string                  `json:"reason,omitempty"`
	Status      ClientApplicationStatus `json:"status"`
	ReviewedBy  string                  `json:"reviewed_by,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

type ClientApplicationRepository interface {
	Create(ctx context.Context, app *ClientApplication) error
	GetByID(ctx context.Context, id int64) (*ClientApplication, error)
	GetPendingByUserID(ctx context.Context, userID string) (*ClientApplication, error)
	List(ctx context.Context, status ClientApplicationStatus, page, pageSize int) ([]ClientApplication, int64, error)
	UpdateStatus(ctx context.Context, id int64, status ClientApplicationStatus, reviewedBy string) error
}

type ClientUsecase interface {
	GetProfile(ctx context.Context, userID string) (*ClientProfile, error)
	// GetProfileForViewer resolves the target user: admins may pass an
	// explicit userID (read-only impersonation view), everyone else gets
	// their own row.
	GetProfileForViewer(ctx context.Context, targetUserID string) (*ClientProfile, error)
	ApplyForClientAccess(ctx context.Context, userID string, req *ClientAccessRequest) (*ClientApplication, error)
	MyApplication(ctx context.Context, userID string) (*ClientApplication, error)
}

// ClientAccessRequest is the talent-to-client promotion request payload.
type ClientAccessRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=160,no_emoji"`
	Website     string `json:"website" validate:"omitempty,url"`
	Reason      string `json:"reason" validate:"omitempty,max=2000"`
}
