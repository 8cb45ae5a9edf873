package domain

import "context"

// AdminStats are the dashboard counters.
type AdminStats struct {
	TotalUsers                int64 `json:"total_users"`
	TotalTalents              int64 `json:"total_talents"`
	TotalClients              int64 `json:"total_clients"`
	OpenGigs                  int64 `json:"open_gigs"`
	TotalApplications         int64 `json:"total_applications"`
	TotalBookings             int64 `json:"total_bookings"`
	PendingClientApplications int64 `json:"pending_client_applications"`
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role     string
	Page     int
	PageSize int
}

type AdminRepository interface {
	GetStats(ctx context.Context) (*AdminStats, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]Profile, int64, error)
}

type AdminUsecase interface {
	GetStats(ctx context.Context) (*AdminStats, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]Profile, int64, error)
	SetSuspended(ctx context.Context, userID string, suspended bool) error
	HideGig(ctx context.Context, gigID int64) error
	// Client application review: approval grants client account access and
	// seeds the client profile row. The role is never rewritten.
	ListClientApplications(ctx context.Context, status ClientApplicationStatus, page, pageSize int) ([]ClientApplication, int64, error)
	ReviewClientApplication(ctx context.Context, applicationID int64, approve bool) error
}
