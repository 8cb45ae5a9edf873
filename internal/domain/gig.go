package domain

import (
	"context"
	"time"
)

type GigStatus string

const (
	GigDraft  GigStatus = "draft"
	GigOpen   GigStatus = "open"
	GigClosed GigStatus = "closed"
	GigHidden GigStatus = "hidden" // moderation
)

type Gig struct {
	ID              int64     `json:"id"`
	ClientID        string    `json:"client_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category,omitempty"`
	Location        string    `json:"location,omitempty"`
	CompensationMin *int      `json:"compensation_min,omitempty"`
	CompensationMax *int      `json:"compensation_max,omitempty"`
	Currency        string    `json:"currency,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Status          GigStatus `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// GigFilter narrows public gig listings.
type GigFilter struct {
	Category string
	Location string
	Page     int
	PageSize int
}

type GigRepository interface {
	Create(ctx context.Context, gig *Gig) error
	GetByID(ctx context.Context, id int64) (*Gig, error)
	Update(ctx context.Context, gig *Gig) error
	UpdateStatus(ctx context.Context, id int64, status GigStatus) error
	ListOpen(ctx context.Context, filter GigFilter) ([]Gig, int64, error)
	ListByClient(ctx context.Context, clientID string, page, pageSize int) ([]Gig, int64, error)
}

// GigRequest is the create/update payload for a gig.
type GigRequest struct {
	Title           string     `json:"title" validate:"required,max=160,no_emoji"`
	Description     string     `json:"description" validate:"required,max=8000"`
	Category        string     `json:"category" validate:"omitempty,max=80"`
	Location        string     `json:"location" validate:"omitempty,max=160"`
	CompensationMin *int       `json:"compensation_min" validate:"omitempty,gte=0"`
	CompensationMax *int       `json:"compensation_max" validate:"omitempty,gte=0"`
	Currency        string     `json:"currency" validate:"omitempty,len=3"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Publish         bool       `json:"publish"`
}

type GigUsecase interface {
	Create(ctx context.Context, clientID string, req *GigRequest) (*Gig, error)
	Update(ctx context.Context, clientID string, gigID int64, req *GigRequest) (*Gig, error)
	Close(ctx context.Context, clientID string, gigID int64) error
	Get(ctx context.Context, gigID int64) (*Gig, error)
	ListOpen(ctx context.Context, filter GigFilter) ([]Gig, int64, error)
	ListMine(ctx context.Context, clientID string, page, pageSize int) ([]Gig, int64, error)
}

// PaginatedResult is the generic page envelope used by list endpoints.
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}
