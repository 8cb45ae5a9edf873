package domain

import (
	"context"
	"time"
)

// PortfolioItem is one image in a talent's portfolio gallery.
type PortfolioItem struct {
	ID        int64     `json:"id"`
	TalentID  string    `json:"talent_id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type PortfolioRepository interface {
	Create(ctx context.Context, item *PortfolioItem) error
	GetByID(ctx context.Context, id int64) (*PortfolioItem, error)
	ListByTalent(ctx context.Context, talentID string) ([]PortfolioItem, error)
	Delete(ctx context.Context, id int64) error
}

// PortfolioItemRequest is the create payload (the image itself goes through
// the upload endpoint first).
type PortfolioItemRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
	Caption  string `json:"caption" validate:"omitempty,max=300"`
	Position int    `json:"position" validate:"gte=0"`
}

type PortfolioUsecase interface {
	Add(ctx context.Context, talentID string, req *PortfolioItemRequest) (*PortfolioItem, error)
	List(ctx context.Context, talentID string) ([]PortfolioItem, error)
	Remove(ctx context.Context, talentID string, itemID int64) error
}
