package domain

import (
	"context"
	"time"
)

// TalentProfile is the role-specific row for talent users, keyed by user ID.
// Onboarding is incomplete until DisplayName (on Profile) and both name
// fields here are non-empty.
type TalentProfile struct {
	UserID          string    `json:"user_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Location        string    `json:"location,omitempty"`
	HeightCM        *int      `json:"height_cm,omitempty"`
	Specialties     []string  `json:"specialties,omitempty"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	InstagramURL    string    `json:"instagram_url,omitempty"`
	PortfolioURL    string    `json:"portfolio_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type TalentProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*TalentProfile, error)
	Upsert(ctx context.Context, profile *TalentProfile) error
	// List returns public talent directory entries, newest first.
	List(ctx context.Context, page, pageSize int) ([]TalentProfile, int64, error)
}

// FinishOnboardingRequest is the payload for completing talent onboarding.
// FullName must split into non-empty first/last tokens.
type FinishOnboardingRequest struct {
	FullName        string   `json:"full_name" validate:"required,full_name,valid_name,no_emoji"`
	Location        string   `json:"location" validate:"omitempty,max=120"`
	HeightCM        *int     `json:"height_cm" validate:"omitempty,gt=0,lt=300"`
	Specialties     []string `json:"specialties" validate:"omitempty,max=10,dive,max=60"`
	ExperienceLevel string   `json:"experience_level" validate:"omitempty,oneof=new some experienced professional"`
	InstagramURL    string   `json:"instagram_url" validate:"omitempty,url"`
	PortfolioURL    string   `json:"portfolio_url" validate:"omitempty,url"`
}

type OnboardingUsecase interface {
	// FinishOnboarding validates and saves the talent onboarding form and
	// returns the fresh next path. It never touches role or account type:
	// onboarding is not a promotion path.
	FinishOnboarding(ctx context.Context, userID string, req *FinishOnboardingRequest) (string, error)

	// CompleteClientProfile saves the client profile completion form
	// (company name is the onboarding gate for clients).
	CompleteClientProfile(ctx context.Context, userID string, req *ClientProfileRequest) (string, error)
}

type TalentUsecase interface {
	GetProfile(ctx context.Context, userID string) (*TalentProfile, error)
	UpdateProfile(ctx context.Context, profile *TalentProfile) error
	ListDirectory(ctx context.Context, page, pageSize int) ([]TalentProfile, int64, error)
}
