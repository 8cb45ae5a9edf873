package domain

import (
	"context"
	"time"
)

// Role is the coarse identity category, normally fixed at signup.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
	RoleTalent Role = "talent"
	RoleNone   Role = ""
)

// AccountType is the secondary classification. It exists so a talent can be
// promoted to client access without rewriting the role.
type AccountType string

const (
	AccountClient     AccountType = "client"
	AccountTalent     AccountType = "talent"
	AccountUnassigned AccountType = "unassigned"
	AccountNone       AccountType = ""
)

// Profile is the base row every authenticated user should have.
// The row is created by a database trigger on signup; EnsureProfile repairs
// it lazily when the trigger failed.
type Profile struct {
	ID                           string      `json:"id"` // Supabase UUID
	Email                        string      `json:"email"`
	Role                         Role        `json:"role"`
	AccountType                  AccountType `json:"account_type"`
	DisplayName                  string      `json:"display_name"`
	IsSuspended                  bool        `json:"is_suspended"`
	EmailVerifiedAt              *time.Time  `json:"email_verified_at,omitempty"`
	StripeCustomerID             string      `json:"-"`
	SubscriptionStatus           string      `json:"subscription_status,omitempty"`
	SubscriptionPriceID          string      `json:"-"`
	SubscriptionCurrentPeriodEnd *time.Time  `json:"subscription_current_period_end,omitempty"`
	CreatedAt                    time.Time   `json:"created_at"`
	UpdatedAt                    time.Time   `json:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// HasClientAccess reports whether the user belongs on the client terminal,
// by role or by account type.
func (p *Profile) HasClientAccess() bool {
	if p == nil || p.Role == RoleAdmin {
		return false
	}
	return p.Role == RoleClient || p.AccountType == AccountClient
}

// HasTalentAccess reports whether talent-scoped paths are open to the user.
// Unassigned users default to the talent terminal, so they qualify too.
func (p *Profile) HasTalentAccess() bool {
	if p == nil || p.Role == RoleAdmin {
		return false
	}
	if p.Role == RoleTalent || p.AccountType == AccountTalent {
		return true
	}
	return p.Role == RoleNone && (p.AccountType == AccountUnassigned || p.AccountType == AccountNone)
}

// Unassigned reports whether the account type carries no assignment.
func (p *Profile) Unassigned() bool {
	return p != nil && (p.AccountType == AccountUnassigned || p.AccountType == AccountNone)
}

// AuthClaims is the identity the auth middleware extracts from a verified
// Supabase JWT. FirstName/LastName/Role come from user_metadata and may be
// empty.
type AuthClaims struct {
	UserID          string
	Email           string
	FirstName       string
	LastName        string
	Role            Role
	EmailVerifiedAt *time.Time
}

// SubscriptionUpdate carries the subscription fields synced from a payment
// provider event onto the profile row.
type SubscriptionUpdate struct {
	Status           string
	PriceID          string
	CurrentPeriodEnd *time.Time
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	UpdateDisplayName(ctx context.Context, id, displayName string) error
	UpdateAccountType(ctx context.Context, id string, accountType AccountType) error
	UpdateSuspended(ctx context.Context, id string, suspended bool) error
	UpdateStripeCustomer(ctx context.Context, id, customerID string) error
	// UpdateSubscription is keyed by Stripe customer ID, not user ID, because
	// webhook events only carry the customer reference.
	UpdateSubscription(ctx context.Context, customerID string, sub SubscriptionUpdate) error
}
