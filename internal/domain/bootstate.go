package domain

import "context"

// BootState is a per-request snapshot of a user's routing-relevant status.
// It is computed fresh on every call and never cached across requests;
// the profile row in the database stays the single source of truth.
type BootState struct {
	UserID              string      `json:"user_id"`
	Email               string      `json:"email"`
	Role                Role        `json:"role"`
	AccountType         AccountType `json:"account_type"`
	HasProfilesRow      bool        `json:"has_profiles_row"`
	HasDomainProfileRow bool        `json:"has_domain_profile_row"`
	NeedsOnboarding     bool        `json:"needs_onboarding"`
	NextPath            string      `json:"next_path"`
}

type BootStateUsecase interface {
	// EnsureProfile idempotently creates or repairs the base profile row (and
	// the talent row for talents) from auth claims. Safe to call on every
	// login and every boot-state computation.
	EnsureProfile(ctx context.Context, claims *AuthClaims) (*Profile, error)

	// GetBootState computes the snapshot for the current user. Returns
	// (nil, nil) when claims carry no user; callers redirect to login.
	// Repair failures are logged, not raised: the snapshot still computes
	// with HasProfilesRow=false.
	GetBootState(ctx context.Context, claims *AuthClaims) (*BootState, error)

	// ResolvePostAuth computes the snapshot in post-auth mode: when no
	// onboarding is pending, NextPath honors a safe return URL via the
	// post-auth redirect decision.
	ResolvePostAuth(ctx context.Context, claims *AuthClaims, path, returnURLRaw string, signedOut bool) (*BootState, RedirectDecision, error)
}
