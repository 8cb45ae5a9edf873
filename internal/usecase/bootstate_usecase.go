package usecase

import (
	"context"
	"errors"
	"strings"

	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/logger"
)

type bootStateUsecase struct {
	profiles domain.ProfileRepository
	talents  domain.TalentProfileRepository
	clients  domain.ClientProfileRepository
}

func NewBootStateUsecase(
	profiles domain.ProfileRepository,
	talents domain.TalentProfileRepository,
	clients domain.ClientProfileRepository,
) domain.BootStateUsecase {
	return &bootStateUsecase{profiles: profiles, talents: talents, clients: clients}
}

// EnsureProfile lazily repairs what the signup trigger should have created:
// the base profile row, and the talent row for talent-role users. Calling it
// again on a healthy account performs no writes.
func (u *bootStateUsecase) EnsureProfile(ctx context.Context, claims *domain.AuthClaims) (*domain.Profile, error) {
	if claims == nil || claims.UserID == "" {
		return nil, apperror.Unauthorized("Missing user identity")
	}

	profile, err := u.profiles.GetByID(ctx, claims.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if profile == nil {
		profile = newProfileFromClaims(claims)
		if err := u.profiles.Create(ctx, profile); err != nil {
			// Concurrent repair from another request; the row exists now.
			if errors.Is(err, domain.ErrDuplicate) {
				return u.profiles.GetByID(ctx, claims.UserID)
			}
			return nil, err
		}
		logger.Log.Info("repaired missing profile row", "user_id", claims.UserID, "role", profile.Role)
	}

	// A row left with a blank display name (trigger ran before metadata was
	// set) is backfilled from claims, so the onboarding check sees the name.
	if strings.TrimSpace(profile.DisplayName) == "" {
		if name := displayNameFromClaims(claims); name != "" {
			if err := u.profiles.UpdateDisplayName(ctx, claims.UserID, name); err != nil {
				logger.Log.Warn("display name backfill failed", "user_id", claims.UserID, "error", err)
			} else {
				profile.DisplayName = name
			}
		}
	}

	// Talent-role users also need their talent row. Missing one is repaired
	// best-effort: the profile itself is already usable.
	if profile.Role == domain.RoleTalent {
		if err := u.ensureTalentRow(ctx, claims); err != nil {
			logger.Log.Warn("talent row repair failed", "user_id", claims.UserID, "error", err)
		}
	}

	return profile, nil
}

func (u *bootStateUsecase) ensureTalentRow(ctx context.Context, claims *domain.AuthClaims) error {
	_, err := u.talents.GetByUserID(ctx, claims.UserID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return u.talents.Upsert(ctx, &domain.TalentProfile{
		UserID:    claims.UserID,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	})
}

func newProfileFromClaims(claims *domain.AuthClaims) *domain.Profile {
	role := claims.Role
	if role == domain.RoleNone {
		role = domain.RoleTalent
	}

	accountType := domain.AccountUnassigned
	switch role {
	case domain.RoleTalent:
		accountType = domain.AccountTalent
	case domain.RoleClient:
		accountType = domain.AccountClient
	}

	return &domain.Profile{
		ID:              claims.UserID,
		Email:           claims.Email,
		Role:            role,
		AccountType:     accountType,
		DisplayName:     displayNameFromClaims(claims),
		EmailVerifiedAt: claims.EmailVerifiedAt,
	}
}

// displayNameFromClaims builds a display name from the signup metadata,
// falling back to the email local part when no name was captured.
func displayNameFromClaims(claims *domain.AuthClaims) string {
	name := strings.TrimSpace(claims.FirstName + " " + claims.LastName)
	if name != "" {
		return name
	}
	if at := strings.Index(claims.Email, "@"); at > 0 {
		return claims.Email[:at]
	}
	return claims.Email
}

func (u *bootStateUsecase) GetBootState(ctx context.Context, claims *domain.AuthClaims) (*domain.BootState, error) {
	if claims == nil || claims.UserID == "" {
		return nil, nil
	}
	state, _ := u.compute(ctx, claims)
	return state, nil
}

func (u *bootStateUsecase) ResolvePostAuth(ctx context.Context, claims *domain.AuthClaims, path, returnURLRaw string, signedOut bool) (*domain.BootState, domain.RedirectDecision, error) {
	if claims == nil || claims.UserID == "" {
		return nil, domain.RedirectTo(domain.PathLogin), nil
	}

	state, profile := u.compute(ctx, claims)

	if state.NextPath == domain.PathSuspended {
		return state, domain.RedirectTo(domain.PathSuspended), nil
	}

	if state.NeedsOnboarding {
		if path == state.NextPath {
			return state, domain.NoRedirect(), nil
		}
		return state, domain.RedirectTo(state.NextPath), nil
	}

	decision := domain.DecidePostAuthRedirect(path, returnURLRaw, signedOut, profile, state.NextPath)
	if decision.Redirect {
		state.NextPath = decision.Target
	}
	return state, decision, nil
}

// compute builds the snapshot. Repair failures degrade instead of erroring:
// the state reports HasProfilesRow=false and routes to onboarding, where the
// next action retries the repair.
func (u *bootStateUsecase) compute(ctx context.Context, claims *domain.AuthClaims) (*domain.BootState, *domain.Profile) {
	state := &domain.BootState{UserID: claims.UserID, Email: claims.Email}

	profile, err := u.EnsureProfile(ctx, claims)
	if err != nil {
		logger.Log.Warn("profile repair failed, computing degraded boot state", "user_id", claims.UserID, "error", err)
	}
	if profile == nil {
		state.NeedsOnboarding = true
		state.NextPath = domain.PathOnboarding
		return state, nil
	}

	state.Role = profile.Role
	state.AccountType = profile.AccountType
	state.HasProfilesRow = true
	state.HasDomainProfileRow, state.NeedsOnboarding = u.onboardingStatus(ctx, profile)

	switch {
	case profile.IsSuspended:
		state.NextPath = domain.PathSuspended
	case state.NeedsOnboarding && profile.HasClientAccess():
		state.NextPath = domain.PathClientProfileSetup
	case state.NeedsOnboarding:
		state.NextPath = domain.PathOnboarding
	default:
		state.NextPath = domain.DetermineDestination(profile.Role, profile.AccountType)
	}

	return state, profile
}

// onboardingStatus loads the role-specific row and applies the completeness
// rules: talents need a display name plus both name fields, clients need a
// company name, admins never onboard.
func (u *bootStateUsecase) onboardingStatus(ctx context.Context, profile *domain.Profile) (hasRow, needsOnboarding bool) {
	if profile.IsAdmin() {
		return false, false
	}

	if profile.HasClientAccess() {
		client, err := u.clients.GetByUserID(ctx, profile.ID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Log.Warn("client profile load failed", "user_id", profile.ID, "error", err)
			}
			return false, true
		}
		return true, strings.TrimSpace(client.CompanyName) == ""
	}

	talent, err := u.talents.GetByUserID(ctx, profile.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Warn("talent profile load failed", "user_id", profile.ID, "error", err)
		}
		return false, true
	}
	incomplete := strings.TrimSpace(profile.DisplayName) == "" ||
		strings.TrimSpace(talent.FirstName) == "" ||
		strings.TrimSpace(talent.LastName) == ""
	return true, incomplete
}
