package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/validation"
)

type onboardingUsecase struct {
	profiles domain.ProfileRepository
	talents  domain.TalentProfileRepository
	clients  domain.ClientProfileRepository
	boot     domain.BootStateUsecase
	validate *validator.Validate
}

func NewOnboardingUsecase(
	profiles domain.ProfileRepository,
	talents domain.TalentProfileRepository,
	clients domain.ClientProfileRepository,
	boot domain.BootStateUsecase,
	validate *validator.Validate,
) domain.OnboardingUsecase {
	return &onboardingUsecase{profiles: profiles, talents: talents, clients: clients, boot: boot, validate: validate}
}

// FinishOnboarding saves the talent onboarding form: full name split into
// first/last on the talent row, display name on the profile row. Role and
// account type are deliberately untouched.
func (u *onboardingUsecase) FinishOnboarding(ctx context.Context, userID string, req *domain.FinishOnboardingRequest) (string, error) {
	if err := requireSelf(ctx, userID); err != nil {
		return "", err
	}
	if err := u.validate.Struct(req); err != nil {
		return "", apperror.BadRequest("Validation failed: " + strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	first, last, ok := splitFullName(req.FullName)
	if !ok {
		return "", apperror.BadRequest("Full name must include first and last name")
	}

	profile, err := u.profiles.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	talent := &domain.TalentProfile{
		UserID:          userID,
		FirstName:       first,
		LastName:        last,
		Location:        strings.TrimSpace(req.Location),
		HeightCM:        req.HeightCM,
		Specialties:     req.Specialties,
		ExperienceLevel: req.ExperienceLevel,
		InstagramURL:    strings.TrimSpace(req.InstagramURL),
		PortfolioURL:    strings.TrimSpace(req.PortfolioURL),
	}
	if err := u.talents.Upsert(ctx, talent); err != nil {
		return "", err
	}

	if err := u.profiles.UpdateDisplayName(ctx, userID, first+" "+last); err != nil {
		// The talent row was already written; report the partial failure so
		// the caller retries instead of silently losing the display name.
		return "", apperror.New(http.StatusInternalServerError, "Onboarding partially saved, please retry", err)
	}

	return u.nextPath(ctx, userID, profile.Email)
}

func (u *onboardingUsecase) CompleteClientProfile(ctx context.Context, userID string, req *domain.ClientProfileRequest) (string, error) {
	if err := requireSelf(ctx, userID); err != nil {
		return "", err
	}
	if err := u.validate.Struct(req); err != nil {
		return "", apperror.BadRequest("Validation failed: " + strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	profile, err := u.profiles.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !profile.HasClientAccess() && !profile.IsAdmin() {
		return "", apperror.Forbidden("Client profile requires client access")
	}

	client := &domain.ClientProfile{
		UserID:       userID,
		CompanyName:  strings.TrimSpace(req.CompanyName),
		Website:      strings.TrimSpace(req.Website),
		Industry:     strings.TrimSpace(req.Industry),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
	}
	if err := u.clients.Upsert(ctx, client); err != nil {
		return "", err
	}

	return u.nextPath(ctx, userID, profile.Email)
}

// nextPath recomputes the boot state after a write so the caller navigates on
// fresh data rather than a stale snapshot.
func (u *onboardingUsecase) nextPath(ctx context.Context, userID, email string) (string, error) {
	state, err := u.boot.GetBootState(ctx, &domain.AuthClaims{UserID: userID, Email: email})
	if err != nil || state == nil {
		return domain.PathTalentDashboard, nil
	}
	return state.NextPath, nil
}

// splitFullName breaks a full name into first name and the remaining tokens
// as last name.
func splitFullName(fullName string) (first, last string, ok bool) {
	fields := strings.Fields(fullName)
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[0], strings.Join(fields[1:], " "), true
}

// requireSelf rejects writes against a user ID other than the caller's own.
func requireSelf(ctx context.Context, userID string) error {
	ctxID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxID == "" {
		return apperror.Unauthorized("Missing user identity")
	}
	if ctxID != userID {
		return apperror.Forbidden("Cannot modify another user's profile")
	}
	return nil
}
