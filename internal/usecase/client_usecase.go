package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/validation"
)

type clientUsecase struct {
	clients      domain.ClientProfileRepository
	applications domain.ClientApplicationRepository
	profiles     domain.ProfileRepository
	validate     *validator.Validate
}

func NewClientUsecase(
	clients domain.ClientProfileRepository,
	applications domain.ClientApplicationRepository,
	profiles domain.ProfileRepository,
	validate *validator.Validate,
) domain.ClientUsecase {
	return &clientUsecase{clients: clients, applications: applications, profiles: profiles, validate: validate}
}

func (u *clientUsecase) GetProfile(ctx context.Context, userID string) (*domain.ClientProfile, error) {
	return u.clients.GetByUserID(ctx, userID)
}

// GetProfileForViewer resolves an explicit target user ID. Only admins may
// view a row other than their own.
func (u *clientUsecase) GetProfileForViewer(ctx context.Context, targetUserID string) (*domain.ClientProfile, error) {
	callerID, _ := ctx.Value(domain.KeyUserID).(string)
	if targetUserID == "" || targetUserID == callerID {
		return u.clients.GetByUserID(ctx, callerID)
	}
	role, _ := ctx.Value(domain.KeyUserRole).(string)
	if role != string(domain.RoleAdmin) {
		return nil, apperror.Forbidden("Cannot view another user's client profile")
	}
	return u.clients.GetByUserID(ctx, targetUserID)
}

// ApplyForClientAccess files a talent's promotion request. Requests are
// one-at-a-time: a pending application blocks a new one, and users who
// already have client access have nothing to apply for.
func (u *clientUsecase) ApplyForClientAccess(ctx context.Context, userID string, req *domain.ClientAccessRequest) (*domain.ClientApplication, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	profile, err := u.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.IsAdmin() || profile.HasClientAccess() {
		return nil, apperror.BadRequest("Account already has client access")
	}

	pending, err := u.applications.GetPendingByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if pending != nil {
		return nil, apperror.Conflict("A client application is already pending")
	}

	app := &domain.ClientApplication{
		UserID:      userID,
		CompanyName: req.CompanyName,
		Website:     req.Website,
		Reason:      req.Reason,
		Status:      domain.ClientApplicationPending,
	}
	if err := u.applications.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("A client application is already pending")
		}
		return nil, err
	}
	return app, nil
}

func (u *clientUsecase) MyApplication(ctx context.Context, userID string) (*domain.ClientApplication, error) {
	return u.applications.GetPendingByUserID(ctx, userID)
}
