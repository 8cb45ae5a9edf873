package usecase

import (
	"context"

	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/logger"
)

type adminUsecase struct {
	admin              domain.AdminRepository
	profiles           domain.ProfileRepository
	clients            domain.ClientProfileRepository
	clientApplications domain.ClientApplicationRepository
	gigs               domain.GigRepository
}

func NewAdminUsecase(
	admin domain.AdminRepository,
	profiles domain.ProfileRepository,
	clients domain.ClientProfileRepository,
	clientApplications domain.ClientApplicationRepository,
	gigs domain.GigRepository,
) domain.AdminUsecase {
	return &adminUsecase{
		admin:              admin,
		profiles:           profiles,
		clients:            clients,
		clientApplications: clientApplications,
		gigs:               gigs,
	}
}

// requireAdmin enforces the role at the usecase boundary too, so a routing
// mistake cannot expose admin operations.
func requireAdmin(ctx context.Context) error {
	role, ok := ctx.Value(domain.KeyUserRole).(string)
	if !ok || role != string(domain.RoleAdmin) {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}

func (u *adminUsecase) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return u.admin.GetStats(ctx)
}

func (u *adminUsecase) ListUsers(ctx context.Context, filter domain.UserFilter) ([]domain.Profile, int64, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	normalizePage(&filter.Page, &filter.PageSize)
	return u.admin.ListUsers(ctx, filter)
}

func (u *adminUsecase) SetSuspended(ctx context.Context, userID string, suspended bool) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	target, err := u.profiles.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.IsAdmin() {
		return apperror.BadRequest("Admins cannot be suspended")
	}
	if err := u.profiles.UpdateSuspended(ctx, userID, suspended); err != nil {
		return err
	}
	logger.Log.Info("user suspension changed", "user_id", userID, "suspended", suspended)
	return nil
}

func (u *adminUsecase) HideGig(ctx context.Context, gigID int64) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return u.gigs.UpdateStatus(ctx, gigID, domain.GigHidden)
}

func (u *adminUsecase) ListClientApplications(ctx context.Context, status domain.ClientApplicationStatus, page, pageSize int) ([]domain.ClientApplication, int64, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	normalizePage(&page, &pageSize)
	return u.clientApplications.List(ctx, status, page, pageSize)
}

// ReviewClientApplication resolves a pending promotion request. Approval
// flips the applicant's account type to client and seeds the client profile
// row with the application's company details. The role column stays as-is:
// promotion never rewrites identity.
func (u *adminUsecase) ReviewClientApplication(ctx context.Context, applicationID int64, approve bool) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	app, err := u.clientApplications.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.Status != domain.ClientApplicationPending {
		return apperror.BadRequest("Application already reviewed")
	}

	reviewerID, _ := ctx.Value(domain.KeyUserID).(string)

	status := domain.ClientApplicationRejected
	if approve {
		status = domain.ClientApplicationApproved
	}
	if err := u.clientApplications.UpdateStatus(ctx, applicationID, status, reviewerID); err != nil {
		return err
	}
	if !approve {
		return nil
	}

	if err := u.profiles.UpdateAccountType(ctx, app.UserID, domain.AccountClient); err != nil {
		return err
	}
	if err := u.clients.Upsert(ctx, &domain.ClientProfile{
		UserID:      app.UserID,
		CompanyName: app.CompanyName,
		Website:     app.Website,
	}); err != nil {
		// Account type already flipped; the setup page collects the rest.
		logger.Log.Warn("client profile seed failed after approval", "user_id", app.UserID, "error", err)
	}

	logger.Log.Info("client application approved", "application_id", applicationID, "user_id", app.UserID, "reviewed_by", reviewerID)
	return nil
}
