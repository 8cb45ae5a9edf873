package usecase

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/validation"
)

type gigUsecase struct {
	gigs     domain.GigRepository
	validate *validator.Validate
}

func NewGigUsecase(gigs domain.GigRepository, validate *validator.Validate) domain.GigUsecase {
	return &gigUsecase{gigs: gigs, validate: validate}
}

func (u *gigUsecase) Create(ctx context.Context, clientID string, req *domain.GigRequest) (*domain.Gig, error) {
	if err := u.validateRequest(req); err != nil {
		return nil, err
	}

	status := domain.GigDraft
	if req.Publish {
		status = domain.GigOpen
	}

	gig := &domain.Gig{
		ClientID:        clientID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Location:        req.Location,
		CompensationMin: req.CompensationMin,
		CompensationMax: req.CompensationMax,
		Currency:        req.Currency,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Status:          status,
	}
	if err := u.gigs.Create(ctx, gig); err != nil {
		return nil, err
	}
	return gig, nil
}

func (u *gigUsecase) Update(ctx context.Context, clientID string, gigID int64, req *domain.GigRequest) (*domain.Gig, error) {
	if err := u.validateRequest(req); err != nil {
		return nil, err
	}
	gig, err := u.ownedGig(ctx, clientID, gigID)
	if err != nil {
		return nil, err
	}

	gig.Title = req.Title
	gig.Description = req.Description
	gig.Category = req.Category
	gig.Location = req.Location
	gig.CompensationMin = req.CompensationMin
	gig.CompensationMax = req.CompensationMax
	gig.Currency = req.Currency
	gig.StartDate = req.StartDate
	gig.EndDate = req.EndDate
	if req.Publish && gig.Status == domain.GigDraft {
		gig.Status = domain.GigOpen
	}

	if err := u.gigs.Update(ctx, gig); err != nil {
		return nil, err
	}
	return gig, nil
}

func (u *gigUsecase) Close(ctx context.Context, clientID string, gigID int64) error {
	if _, err := u.ownedGig(ctx, clientID, gigID); err != nil {
		return err
	}
	return u.gigs.UpdateStatus(ctx, gigID, domain.GigClosed)
}

// Get hides moderated and draft gigs from everyone but their owner and admins.
func (u *gigUsecase) Get(ctx context.Context, gigID int64) (*domain.Gig, error) {
	gig, err := u.gigs.GetByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if gig.Status == domain.GigHidden || gig.Status == domain.GigDraft {
		if !isOwnerOrAdmin(ctx, gig.ClientID) {
			return nil, apperror.NotFound("Gig not found")
		}
	}
	return gig, nil
}

func (u *gigUsecase) ListOpen(ctx context.Context, filter domain.GigFilter) ([]domain.Gig, int64, error) {
	normalizePage(&filter.Page, &filter.PageSize)
	return u.gigs.ListOpen(ctx, filter)
}

func (u *gigUsecase) ListMine(ctx context.Context, clientID string, page, pageSize int) ([]domain.Gig, int64, error) {
	normalizePage(&page, &pageSize)
	return u.gigs.ListByClient(ctx, clientID, page, pageSize)
}

func (u *gigUsecase) ownedGig(ctx context.Context, clientID string, gigID int64) (*domain.Gig, error) {
	gig, err := u.gigs.GetByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if gig.ClientID != clientID {
		return nil, apperror.Forbidden("Gig belongs to another client")
	}
	return gig, nil
}

func (u *gigUsecase) validateRequest(req *domain.GigRequest) error {
	if err := u.validate.Struct(req); err != nil {
		return apperror.BadRequest("Validation failed: " + strings.Join(validation.FormatValidationErrors(err), "; "))
	}
	if req.CompensationMin != nil && req.CompensationMax != nil && *req.CompensationMax < *req.CompensationMin {
		return apperror.BadRequest("compensation_max must be >= compensation_min")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return apperror.BadRequest("end_date must not precede start_date")
	}
	return nil
}

func isOwnerOrAdmin(ctx context.Context, ownerID string) bool {
	if role, ok := ctx.Value(domain.KeyUserRole).(string); ok && role == string(domain.RoleAdmin) {
		return true
	}
	userID, ok := ctx.Value(domain.KeyUserID).(string)
	return ok && userID == ownerID
}

func normalizePage(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 || *pageSize > 100 {
		*pageSize = 20
	}
}
