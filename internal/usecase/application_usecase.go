package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/email"
	"go-totl-backend/pkg/logger"
	"go-totl-backend/pkg/validation"
)

type applicationUsecase struct {
	applications domain.ApplicationRepository
	gigs         domain.GigRepository
	bookings     domain.BookingRepository
	profiles     domain.ProfileRepository
	mailer       *email.Service
	validate     *validator.Validate
}

func NewApplicationUsecase(
	applications domain.ApplicationRepository,
	gigs domain.GigRepository,
	bookings domain.BookingRepository,
	profiles domain.ProfileRepository,
	mailer *email.Service,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applications: applications,
		gigs:         gigs,
		bookings:     bookings,
		profiles:     profiles,
		mailer:       mailer,
		validate:     validate,
	}
}

func (u *applicationUsecase) Apply(ctx context.Context, talentID string, req *domain.ApplyRequest) (*domain.Application, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	gig, err := u.gigs.GetByID(ctx, req.GigID)
	if err != nil {
		return nil, err
	}
	if gig.Status != domain.GigOpen {
		return nil, apperror.BadRequest("Gig is not accepting applications")
	}
	if gig.ClientID == talentID {
		return nil, apperror.BadRequest("Cannot apply to your own gig")
	}

	app := &domain.Application{
		GigID:     req.GigID,
		TalentID:  talentID,
		CoverNote: req.CoverNote,
		Status:    domain.ApplicationPending,
	}
	if err := u.applications.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You already applied to this gig")
		}
		return nil, err
	}

	u.notifyClient(ctx, gig, talentID)
	return app, nil
}

func (u *applicationUsecase) Withdraw(ctx context.Context, talentID string, applicationID int64) error {
	app, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.TalentID != talentID {
		return apperror.Forbidden("Application belongs to another talent")
	}
	if app.Status == domain.ApplicationAccepted {
		return apperror.BadRequest("Accepted applications cannot be withdrawn")
	}
	return u.applications.UpdateStatus(ctx, applicationID, domain.ApplicationWithdrawn)
}

func (u *applicationUsecase) ListMine(ctx context.Context, talentID string, page, pageSize int) ([]domain.Application, int64, error) {
	normalizePage(&page, &pageSize)
	return u.applications.ListByTalent(ctx, talentID, page, pageSize)
}

func (u *applicationUsecase) ListForGig(ctx context.Context, clientID string, gigID int64, page, pageSize int) ([]domain.Application, int64, error) {
	gig, err := u.gigs.GetByID(ctx, gigID)
	if err != nil {
		return nil, 0, err
	}
	if gig.ClientID != clientID {
		return nil, 0, apperror.Forbidden("Gig belongs to another client")
	}
	normalizePage(&page, &pageSize)
	return u.applications.ListByGig(ctx, gigID, page, pageSize)
}

// Review transitions an application on behalf of the gig's owner. Accepting
// also creates the booking; the application keeps its accepted status even if
// the booking insert fails, so the client can retry from the bookings view.
func (u *applicationUsecase) Review(ctx context.Context, clientID string, applicationID int64, status domain.ApplicationStatus) (*domain.Application, error) {
	switch status {
	case domain.ApplicationShortlisted, domain.ApplicationAccepted, domain.ApplicationRejected:
	default:
		return nil, apperror.BadRequest("Invalid review status")
	}

	app, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	gig, err := u.gigs.GetByID(ctx, app.GigID)
	if err != nil {
		return nil, err
	}
	if gig.ClientID != clientID {
		return nil, apperror.Forbidden("Gig belongs to another client")
	}
	if app.Status == domain.ApplicationWithdrawn {
		return nil, apperror.BadRequest("Application was withdrawn")
	}

	if err := u.applications.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}
	app.Status = status

	if status == domain.ApplicationAccepted {
		booking := &domain.Booking{
			GigID:    gig.ID,
			TalentID: app.TalentID,
			ClientID: clientID,
			Status:   domain.BookingConfirmed,
			StartsAt: gig.StartDate,
			EndsAt:   gig.EndDate,
		}
		if err := u.bookings.Create(ctx, booking); err != nil {
			logger.Log.Error("booking create failed after accept", "application_id", applicationID, "error", err)
			return nil, apperror.Internal(err)
		}
		u.notifyTalent(ctx, app.TalentID, gig)
	}

	return app, nil
}

func (u *applicationUsecase) notifyClient(ctx context.Context, gig *domain.Gig, talentID string) {
	if u.mailer == nil || !u.mailer.IsConfigured() {
		return
	}
	owner, err := u.profiles.GetByID(ctx, gig.ClientID)
	if err != nil {
		logger.Log.Warn("application email skipped, owner lookup failed", "gig_id", gig.ID, "error", err)
		return
	}
	applicantName := "A talent"
	if applicant, err := u.profiles.GetByID(ctx, talentID); err == nil && applicant.DisplayName != "" {
		applicantName = applicant.DisplayName
	}
	if err := u.mailer.Send(email.TemplateApplicationReceived, owner.Email, email.TemplateData{
		CompanyName:   owner.DisplayName,
		RecipientName: applicantName,
		GigTitle:      gig.Title,
	}); err != nil {
		logger.Log.Warn("application email failed", "gig_id", gig.ID, "error", err)
	}
}

func (u *applicationUsecase) notifyTalent(ctx context.Context, talentID string, gig *domain.Gig) {
	if u.mailer == nil || !u.mailer.IsConfigured() {
		return
	}
	talent, err := u.profiles.GetByID(ctx, talentID)
	if err != nil {
		logger.Log.Warn("booking email skipped, talent lookup failed", "gig_id", gig.ID, "error", err)
		return
	}
	if err := u.mailer.Send(email.TemplateBookingConfirmed, talent.Email, email.TemplateData{
		RecipientName: talent.DisplayName,
		GigTitle:      gig.Title,
	}); err != nil {
		logger.Log.Warn("booking email failed", "gig_id", gig.ID, "error", err)
	}
}
