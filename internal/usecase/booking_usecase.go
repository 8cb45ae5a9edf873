package usecase

import (
	"context"

	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
)

type bookingUsecase struct {
	bookings domain.BookingRepository
}

func NewBookingUsecase(bookings domain.BookingRepository) domain.BookingUsecase {
	return &bookingUsecase{bookings: bookings}
}

func (u *bookingUsecase) ListForTalent(ctx context.Context, talentID string, page, pageSize int) ([]domain.Booking, int64, error) {
	normalizePage(&page, &pageSize)
	return u.bookings.ListByTalent(ctx, talentID, page, pageSize)
}

func (u *bookingUsecase) ListForClient(ctx context.Context, clientID string, page, pageSize int) ([]domain.Booking, int64, error) {
	normalizePage(&page, &pageSize)
	return u.bookings.ListByClient(ctx, clientID, page, pageSize)
}

func (u *bookingUsecase) Complete(ctx context.Context, clientID string, bookingID int64) error {
	booking, err := u.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.ClientID != clientID {
		return apperror.Forbidden("Booking belongs to another client")
	}
	if booking.Status != domain.BookingConfirmed {
		return apperror.BadRequest("Only confirmed bookings can be completed")
	}
	return u.bookings.UpdateStatus(ctx, bookingID, domain.BookingCompleted)
}

// Cancel is open to either side of the booking.
func (u *bookingUsecase) Cancel(ctx context.Context, userID string, bookingID int64) error {
	booking, err := u.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.ClientID != userID && booking.TalentID != userID {
		return apperror.Forbidden("Booking does not involve you")
	}
	if booking.Status != domain.BookingConfirmed {
		return apperror.BadRequest("Only confirmed bookings can be cancelled")
	}
	return u.bookings.UpdateStatus(ctx, bookingID, domain.BookingCancelled)
}
