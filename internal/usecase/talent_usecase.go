package usecase

import (
	"context"

	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
)

type talentUsecase struct {
	talents domain.TalentProfileRepository
}

func NewTalentUsecase(talents domain.TalentProfileRepository) domain.TalentUsecase {
	return &talentUsecase{talents: talents}
}

func (u *talentUsecase) GetProfile(ctx context.Context, userID string) (*domain.TalentProfile, error) {
	return u.talents.GetByUserID(ctx, userID)
}

func (u *talentUsecase) UpdateProfile(ctx context.Context, profile *domain.TalentProfile) error {
	ctxID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxID != profile.UserID {
		return apperror.Forbidden("Cannot modify another user's profile")
	}
	return u.talents.Upsert(ctx, profile)
}

func (u *talentUsecase) ListDirectory(ctx context.Context, page, pageSize int) ([]domain.TalentProfile, int64, error) {
	normalizePage(&page, &pageSize)
	return u.talents.List(ctx, page, pageSize)
}
