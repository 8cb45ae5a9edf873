package usecase

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/validation"
)

type portfolioUsecase struct {
	items    domain.PortfolioRepository
	validate *validator.Validate
}

func NewPortfolioUsecase(items domain.PortfolioRepository, validate *validator.Validate) domain.PortfolioUsecase {
	return &portfolioUsecase{items: items, validate: validate}
}

const maxPortfolioItems = 30

func (u *portfolioUsecase) Add(ctx context.Context, talentID string, req *domain.PortfolioItemRequest) (*domain.PortfolioItem, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	existing, err := u.items.ListByTalent(ctx, talentID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= maxPortfolioItems {
		return nil, apperror.BadRequest("Portfolio is full")
	}

	item := &domain.PortfolioItem{
		TalentID: talentID,
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
		Position: req.Position,
	}
	if err := u.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (u *portfolioUsecase) List(ctx context.Context, talentID string) ([]domain.PortfolioItem, error) {
	return u.items.ListByTalent(ctx, talentID)
}

func (u *portfolioUsecase) Remove(ctx context.Context, talentID string, itemID int64) error {
	item, err := u.items.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.TalentID != talentID {
		return apperror.Forbidden("Portfolio item belongs to another talent")
	}
	return u.items.Delete(ctx, itemID)
}
