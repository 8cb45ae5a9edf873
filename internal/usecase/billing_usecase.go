package usecase

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	portalsession "github.com/stripe/stripe-go/v79/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/customer"

	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/logger"
)

type billingUsecase struct {
	profiles       domain.ProfileRepository
	frontendURL    string
	defaultPriceID string
}

func NewBillingUsecase(profiles domain.ProfileRepository, frontendURL, defaultPriceID string) domain.BillingUsecase {
	return &billingUsecase{profiles: profiles, frontendURL: frontendURL, defaultPriceID: defaultPriceID}
}

func (u *billingUsecase) EnsureCustomer(ctx context.Context, userID string) (string, error) {
	profile, err := u.profiles.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile.StripeCustomerID != "" {
		return profile.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(profile.Email),
		Name:  stripe.String(profile.DisplayName),
	}
	params.AddMetadata("user_id", profile.ID)

	cust, err := customer.New(params)
	if err != nil {
		logger.Log.Error("stripe customer create failed", "user_id", userID, "error", err)
		return "", apperror.Internal(err)
	}

	if err := u.profiles.UpdateStripeCustomer(ctx, userID, cust.ID); err != nil {
		return "", err
	}
	return cust.ID, nil
}

func (u *billingUsecase) CreateCheckoutSession(ctx context.Context, userID, priceID string) (string, error) {
	if priceID == "" {
		priceID = u.defaultPriceID
	}
	if priceID == "" {
		return "", apperror.BadRequest("No price configured")
	}

	customerID, err := u.EnsureCustomer(ctx, userID)
	if err != nil {
		return "", err
	}

	sess, err := checkoutsession.New(&stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(u.frontendURL + "/billing?status=success"),
		CancelURL:  stripe.String(u.frontendURL + "/billing?status=cancelled"),
	})
	if err != nil {
		logger.Log.Error("stripe checkout session failed", "user_id", userID, "error", err)
		return "", apperror.Internal(err)
	}
	return sess.URL, nil
}

func (u *billingUsecase) CreatePortalSession(ctx context.Context, userID string) (string, error) {
	profile, err := u.profiles.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile.StripeCustomerID == "" {
		return "", apperror.BadRequest("No billing account yet")
	}

	sess, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(profile.StripeCustomerID),
		ReturnURL: stripe.String(u.frontendURL + "/billing"),
	})
	if err != nil {
		logger.Log.Error("stripe portal session failed", "user_id", userID, "error", err)
		return "", apperror.Internal(err)
	}
	return sess.URL, nil
}
