package usecase_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-totl-backend/internal/domain"
	"go-totl-backend/internal/usecase"
	"go-totl-backend/pkg/logger"
	"go-totl-backend/pkg/validation"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) UpdateDisplayName(ctx context.Context, id, displayName string) error {
	return m.Called(ctx, id, displayName).Error(0)
}
func (m *MockProfileRepo) UpdateAccountType(ctx context.Context, id string, accountType domain.AccountType) error {
	return m.Called(ctx, id, accountType).Error(0)
}
func (m *MockProfileRepo) UpdateSuspended(ctx context.Context, id string, suspended bool) error {
	return m.Called(ctx, id, suspended).Error(0)
}
func (m *MockProfileRepo) UpdateStripeCustomer(ctx context.Context, id, customerID string) error {
	return m.Called(ctx, id, customerID).Error(0)
}
func (m *MockProfileRepo) UpdateSubscription(ctx context.Context, customerID string, sub domain.SubscriptionUpdate) error {
	return m.Called(ctx, customerID, sub).Error(0)
}

type MockTalentRepo struct {
	mock.Mock
}

func (m *MockTalentRepo) GetByUserID(ctx context.Context, userID string) (*domain.TalentProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TalentProfile), args.Error(1)
}
func (m *MockTalentRepo) Upsert(ctx context.Context, profile *domain.TalentProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockTalentRepo) List(ctx context.Context, page, pageSize int) ([]domain.TalentProfile, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.TalentProfile), args.Get(1).(int64), args.Error(2)
}

type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) GetByUserID(ctx context.Context, userID string) (*domain.ClientProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientProfile), args.Error(1)
}
func (m *MockClientRepo) Upsert(ctx context.Context, profile *domain.ClientProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type MockWebhookEventRepo struct {
	mock.Mock
}

func (m *MockWebhookEventRepo) Insert(ctx context.Context, event *domain.WebhookEvent) error {
	return m.Called(ctx, event).Error(0)
}
func (m *MockWebhookEventRepo) MarkStatus(ctx context.Context, eventID string, status domain.WebhookEventStatus, lastError string) error {
	return m.Called(ctx, eventID, status, lastError).Error(0)
}
func (m *MockWebhookEventRepo) LatestProcessedCreated(ctx context.Context, customerID string) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

// Boot state and profile repair

func TestEnsureProfile(t *testing.T) {
	claims := &domain.AuthClaims{
		UserID:    "user1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      domain.RoleTalent,
	}

	t.Run("Healthy account performs no writes", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		talents := new(MockTalentRepo)
		clients := new(MockClientRepo)
		uc := usecase.NewBootStateUsecase(profiles, talents, clients)

		existing := &domain.Profile{ID: "user1", Role: domain.RoleTalent, AccountType: domain.AccountTalent, DisplayName: "Jane Doe"}
		profiles.On("GetByID", mock.Anything, "user1").Return(existing, nil)
		talents.On("GetByUserID", mock.Anything, "user1").Return(&domain.TalentProfile{UserID: "user1"}, nil)

		got, err := uc.EnsureProfile(context.Background(), claims)
		assert.NoError(t, err)
		assert.Equal(t, existing, got)
		profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		profiles.AssertNotCalled(t, "UpdateDisplayName", mock.Anything, mock.Anything, mock.Anything)
		talents.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Blank display name is backfilled from claims", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		talents := new(MockTalentRepo)
		clients := new(MockClientRepo)
		uc := usecase.NewBootStateUsecase(profiles, talents, clients)

		existing := &domain.Profile{ID: "user1", Role: domain.RoleTalent, AccountType: domain.AccountTalent, DisplayName: "   "}
		profiles.On("GetByID", mock.Anything, "user1").Return(existing, nil)
		profiles.On("UpdateDisplayName", mock.Anything, "user1", "Jane Doe").Return(nil)
		talents.On("GetByUserID", mock.Anything, "user1").Return(&domain.TalentProfile{UserID: "user1"}, nil)

		got, err := uc.EnsureProfile(context.Background(), claims)
		assert.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.DisplayName)
		profiles.AssertExpectations(t)
	})

	t.Run("Backfill falls back to the email local part", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		talents := new(MockTalentRepo)
		clients := new(MockClientRepo)
		uc := usecase.NewBootStateUsecase(profiles, talents, clients)

		anon := &domain.AuthClaims{UserID: "user1", Email: "jane@example.com", Role: domain.RoleTalent}
		profiles.On("GetByID", mock.Anything, "user1").Return(&domain.Profile{
			ID: "user1", Role: domain.RoleTalent, AccountType: domain.AccountTalent,
		}, nil)
		profiles.On("UpdateDisplayName", mock.Anything, "user1", "jane").Return(nil)
		talents.On("GetByUserID", mock.Anything, "user1").Return(&domain.TalentProfile{UserID: "user1"}, nil)

		got, err := uc.EnsureProfile(context.Background(), anon)
		assert.NoError(t, err)
		assert.Equal(t, "jane", got.DisplayName)
		profiles.AssertExpectations(t)
	})

	t.Run("Missing row is repaired from claims", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		talents := new(MockTalentRepo)
		clients := new(MockClientRepo)
		uc := usecase.NewBootStateUsecase(profiles, talents, clients)

		profiles.On("GetByID", mock.Anything, "user1").Return(nil, domain.ErrNotFound)
		profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.ID == "user1" &&
				p.Role == domain.RoleTalent &&
				p.AccountType == domain.AccountTalent &&
				p.DisplayName == "Jane Doe"
		})).Return(nil)
		talents.On("GetByUserID", mock.Anything, "user1").Return(nil, domain.ErrNotFound)
		talents.On("Upsert", mock.Anything, mock.MatchedBy(func(tp *domain.TalentProfile) bool {
			return tp.UserID == "user1" && tp.FirstName == "Jane" && tp.LastName == "Doe"
		})).Return(nil)

		got, err := uc.EnsureProfile(context.Background(), claims)
		assert.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.DisplayName)
		profiles.AssertExpectations(t)
		talents.AssertExpectations(t)
	})

	t.Run("Display name falls back to the email local part", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		talents := new(MockTalentRepo)
		clients := new(MockClientRepo)
		uc := usecase.NewBootStateUsecase(profiles, talents, clients)

		anon := &domain.AuthClaims{UserID: "user2", Email: "someone@example.com"}
		profiles.On("GetByID", mock.Anything, "user2").Return(nil, domain.ErrNotFound)
		profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.DisplayName == "someone" && p.Role == domain.RoleTalent
		})).Return(nil)
		talents.On("GetByUserID", mock.Anything, "user2").Return(nil, domain.ErrNotFound)
		talents.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		_, err := uc.EnsureProfile(context.Background(), anon)
		assert.NoError(t, err)
		profiles.AssertExpectations(t)
	})

	t.Run("Concurrent repair re-fetches on duplicate", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		talents := new(MockTalentRepo)
		clients := new(MockClientRepo)
		uc := usecase.NewBootStateUsecase(profiles, talents, clients)

		winner := &domain.Profile{ID: "user1", Role: domain.RoleTalent}
		profiles.On("GetByID", mock.Anything, "user1").Return(nil, domain.ErrNotFound).Once()
		profiles.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)
		profiles.On("GetByID", mock.Anything, "user1").Return(winner, nil).Once()

		got, err := uc.EnsureProfile(context.Background(), claims)
		assert.NoError(t, err)
		assert.Equal(t, winner, got)
	})

	t.Run("Nil claims are rejected", func(t *testing.T) {
		uc := usecase.NewBootStateUsecase(new(MockProfileRepo), new(MockTalentRepo), new(MockClientRepo))
		_, err := uc.EnsureProfile(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestGetBootState(t *testing.T) {
	claims := &domain.AuthClaims{UserID: "user1", Email: "jane@example.com", Role: domain.RoleTalent}

	t.Run("Nil claims yield nil state without error", func(t *testing.T) {
		uc := usecase.NewBootStateUsecase(new(MockProfileRepo), new(MockTalentRepo), new(MockClientRepo))
		state, err := uc.GetBootState(context.Background(), nil)
		assert.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("Talent with incomplete onboarding routes to onboarding", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		talents := new(MockTalentRepo)
		uc := usecase.NewBootStateUsecase(profiles, talents, new(MockClientRepo))

		profiles.On("GetByID", mock.Anything, "user1").Return(&domain.Profile{
			ID: "user1", Role: domain.RoleTalent, AccountType: domain.AccountTalent, DisplayName: "Jane Doe",
		}, nil)
		talents.On("GetByUserID", mock.Anything, "user1").Return(&domain.TalentProfile{
			UserID: "user1", FirstName: "Jane", LastName: "",
		}, nil)

		state, err := uc.GetBootState(context.Background(), claims)
		assert.NoError(t, err)
		assert.True(t, state.HasProfilesRow)
		assert.True(t, state.HasDomainProfileRow)
		assert.True(t, state.NeedsOnboarding)
		assert.Equal(t, domain.PathOnboarding, state.NextPath)
	})

	t.Run("Completed talent routes to the talent dashboard", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		talents := new(MockTalentRepo)
		uc := usecase.NewBootStateUsecase(profiles, talents, new(MockClientRepo))

		profiles.On("GetByID", mock.Anything, "user1").Return(&domain.Profile{
			ID: "user1", Role: domain.RoleTalent, AccountType: domain.AccountTalent, DisplayName: "Jane Doe",
		}, nil)
		talents.On("GetByUserID", mock.Anything, "user1").Return(&domain.TalentProfile{
			UserID: "user1", FirstName: "Jane", LastName: "Doe",
		}, nil)

		state, err := uc.GetBootState(context.Background(), claims)
		assert.NoError(t, err)
		assert.False(t, state.NeedsOnboarding)
		assert.Equal(t, domain.PathTalentDashboard, state.NextPath)
	})

	t.Run("Client without a company name routes to profile setup", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		clients := new(MockClientRepo)
		uc := usecase.NewBootStateUsecase(profiles, new(MockTalentRepo), clients)

		profiles.On("GetByID", mock.Anything, "user1").Return(&domain.Profile{
			ID: "user1", Role: domain.RoleClient, AccountType: domain.AccountClient,
		}, nil)
		clients.On("GetByUserID", mock.Anything, "user1").Return(&domain.ClientProfile{UserID: "user1", CompanyName: "  "}, nil)

		state, err := uc.GetBootState(context.Background(), &domain.AuthClaims{UserID: "user1", Role: domain.RoleClient})
		assert.NoError(t, err)
		assert.True(t, state.NeedsOnboarding)
		assert.Equal(t, domain.PathClientProfileSetup, state.NextPath)
	})

	t.Run("Suspension wins over onboarding", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		talents := new(MockTalentRepo)
		uc := usecase.NewBootStateUsecase(profiles, talents, new(MockClientRepo))

		profiles.On("GetByID", mock.Anything, "user1").Return(&domain.Profile{
			ID: "user1", Role: domain.RoleTalent, AccountType: domain.AccountTalent, DisplayName: "Jane Doe", IsSuspended: true,
		}, nil)
		talents.On("GetByUserID", mock.Anything, "user1").Return(nil, domain.ErrNotFound)
		talents.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		state, err := uc.GetBootState(context.Background(), claims)
		assert.NoError(t, err)
		assert.Equal(t, domain.PathSuspended, state.NextPath)
	})

	t.Run("Admins never need onboarding", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		uc := usecase.NewBootStateUsecase(profiles, new(MockTalentRepo), new(MockClientRepo))

		profiles.On("GetByID", mock.Anything, "admin1").Return(&domain.Profile{ID: "admin1", Role: domain.RoleAdmin}, nil)

		state, err := uc.GetBootState(context.Background(), &domain.AuthClaims{UserID: "admin1", Role: domain.RoleAdmin})
		assert.NoError(t, err)
		assert.False(t, state.NeedsOnboarding)
		assert.Equal(t, domain.PathAdminDashboard, state.NextPath)
	})

	t.Run("Repair failure degrades to onboarding instead of erroring", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		uc := usecase.NewBootStateUsecase(profiles, new(MockTalentRepo), new(MockClientRepo))

		profiles.On("GetByID", mock.Anything, "user1").Return(nil, domain.ErrNotFound)
		profiles.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		state, err := uc.GetBootState(context.Background(), claims)
		assert.NoError(t, err)
		assert.False(t, state.HasProfilesRow)
		assert.True(t, state.NeedsOnboarding)
		assert.Equal(t, domain.PathOnboarding, state.NextPath)
	})
}

func TestResolvePostAuth(t *testing.T) {
	t.Run("No claims redirect to login", func(t *testing.T) {
		uc := usecase.NewBootStateUsecase(new(MockProfileRepo), new(MockTalentRepo), new(MockClientRepo))
		state, decision, err := uc.ResolvePostAuth(context.Background(), nil, domain.PathLogin, "", false)
		assert.NoError(t, err)
		assert.Nil(t, state)
		assert.True(t, decision.Redirect)
		assert.Equal(t, domain.PathLogin, decision.Target)
	})

	t.Run("Completed user honors a safe return URL", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		talents := new(MockTalentRepo)
		uc := usecase.NewBootStateUsecase(profiles, talents, new(MockClientRepo))

		profiles.On("GetByID", mock.Anything, "user1").Return(&domain.Profile{
			ID: "user1", Role: domain.RoleTalent, AccountType: domain.AccountTalent, DisplayName: "Jane Doe",
		}, nil)
		talents.On("GetByUserID", mock.Anything, "user1").Return(&domain.TalentProfile{
			UserID: "user1", FirstName: "Jane", LastName: "Doe",
		}, nil)

		claims := &domain.AuthClaims{UserID: "user1", Role: domain.RoleTalent}
		state, decision, err := uc.ResolvePostAuth(context.Background(), claims, domain.PathLogin, "/gigs/3", false)
		assert.NoError(t, err)
		assert.True(t, decision.Redirect)
		assert.Equal(t, "/gigs/3", decision.Target)
		assert.Equal(t, "/gigs/3", state.NextPath)
	})

	t.Run("Pending onboarding overrides the return URL", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		talents := new(MockTalentRepo)
		uc := usecase.NewBootStateUsecase(profiles, talents, new(MockClientRepo))

		profiles.On("GetByID", mock.Anything, "user1").Return(&domain.Profile{
			ID: "user1", Role: domain.RoleTalent, AccountType: domain.AccountTalent,
		}, nil)
		talents.On("GetByUserID", mock.Anything, "user1").Return(nil, domain.ErrNotFound)
		talents.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		claims := &domain.AuthClaims{UserID: "user1", Role: domain.RoleTalent}
		_, decision, err := uc.ResolvePostAuth(context.Background(), claims, domain.PathLogin, "/gigs/3", false)
		assert.NoError(t, err)
		assert.True(t, decision.Redirect)
		assert.Equal(t, domain.PathOnboarding, decision.Target)

		// Already on the onboarding page: no redirect loop.
		_, decision, err = uc.ResolvePostAuth(context.Background(), claims, domain.PathOnboarding, "", false)
		assert.NoError(t, err)
		assert.False(t, decision.Redirect)
	})
}

// Onboarding

func TestFinishOnboarding(t *testing.T) {
	selfCtx := context.WithValue(context.Background(), domain.KeyUserID, "user1")

	newOnboarding := func(profiles *MockProfileRepo, talents *MockTalentRepo, clients *MockClientRepo) domain.OnboardingUsecase {
		boot := usecase.NewBootStateUsecase(profiles, talents, clients)
		return usecase.NewOnboardingUsecase(profiles, talents, clients, boot, newValidator())
	}

	t.Run("Full name splits into first and remaining tokens", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		talents := new(MockTalentRepo)
		uc := newOnboarding(profiles, talents, new(MockClientRepo))

		profile := &domain.Profile{ID: "user1", Email: "jane@example.com", Role: domain.RoleTalent, AccountType: domain.AccountTalent, DisplayName: "Jane van der Berg"}
		profiles.On("GetByID", mock.Anything, "user1").Return(profile, nil)
		talents.On("Upsert", mock.Anything, mock.MatchedBy(func(tp *domain.TalentProfile) bool {
			return tp.FirstName == "Jane" && tp.LastName == "van der Berg"
		})).Return(nil)
		profiles.On("UpdateDisplayName", mock.Anything, "user1", "Jane van der Berg").Return(nil)
		talents.On("GetByUserID", mock.Anything, "user1").Return(&domain.TalentProfile{
			UserID: "user1", FirstName: "Jane", LastName: "van der Berg",
		}, nil)

		nextPath, err := uc.FinishOnboarding(selfCtx, "user1", &domain.FinishOnboardingRequest{FullName: "Jane van der Berg"})
		assert.NoError(t, err)
		assert.Equal(t, domain.PathTalentDashboard, nextPath)
		talents.AssertExpectations(t)
		profiles.AssertExpectations(t)

		// Role and account type are never rewritten by onboarding.
		profiles.AssertNotCalled(t, "UpdateAccountType", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Single-word names are rejected", func(t *testing.T) {
		uc := newOnboarding(new(MockProfileRepo), new(MockTalentRepo), new(MockClientRepo))
		_, err := uc.FinishOnboarding(selfCtx, "user1", &domain.FinishOnboardingRequest{FullName: "Cher"})
		assert.Error(t, err)
	})

	t.Run("Cannot finish onboarding for another user", func(t *testing.T) {
		uc := newOnboarding(new(MockProfileRepo), new(MockTalentRepo), new(MockClientRepo))
		_, err := uc.FinishOnboarding(selfCtx, "user2", &domain.FinishOnboardingRequest{FullName: "Jane Doe"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "another user")
	})

	t.Run("Missing identity fails closed", func(t *testing.T) {
		uc := newOnboarding(new(MockProfileRepo), new(MockTalentRepo), new(MockClientRepo))
		_, err := uc.FinishOnboarding(context.Background(), "user1", &domain.FinishOnboardingRequest{FullName: "Jane Doe"})
		assert.Error(t, err)
	})
}

func TestCompleteClientProfile(t *testing.T) {
	selfCtx := context.WithValue(context.Background(), domain.KeyUserID, "user1")

	t.Run("Requires client access", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		boot := usecase.NewBootStateUsecase(profiles, new(MockTalentRepo), new(MockClientRepo))
		uc := usecase.NewOnboardingUsecase(profiles, new(MockTalentRepo), new(MockClientRepo), boot, newValidator())

		profiles.On("GetByID", mock.Anything, "user1").Return(&domain.Profile{
			ID: "user1", Role: domain.RoleTalent, AccountType: domain.AccountTalent,
		}, nil)

		_, err := uc.CompleteClientProfile(selfCtx, "user1", &domain.ClientProfileRequest{CompanyName: "Acme Casting"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "client access")
	})

	t.Run("Saves the row and recomputes the next path", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		clients := new(MockClientRepo)
		boot := usecase.NewBootStateUsecase(profiles, new(MockTalentRepo), clients)
		uc := usecase.NewOnboardingUsecase(profiles, new(MockTalentRepo), clients, boot, newValidator())

		profiles.On("GetByID", mock.Anything, "user1").Return(&domain.Profile{
			ID: "user1", Role: domain.RoleClient, AccountType: domain.AccountClient,
		}, nil)
		clients.On("Upsert", mock.Anything, mock.MatchedBy(func(cp *domain.ClientProfile) bool {
			return cp.UserID == "user1" && cp.CompanyName == "Acme Casting"
		})).Return(nil)
		clients.On("GetByUserID", mock.Anything, "user1").Return(&domain.ClientProfile{
			UserID: "user1", CompanyName: "Acme Casting",
		}, nil)

		nextPath, err := uc.CompleteClientProfile(selfCtx, "user1", &domain.ClientProfileRequest{CompanyName: "  Acme Casting  "})
		assert.NoError(t, err)
		assert.Equal(t, domain.PathClientDashboard, nextPath)
		clients.AssertExpectations(t)
	})
}

// Webhook idempotency ledger

func TestHandleSubscriptionEvent(t *testing.T) {
	event := &domain.SubscriptionEvent{
		ID:               "evt_1",
		Type:             "customer.subscription.updated",
		Created:          1700000000,
		CustomerID:       "cus_1",
		SubscriptionID:   "sub_1",
		Status:           "active",
		PriceID:          "price_1",
		CurrentPeriodEnd: 1702592000,
	}

	t.Run("First delivery processes and marks the ledger", func(t *testing.T) {
		events := new(MockWebhookEventRepo)
		profiles := new(MockProfileRepo)
		uc := usecase.NewWebhookUsecase(events, profiles)

		events.On("Insert", mock.Anything, mock.MatchedBy(func(e *domain.WebhookEvent) bool {
			return e.EventID == "evt_1" && e.Status == domain.WebhookReceived
		})).Return(nil)
		events.On("LatestProcessedCreated", mock.Anything, "cus_1").Return(int64(0), nil)
		profiles.On("UpdateSubscription", mock.Anything, "cus_1", mock.MatchedBy(func(sub domain.SubscriptionUpdate) bool {
			return sub.Status == "active" && sub.PriceID == "price_1" && sub.CurrentPeriodEnd != nil
		})).Return(nil)
		events.On("MarkStatus", mock.Anything, "evt_1", domain.WebhookProcessed, "").Return(nil)

		err := uc.HandleSubscriptionEvent(context.Background(), event)
		assert.NoError(t, err)
		events.AssertExpectations(t)
		profiles.AssertExpectations(t)
	})

	t.Run("Duplicate delivery acknowledges with no side effects", func(t *testing.T) {
		events := new(MockWebhookEventRepo)
		profiles := new(MockProfileRepo)
		uc := usecase.NewWebhookUsecase(events, profiles)

		events.On("Insert", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		err := uc.HandleSubscriptionEvent(context.Background(), event)
		assert.NoError(t, err)
		profiles.AssertNotCalled(t, "UpdateSubscription", mock.Anything, mock.Anything, mock.Anything)
		events.AssertNotCalled(t, "MarkStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing customer reference is marked ignored, not retried", func(t *testing.T) {
		events := new(MockWebhookEventRepo)
		profiles := new(MockProfileRepo)
		uc := usecase.NewWebhookUsecase(events, profiles)

		orphan := *event
		orphan.ID = "evt_3"
		orphan.CustomerID = ""

		events.On("Insert", mock.Anything, mock.Anything).Return(nil)
		events.On("MarkStatus", mock.Anything, "evt_3", domain.WebhookIgnored, "missing customer reference").Return(nil)

		err := uc.HandleSubscriptionEvent(context.Background(), &orphan)
		assert.NoError(t, err)
		profiles.AssertNotCalled(t, "UpdateSubscription", mock.Anything, mock.Anything, mock.Anything)
		events.AssertNotCalled(t, "LatestProcessedCreated", mock.Anything, mock.Anything)
		events.AssertExpectations(t)
	})

	t.Run("Out-of-order delivery is marked ignored", func(t *testing.T) {
		events := new(MockWebhookEventRepo)
		profiles := new(MockProfileRepo)
		uc := usecase.NewWebhookUsecase(events, profiles)

		events.On("Insert", mock.Anything, mock.Anything).Return(nil)
		events.On("LatestProcessedCreated", mock.Anything, "cus_1").Return(event.Created+100, nil)
		events.On("MarkStatus", mock.Anything, "evt_1", domain.WebhookIgnored, "").Return(nil)

		err := uc.HandleSubscriptionEvent(context.Background(), event)
		assert.NoError(t, err)
		profiles.AssertNotCalled(t, "UpdateSubscription", mock.Anything, mock.Anything, mock.Anything)
		events.AssertExpectations(t)
	})

	t.Run("Processing failure marks the row failed and surfaces the error", func(t *testing.T) {
		events := new(MockWebhookEventRepo)
		profiles := new(MockProfileRepo)
		uc := usecase.NewWebhookUsecase(events, profiles)

		events.On("Insert", mock.Anything, mock.Anything).Return(nil)
		events.On("LatestProcessedCreated", mock.Anything, "cus_1").Return(int64(0), nil)
		profiles.On("UpdateSubscription", mock.Anything, "cus_1", mock.Anything).Return(errors.New("db down"))
		events.On("MarkStatus", mock.Anything, "evt_1", domain.WebhookFailed, "db down").Return(nil)

		err := uc.HandleSubscriptionEvent(context.Background(), event)
		assert.Error(t, err)
		events.AssertExpectations(t)
	})

	t.Run("Deletion events force status canceled", func(t *testing.T) {
		events := new(MockWebhookEventRepo)
		profiles := new(MockProfileRepo)
		uc := usecase.NewWebhookUsecase(events, profiles)

		deleted := *event
		deleted.ID = "evt_2"
		deleted.Type = "customer.subscription.deleted"

		events.On("Insert", mock.Anything, mock.Anything).Return(nil)
		events.On("LatestProcessedCreated", mock.Anything, "cus_1").Return(int64(0), nil)
		profiles.On("UpdateSubscription", mock.Anything, "cus_1", mock.MatchedBy(func(sub domain.SubscriptionUpdate) bool {
			return sub.Status == "canceled"
		})).Return(nil)
		events.On("MarkStatus", mock.Anything, "evt_2", domain.WebhookProcessed, "").Return(nil)

		err := uc.HandleSubscriptionEvent(context.Background(), &deleted)
		assert.NoError(t, err)
		profiles.AssertExpectations(t)
	})
}
