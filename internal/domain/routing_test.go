package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-totl-backend/internal/domain"
)

func TestDetermineDestination(t *testing.T) {
	t.Run("Role takes precedence over account type", func(t *testing.T) {
		assert.Equal(t, domain.PathAdminDashboard, domain.DetermineDestination(domain.RoleAdmin, domain.AccountTalent))
		assert.Equal(t, domain.PathClientDashboard, domain.DetermineDestination(domain.RoleClient, domain.AccountTalent))
	})

	t.Run("Account type client routes to client dashboard", func(t *testing.T) {
		assert.Equal(t, domain.PathClientDashboard, domain.DetermineDestination(domain.RoleTalent, domain.AccountClient))
		assert.Equal(t, domain.PathClientDashboard, domain.DetermineDestination(domain.RoleNone, domain.AccountClient))
	})

	t.Run("Total over the enum space, talent dashboard is the default", func(t *testing.T) {
		roles := []domain.Role{domain.RoleAdmin, domain.RoleClient, domain.RoleTalent, domain.RoleNone}
		accountTypes := []domain.AccountType{domain.AccountClient, domain.AccountTalent, domain.AccountUnassigned, domain.AccountNone}
		for _, r := range roles {
			for _, at := range accountTypes {
				dest := domain.DetermineDestination(r, at)
				assert.NotEmpty(t, dest, "role=%s accountType=%s", r, at)
			}
		}
		assert.Equal(t, domain.PathTalentDashboard, domain.DetermineDestination(domain.RoleNone, domain.AccountNone))
		assert.Equal(t, domain.PathTalentDashboard, domain.DetermineDestination(domain.RoleNone, domain.AccountUnassigned))
	})
}

func TestSafeReturnURL(t *testing.T) {
	cases := []struct {
		raw  string
		safe bool
	}{
		{"/talent/dashboard", true},
		{"/gigs/42", true},
		{"/a", true},
		{"/", false},
		{"", false},
		{"//evil.com", false},
		{"https://evil.com", false},
		{"javascript:alert(1)", false},
		{"relative/path", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.safe, domain.SafeReturnURL(tc.raw), "raw=%q", tc.raw)
	}
}

func TestDecidePostAuthRedirect(t *testing.T) {
	talent := &domain.Profile{Role: domain.RoleTalent, AccountType: domain.AccountTalent}
	admin := &domain.Profile{Role: domain.RoleAdmin}

	t.Run("Signed-out user stays on login", func(t *testing.T) {
		d := domain.DecidePostAuthRedirect(domain.PathLogin, "", true, nil, "")
		assert.False(t, d.Redirect)
	})

	t.Run("Safe return URL wins over destination", func(t *testing.T) {
		d := domain.DecidePostAuthRedirect(domain.PathLogin, "/gigs/7", false, talent, "")
		assert.True(t, d.Redirect)
		assert.Equal(t, "/gigs/7", d.Target)
	})

	t.Run("Unsafe return URL is treated as absent", func(t *testing.T) {
		d := domain.DecidePostAuthRedirect(domain.PathLogin, "//evil.com", false, talent, "")
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathTalentDashboard, d.Target)
	})

	t.Run("Admins ignore return URLs", func(t *testing.T) {
		d := domain.DecidePostAuthRedirect(domain.PathLogin, "/talent/dashboard", false, admin, "")
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathAdminDashboard, d.Target)
	})

	t.Run("Target equal to current path yields no redirect", func(t *testing.T) {
		d := domain.DecidePostAuthRedirect(domain.PathTalentDashboard, "", false, talent, "")
		assert.False(t, d.Redirect)
	})

	t.Run("Nil profile falls back to the provided destination", func(t *testing.T) {
		d := domain.DecidePostAuthRedirect(domain.PathLogin, "", false, nil, domain.PathClientDashboard)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathClientDashboard, d.Target)
	})

	t.Run("Empty fallback defaults to talent dashboard", func(t *testing.T) {
		d := domain.DecidePostAuthRedirect(domain.PathLogin, "", false, nil, "")
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathTalentDashboard, d.Target)
	})
}
