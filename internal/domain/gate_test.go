package domain_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-totl-backend/internal/domain"
)

func gate(path string, query string, authenticated bool, profile *domain.Profile) domain.RedirectDecision {
	q, _ := url.ParseQuery(query)
	return domain.EvaluateGate(domain.GateInput{
		Path:          path,
		Query:         q,
		Authenticated: authenticated,
		Profile:       profile,
	})
}

func TestGateUnauthenticated(t *testing.T) {
	t.Run("Protected path redirects to login with returnUrl", func(t *testing.T) {
		d := gate("/talent/dashboard", "", false, nil)
		assert.True(t, d.Redirect)
		assert.Equal(t, "/login?returnUrl=%2Ftalent%2Fdashboard", d.Target)
	})

	t.Run("Public paths pass", func(t *testing.T) {
		for _, path := range []string{"/", "/login", "/choose-role", "/suspended", "/gigs", "/gigs/42"} {
			d := gate(path, "", false, nil)
			assert.False(t, d.Redirect, "path=%s", path)
		}
	})
}

func TestGateMissingProfileRow(t *testing.T) {
	t.Run("Bootstrap-safe paths pass so repair can run", func(t *testing.T) {
		for _, path := range []string{"/", "/onboarding", "/talent/dashboard", "/client/dashboard", "/choose-role"} {
			d := gate(path, "", true, nil)
			assert.False(t, d.Redirect, "path=%s", path)
		}
	})

	t.Run("Other paths redirect to login", func(t *testing.T) {
		d := gate("/admin/dashboard", "", true, nil)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathLogin, d.Target)
	})
}

func TestGateSuspension(t *testing.T) {
	suspended := &domain.Profile{Role: domain.RoleTalent, AccountType: domain.AccountTalent, IsSuspended: true}

	t.Run("Suspension preempts every path", func(t *testing.T) {
		for _, path := range []string{"/", "/talent/dashboard", "/onboarding", "/gigs"} {
			d := gate(path, "", true, suspended)
			assert.True(t, d.Redirect, "path=%s", path)
			assert.Equal(t, domain.PathSuspended, d.Target, "path=%s", path)
		}
	})

	t.Run("The notice page itself passes", func(t *testing.T) {
		d := gate(domain.PathSuspended, "", true, suspended)
		assert.False(t, d.Redirect)
	})
}

func TestGateUnassigned(t *testing.T) {
	t.Run("Role known but unassigned self-heals away from onboarding", func(t *testing.T) {
		p := &domain.Profile{Role: domain.RoleClient, AccountType: domain.AccountUnassigned}
		d := gate(domain.PathOnboarding, "", true, p)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathClientDashboard, d.Target)
	})

	t.Run("No role at all defaults to the talent dashboard", func(t *testing.T) {
		p := &domain.Profile{Role: domain.RoleNone, AccountType: domain.AccountUnassigned}
		d := gate("/billing", "", true, p)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathTalentDashboard, d.Target)
	})

	t.Run("Unassigned may still reach onboarding and public paths", func(t *testing.T) {
		p := &domain.Profile{Role: domain.RoleNone, AccountType: domain.AccountUnassigned}
		for _, path := range []string{domain.PathOnboarding, domain.PathChooseRole, "/gigs", domain.PathTalentDashboard} {
			d := gate(path, "", true, p)
			assert.False(t, d.Redirect, "path=%s", path)
		}
	})
}

func TestGateTerminalAccess(t *testing.T) {
	talent := &domain.Profile{Role: domain.RoleTalent, AccountType: domain.AccountTalent}
	client := &domain.Profile{Role: domain.RoleClient, AccountType: domain.AccountClient}
	promoted := &domain.Profile{Role: domain.RoleTalent, AccountType: domain.AccountClient}

	t.Run("Talent cannot enter the client terminal", func(t *testing.T) {
		d := gate("/client/dashboard", "", true, talent)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathTalentDashboard, d.Target)
	})

	t.Run("Client cannot enter the talent terminal", func(t *testing.T) {
		d := gate("/talent/dashboard", "", true, client)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathClientDashboard, d.Target)
	})

	t.Run("Promoted talent keeps client access", func(t *testing.T) {
		d := gate("/client/gigs", "", true, promoted)
		assert.False(t, d.Redirect)
	})

	t.Run("Non-admin on admin path is sent home", func(t *testing.T) {
		d := gate("/admin/users", "", true, talent)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathTalentDashboard, d.Target)
	})

	t.Run("Cross-terminal redirects target the caller's own destination", func(t *testing.T) {
		d := gate("/talent/profile", "", true, client)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathClientDashboard, d.Target)

		d = gate("/client/dashboard", "", true, talent)
		assert.Equal(t, domain.PathTalentDashboard, d.Target)
	})
}

func TestGateAdmin(t *testing.T) {
	admin := &domain.Profile{Role: domain.RoleAdmin}

	t.Run("Admin paths pass", func(t *testing.T) {
		d := gate("/admin/users", "", true, admin)
		assert.False(t, d.Redirect)
	})

	t.Run("Admins are kept off user terminals", func(t *testing.T) {
		for _, path := range []string{"/talent/dashboard", "/client/dashboard", "/client/gigs"} {
			d := gate(path, "", true, admin)
			assert.True(t, d.Redirect, "path=%s", path)
			assert.Equal(t, domain.PathAdminDashboard, d.Target, "path=%s", path)
		}
	})

	t.Run("Client profile carve-out requires a valid userId", func(t *testing.T) {
		d := gate(domain.PathClientProfile, "userId=4be0643f-1d98-573b-97cd-ca98a65347dd", true, admin)
		assert.False(t, d.Redirect)

		d = gate(domain.PathClientProfile, "userId=not-a-uuid", true, admin)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathAdminDashboard, d.Target)

		d = gate(domain.PathClientProfile, "", true, admin)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathAdminDashboard, d.Target)
	})

	t.Run("Login while signed in goes to the admin dashboard, ignoring returnUrl", func(t *testing.T) {
		d := gate(domain.PathLogin, "returnUrl=%2Ftalent%2Fdashboard", true, admin)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathAdminDashboard, d.Target)
	})
}

func TestGateAuthPagesWhileSignedIn(t *testing.T) {
	talent := &domain.Profile{Role: domain.RoleTalent, AccountType: domain.AccountTalent}

	t.Run("Login honors a safe returnUrl", func(t *testing.T) {
		d := gate(domain.PathLogin, "returnUrl=%2Fgigs%2F9", true, talent)
		assert.True(t, d.Redirect)
		assert.Equal(t, "/gigs/9", d.Target)
	})

	t.Run("Login rejects an escaping returnUrl", func(t *testing.T) {
		d := gate(domain.PathLogin, "returnUrl=%2F%2Fevil.com", true, talent)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathTalentDashboard, d.Target)
	})

	t.Run("signedOut flag keeps the user on login", func(t *testing.T) {
		d := gate(domain.PathLogin, "signedOut=1", true, talent)
		assert.False(t, d.Redirect)
	})

	t.Run("Home routes assigned users to their terminal", func(t *testing.T) {
		d := gate(domain.PathHome, "", true, talent)
		assert.True(t, d.Redirect)
		assert.Equal(t, domain.PathTalentDashboard, d.Target)
	})
}
