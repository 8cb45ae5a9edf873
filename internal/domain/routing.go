package domain

// Canonical app paths. The middleware gate and the boot-state aggregator both
// route against these; keeping them in one place is what lets the two call
// sites share the same decision functions.
const (
	PathHome               = "/"
	PathLogin              = "/login"
	PathChooseRole         = "/choose-role"
	PathOnboarding         = "/onboarding"
	PathSuspended          = "/suspended"
	PathAdminDashboard     = "/admin/dashboard"
	PathClientDashboard    = "/client/dashboard"
	PathTalentDashboard    = "/talent/dashboard"
	PathClientProfile      = "/client/profile"
	PathClientProfileSetup = "/client/profile/setup"
)

// DetermineDestination maps (role, account type) to the user's canonical
// landing path. Total over the enum space; role takes precedence when the two
// disagree. Users with neither role nor account type land on the talent
// dashboard (MVP default).
func DetermineDestination(role Role, accountType AccountType) string {
	switch {
	case role == RoleAdmin:
		return PathAdminDashboard
	case role == RoleClient:
		return PathClientDashboard
	case accountType == AccountClient:
		return PathClientDashboard
	case role == RoleTalent:
		return PathTalentDashboard
	case accountType == AccountTalent:
		return PathTalentDashboard
	default:
		return PathTalentDashboard
	}
}

// SafeReturnURL reports whether a caller-supplied return URL may be used as a
// redirect target. Only root-relative paths qualify; protocol-relative (//)
// and absolute URLs are rejected so the parameter cannot be used as an open
// redirect.
func SafeReturnURL(raw string) bool {
	return len(raw) >= 2 && raw[0] == '/' && raw[1] != '/'
}

// RedirectDecision is a navigation outcome returned as a value. Faults are
// errors; a redirect is not a fault.
type RedirectDecision struct {
	Redirect bool   `json:"redirect"`
	Target   string `json:"target,omitempty"`
}

func NoRedirect() RedirectDecision {
	return RedirectDecision{}
}

func RedirectTo(target string) RedirectDecision {
	return RedirectDecision{Redirect: true, Target: target}
}

// DecidePostAuthRedirect decides where to send a user who just landed on an
// auth-adjacent page. returnURLRaw may be attacker-controlled; unsafe values
// are silently treated as absent. Admins always go to their own terminal.
// A target equal to the current path yields no redirect (loop guard).
func DecidePostAuthRedirect(path, returnURLRaw string, signedOut bool, profile *Profile, fallback string) RedirectDecision {
	if signedOut && (path == PathLogin || path == PathChooseRole) {
		return NoRedirect()
	}

	destination := fallback
	if profile != nil {
		destination = DetermineDestination(profile.Role, profile.AccountType)
	}
	if destination == "" {
		destination = PathTalentDashboard
	}

	target := destination
	if SafeReturnURL(returnURLRaw) && !profile.IsAdmin() {
		target = returnURLRaw
	}

	if target == path {
		return NoRedirect()
	}
	return RedirectTo(target)
}
