package domain

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// GateInput is everything the request gate needs to decide a single request.
// Profile is nil when the row is missing or its load failed; load failures
// fail open to the no-profile branch and downstream pages re-check.
type GateInput struct {
	Path          string
	Query         url.Values
	Authenticated bool
	Profile       *Profile
}

func isPublicPath(path string) bool {
	switch path {
	case PathHome, PathLogin, PathChooseRole, PathSuspended:
		return true
	}
	return path == "/gigs" || strings.HasPrefix(path, "/gigs/")
}

func requiresAuth(path string) bool {
	for _, prefix := range []string{"/admin", "/client", "/talent", "/onboarding", "/account", "/billing"} {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Paths an authenticated user with no profiles row may still reach, so the
// page or action behind them can run the lazy repair.
func isBootstrapSafe(path string) bool {
	switch path {
	case PathHome, PathLogin, PathChooseRole, PathOnboarding,
		PathTalentDashboard, PathClientDashboard:
		return true
	}
	return false
}

// Paths open to users whose account type is unassigned and role unknown.
func isUnassignedAllowed(path string) bool {
	return path == PathOnboarding || path == PathChooseRole || isPublicPath(path)
}

func isClientPath(path string) bool {
	return path == "/client" || strings.HasPrefix(path, "/client/")
}

func isTalentPath(path string) bool {
	return path == "/talent" || strings.HasPrefix(path, "/talent/")
}

func isAdminPath(path string) bool {
	return path == "/admin" || strings.HasPrefix(path, "/admin/")
}

// EvaluateGate applies the per-request routing rules and returns either
// "continue" or "redirect to X". It never errors: every input maps to exactly
// one decision.
func EvaluateGate(in GateInput) RedirectDecision {
	// Unauthenticated: protected paths go to login with the original path
	// preserved; everything else passes.
	if !in.Authenticated {
		if requiresAuth(in.Path) {
			return RedirectTo(PathLogin + "?returnUrl=" + url.QueryEscape(in.Path))
		}
		return NoRedirect()
	}

	p := in.Profile

	// Authenticated but no profiles row: only bootstrap-safe paths pass, so
	// the repair logic behind them gets a chance to run.
	if p == nil {
		if isBootstrapSafe(in.Path) {
			return NoRedirect()
		}
		return RedirectTo(PathLogin)
	}

	// Suspension preempts everything except the notice page itself.
	if p.IsSuspended && in.Path != PathSuspended {
		return RedirectTo(PathSuspended)
	}

	destination := DetermineDestination(p.Role, p.AccountType)

	if p.Unassigned() {
		if p.Role != RoleNone {
			// Role known but account type never assigned: self-heal by
			// sending the user to the role's own terminal instead of
			// onboarding.
			if in.Path == PathOnboarding || in.Path == PathChooseRole {
				return RedirectTo(destination)
			}
		} else if !isUnassignedAllowed(in.Path) && in.Path != PathTalentDashboard {
			// No role at all: default terminal is the talent dashboard.
			return RedirectTo(PathTalentDashboard)
		}
	}

	// Auth routes while already signed in delegate to the post-auth decision.
	if in.Path == PathLogin || in.Path == PathChooseRole {
		return DecidePostAuthRedirect(in.Path, in.Query.Get("returnUrl"), in.Query.Get("signedOut") != "", p, destination)
	}

	// The landing page redirects assigned users to their terminal.
	if in.Path == PathHome {
		if p.Role != RoleNone || !p.Unassigned() {
			return DecidePostAuthRedirect(PathHome, in.Query.Get("returnUrl"), false, p, destination)
		}
		return NoRedirect()
	}

	if isAdminPath(in.Path) {
		if p.IsAdmin() {
			return NoRedirect()
		}
		return redirectOrLogin(in.Path, destination)
	}

	// Admins stay on their own terminal, with one carve-out: viewing a
	// specific client profile by explicit userId (read-only impersonation).
	if p.IsAdmin() && (isClientPath(in.Path) || isTalentPath(in.Path)) {
		if in.Path == PathClientProfile {
			if id := in.Query.Get("userId"); id != "" {
				if _, err := uuid.Parse(id); err == nil {
					return NoRedirect()
				}
			}
		}
		return RedirectTo(PathAdminDashboard)
	}

	if isClientPath(in.Path) && !p.HasClientAccess() {
		return redirectOrLogin(in.Path, destination)
	}

	if isTalentPath(in.Path) && !p.HasTalentAccess() {
		return redirectOrLogin(in.Path, destination)
	}

	return NoRedirect()
}

// redirectOrLogin sends the user to their own destination, falling back to
// login when they are already there (breaks redirect loops).
func redirectOrLogin(path, destination string) RedirectDecision {
	if path == destination {
		return RedirectTo(PathLogin)
	}
	return RedirectTo(destination)
}
