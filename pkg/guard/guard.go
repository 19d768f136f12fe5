// Package guard decides whether a protected view may render for the current
// session, and where to send the user when it may not.
package guard

import (
	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
	"github.com/chirag807/pdf-annotation-frontend/pkg/session"
)

// Decision is the outcome of an access check.
type Decision int

const (
	// Wait means the session is still being resolved: render a loading
	// placeholder, do not redirect yet.
	Wait Decision = iota
	// RedirectLogin sends the user to the login entry point.
	RedirectLogin
	// RedirectHome sends an authenticated but under-privileged user to the
	// default authenticated landing page.
	RedirectHome
	// Allow renders the guarded content.
	Allow
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "Wait"
	case RedirectLogin:
		return "RedirectLogin"
	case RedirectHome:
		return "RedirectHome"
	case Allow:
		return "Allow"
	default:
		return "InvalidDecision"
	}
}

// Check gates a view behind session presence and an optional required role.
// requiredRole == "" means any authenticated user may enter.
func Check(state session.State, user *models.User, requiredRole models.Role) Decision {
	if state == session.StateAuthenticating {
		return Wait
	}
	if user == nil || state != session.StateAuthenticated {
		return RedirectLogin
	}
	if requiredRole != "" && user.Role != requiredRole {
		return RedirectHome
	}
	return Allow
}
