package session

import "fmt"

// State is the position of the session lifecycle machine.
//
// The machine moves Unauthenticated -> Authenticating -> Authenticated and
// falls back to Unauthenticated on logout or credential rejection.
// Authenticating only occurs while a stored credential is being resolved at
// startup; login and register move directly between the end states.
type State int

const (
	StateUnknown State = iota
	StateUnauthenticated
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "Unknown"
	case StateUnauthenticated:
		return "Unauthenticated"
	case StateAuthenticating:
		return "Authenticating"
	case StateAuthenticated:
		return "Authenticated"
	default:
		return "InvalidState"
	}
}

func (s State) validateTransitionTo(newState State) error {
	switch s {
	case StateUnauthenticated:
		switch newState {
		case StateAuthenticating, StateAuthenticated, StateUnauthenticated:
			return nil
		}
	case StateAuthenticating:
		switch newState {
		case StateAuthenticated, StateUnauthenticated:
			return nil
		}
	case StateAuthenticated:
		if newState == StateUnauthenticated {
			return nil
		}
	}

	return fmt.Errorf("invalid state transition from %v to %v", s, newState)
}
