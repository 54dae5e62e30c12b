package app

// State is a step of the session state machine.
type State int

// Session states.
const (
	StateLoggedOut State = iota
	StateAuthenticating
	StateLoadingProfile
	StateProfileShown
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateAuthenticating:
		return "authenticating"
	case StateLoadingProfile:
		return "loading_profile"
	case StateProfileShown:
		return "profile_shown"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// transitions lists the allowed targets for each state. Every state may also
// move to StateLoggedOut.
var transitions = map[State][]State{
	StateLoggedOut:      {StateAuthenticating, StateLoadingProfile},
	StateAuthenticating: {StateAuthenticating, StateLoadingProfile},
	StateLoadingProfile: {StateAuthenticating, StateLoadingProfile, StateProfileShown, StateError},
	StateProfileShown:   {StateAuthenticating, StateLoadingProfile},
	StateError:          {StateAuthenticating, StateLoadingProfile},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to State) bool {
	if to == StateLoggedOut {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
