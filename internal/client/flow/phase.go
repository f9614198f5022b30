package flow

import (
	"errors"
	"fmt"
	"slices"
)

// ErrIllegalTransition is returned for a phase change the flows do not allow.
var ErrIllegalTransition = errors.New("illegal phase transition")

type Phase int

const (
	PhaseSignUp Phase = iota
	PhaseConfirm
	PhaseSignIn
	PhaseForgot
	PhaseReset
)

func (p Phase) String() string {
	switch p {
	case PhaseSignUp:
		return "signup"
	case PhaseConfirm:
		return "confirm"
	case PhaseSignIn:
		return "signin"
	case PhaseForgot:
		return "forgot"
	case PhaseReset:
		return "reset"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var allowedTransitions = map[Phase][]Phase{
	PhaseSignUp:  {PhaseConfirm},
	PhaseConfirm: {PhaseSignUp},
	PhaseSignIn:  {PhaseForgot},
	PhaseForgot:  {PhaseSignIn, PhaseReset},
	PhaseReset:   {PhaseSignIn},
}

// transition validates from -> to. Confirm and reset act on an account, so
// they cannot be entered without one.
func transition(from, to Phase, email string) (Phase, error) {
	if !slices.Contains(allowedTransitions[from], to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	if (to == PhaseConfirm || to == PhaseReset) && email == "" {
		return from, fmt.Errorf("%w: %s needs an email", ErrIllegalTransition, to)
	}
	return to, nil
}
