// Package gate decides which route tree a visitor may see.
//
// The public tree (landing, sign-in, sign-up) is guarded by Public: signed-in
// users are sent on to /home or /onboarding depending on their profile. The
// authenticated tree is guarded by Authenticated, which only checks that a
// session exists. The router runs a gate each time a layout is mounted.
package gate

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mapme/internal/client/api"
	"github.com/dmitrijs2005/mapme/internal/client/identity"
	"github.com/dmitrijs2005/mapme/internal/client/nav"
	"github.com/dmitrijs2005/mapme/internal/common"
	"github.com/dmitrijs2005/mapme/internal/logging"
)

type State int

const (
	Checking State = iota
	Unauthenticated
	AuthenticatedRedirect
	AuthenticatedResident
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Unauthenticated:
		return "unauthenticated"
	case AuthenticatedRedirect:
		return "redirect"
	case AuthenticatedResident:
		return "resident"
	}
	return "unknown"
}

// Decision is the gate outcome. Target is set for AuthenticatedRedirect.
// Err records a swallowed profile-check failure.
type Decision struct {
	State  State
	Target string
	Err    error
}

type Sessions interface {
	CurrentSession(ctx context.Context) (*identity.Session, error)
}

type Profiles interface {
	GetUser(ctx context.Context) (*api.Profile, error)
}

// Observer is told about every profile-check failure the public gate
// swallows.
type Observer func(ctx context.Context, err error)

type Policy struct {
	// FailOpen sends a signed-in user to /home when the profile check
	// fails. When false the public tree is shown instead.
	FailOpen bool
	Observer Observer
}

type Gate struct {
	sessions Sessions
	profiles Profiles
	policy   Policy
	logger   logging.Logger
}

func New(sessions Sessions, profiles Profiles, policy Policy, logger logging.Logger) *Gate {
	return &Gate{
		sessions: sessions,
		profiles: profiles,
		policy:   policy,
		logger:   logger,
	}
}

// Destination is where a signed-in user with profile p belongs.
func Destination(p *api.Profile) string {
	if p != nil && p.OnboardingComplete {
		return nav.Home
	}
	return nav.Onboarding
}

// Public guards the public tree.
func (g *Gate) Public(ctx context.Context) Decision {
	if !g.signedIn(ctx) {
		return Decision{State: Unauthenticated}
	}

	p, err := g.profiles.GetUser(ctx)
	if err != nil {
		g.logger.Warn(ctx, "profile check failed", "fail_open", g.policy.FailOpen, "err", err)
		if g.policy.Observer != nil {
			g.policy.Observer(ctx, err)
		}
		if !g.policy.FailOpen {
			return Decision{State: Unauthenticated, Err: err}
		}
		return Decision{State: AuthenticatedRedirect, Target: nav.Home, Err: err}
	}

	return Decision{State: AuthenticatedRedirect, Target: Destination(p)}
}

// Authenticated guards the authenticated tree. It makes no profile call.
func (g *Gate) Authenticated(ctx context.Context) Decision {
	if !g.signedIn(ctx) {
		return Decision{State: AuthenticatedRedirect, Target: nav.SignIn}
	}
	return Decision{State: AuthenticatedResident}
}

func (g *Gate) signedIn(ctx context.Context) bool {
	s, err := g.sessions.CurrentSession(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrUnauthenticated) {
			g.logger.Error(ctx, "session lookup failed", "err", err)
		}
		return false
	}
	return s != nil
}
