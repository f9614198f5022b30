// Package router holds the client's current route and layout. Moving into a
// different layout mounts it, which runs that layout's gate and follows any
// redirect; moving within a layout only switches the page.
package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/mapme/internal/client/gate"
	"github.com/dmitrijs2005/mapme/internal/client/nav"
	"github.com/dmitrijs2005/mapme/internal/logging"
)

// ErrTooManyRedirects is returned when gates keep redirecting.
var ErrTooManyRedirects = errors.New("too many redirects")

const maxRedirects = 4

type Layout int

const (
	LayoutNone Layout = iota
	LayoutPublic
	LayoutAuthenticated
)

func (l Layout) String() string {
	switch l {
	case LayoutPublic:
		return "public"
	case LayoutAuthenticated:
		return "authenticated"
	}
	return "none"
}

var routes = map[string]Layout{
	nav.Landing:    LayoutPublic,
	nav.SignIn:     LayoutPublic,
	nav.SignUp:     LayoutPublic,
	nav.Onboarding: LayoutAuthenticated,
	nav.Home:       LayoutAuthenticated,
	nav.Update:     LayoutAuthenticated,
}

// Resolve maps path to a known route; unknown paths resolve to the landing
// page.
func Resolve(path string) (string, Layout) {
	if l, ok := routes[path]; ok {
		return path, l
	}
	return nav.Landing, LayoutPublic
}

type Gate interface {
	Public(ctx context.Context) gate.Decision
	Authenticated(ctx context.Context) gate.Decision
}

// Page is notified each time its route becomes current.
type Page interface {
	Enter(ctx context.Context)
}

type Router struct {
	gate   Gate
	logger logging.Logger

	mu       sync.Mutex
	path     string
	layout   Layout
	decision gate.Decision
	pages    map[string]Page
}

func New(g Gate, logger logging.Logger) *Router {
	return &Router{
		gate:   g,
		logger: logger,
		pages:  map[string]Page{},
	}
}

// Handle registers p for path.
func (r *Router) Handle(path string, p Page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[path] = p
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

func (r *Router) Layout() Layout {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layout
}

// Decision is the outcome of the last gate run.
func (r *Router) Decision() gate.Decision {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decision
}

// Navigate moves to path, following gate redirects, then enters the page.
func (r *Router) Navigate(ctx context.Context, path string) error {
	r.mu.Lock()
	for hops := 0; ; hops++ {
		if hops > maxRedirects {
			r.mu.Unlock()
			return fmt.Errorf("%w: stopped at %s", ErrTooManyRedirects, path)
		}

		target, layout := Resolve(path)
		if layout == r.layout {
			r.path = target
			break
		}

		r.decision = gate.Decision{State: gate.Checking}
		d := r.runGate(ctx, layout)
		r.decision = d
		r.layout = layout
		r.path = target

		if d.State != gate.AuthenticatedRedirect {
			break
		}
		r.logger.Debug(ctx, "gate redirect", "from", target, "to", d.Target, "layout", layout)
		path = d.Target
	}
	page := r.pages[r.path]
	r.mu.Unlock()

	if page != nil {
		page.Enter(ctx)
	}
	return nil
}

// Remount forgets the mounted layout so the next navigation runs its gate
// again.
func (r *Router) Remount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layout = LayoutNone
}

func (r *Router) runGate(ctx context.Context, l Layout) gate.Decision {
	if l == LayoutAuthenticated {
		return r.gate.Authenticated(ctx)
	}
	return r.gate.Public(ctx)
}
