package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mapme/internal/client/gate"
	"github.com/dmitrijs2005/mapme/internal/client/nav"
	"github.com/dmitrijs2005/mapme/internal/logging"
)

type scriptedGate struct {
	public, authenticated gate.Decision
	publicRuns, authRuns  int
}

func (g *scriptedGate) Public(context.Context) gate.Decision {
	g.publicRuns++
	return g.public
}

func (g *scriptedGate) Authenticated(context.Context) gate.Decision {
	g.authRuns++
	return g.authenticated
}

type countingPage struct{ entered int }

func (p *countingPage) Enter(context.Context) { p.entered++ }

var (
	anonymous = scriptedGate{
		public:        gate.Decision{State: gate.Unauthenticated},
		authenticated: gate.Decision{State: gate.AuthenticatedRedirect, Target: nav.SignIn},
	}
	resident = gate.Decision{State: gate.AuthenticatedResident}
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in         string
		wantPath   string
		wantLayout Layout
	}{
		{"/", nav.Landing, LayoutPublic},
		{"/signin", nav.SignIn, LayoutPublic},
		{"/signup", nav.SignUp, LayoutPublic},
		{"/home", nav.Home, LayoutAuthenticated},
		{"/onboarding", nav.Onboarding, LayoutAuthenticated},
		{"/update", nav.Update, LayoutAuthenticated},
		{"/nope", nav.Landing, LayoutPublic},
		{"", nav.Landing, LayoutPublic},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, l := Resolve(tt.in)
			assert.Equal(t, tt.wantPath, p)
			assert.Equal(t, tt.wantLayout, l)
		})
	}
}

func TestNavigate_AnonymousToHomeLandsOnSignIn(t *testing.T) {
	g := anonymous
	r := New(&g, logging.Discard())
	home, signin := &countingPage{}, &countingPage{}
	r.Handle(nav.Home, home)
	r.Handle(nav.SignIn, signin)

	require.NoError(t, r.Navigate(context.Background(), nav.Home))

	assert.Equal(t, nav.SignIn, r.Current())
	assert.Equal(t, LayoutPublic, r.Layout())
	assert.Zero(t, home.entered, "home content never shown")
	assert.Equal(t, 1, signin.entered)
}

func TestNavigate_SignedInRootRedirects(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"onboarding incomplete", nav.Onboarding},
		{"onboarding complete", nav.Home},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &scriptedGate{
				public:        gate.Decision{State: gate.AuthenticatedRedirect, Target: tt.target},
				authenticated: resident,
			}
			r := New(g, logging.Discard())

			require.NoError(t, r.Navigate(context.Background(), nav.Landing))
			assert.Equal(t, tt.target, r.Current())
			assert.Equal(t, LayoutAuthenticated, r.Layout())
			assert.Equal(t, gate.AuthenticatedResident, r.Decision().State)
		})
	}
}

func TestNavigate_GateRunsOnlyOnLayoutMount(t *testing.T) {
	g := &scriptedGate{public: gate.Decision{State: gate.Unauthenticated}, authenticated: resident}
	r := New(g, logging.Discard())
	ctx := context.Background()

	require.NoError(t, r.Navigate(ctx, nav.Landing))
	require.NoError(t, r.Navigate(ctx, nav.SignIn))
	require.NoError(t, r.Navigate(ctx, nav.SignUp))
	assert.Equal(t, 1, g.publicRuns)

	require.NoError(t, r.Navigate(ctx, nav.Home))
	require.NoError(t, r.Navigate(ctx, nav.Update))
	require.NoError(t, r.Navigate(ctx, nav.Onboarding))
	assert.Equal(t, 1, g.authRuns)

	require.NoError(t, r.Navigate(ctx, nav.SignIn))
	assert.Equal(t, 2, g.publicRuns)

	r.Remount()
	require.NoError(t, r.Navigate(ctx, nav.SignUp))
	assert.Equal(t, 3, g.publicRuns)
}

func TestNavigate_UnknownPathGoesToLanding(t *testing.T) {
	g := anonymous
	r := New(&g, logging.Discard())

	require.NoError(t, r.Navigate(context.Background(), "/does-not-exist"))
	assert.Equal(t, nav.Landing, r.Current())
}

func TestNavigate_RedirectLoopIsBounded(t *testing.T) {
	g := &scriptedGate{
		public:        gate.Decision{State: gate.AuthenticatedRedirect, Target: nav.Home},
		authenticated: gate.Decision{State: gate.AuthenticatedRedirect, Target: nav.SignIn},
	}
	r := New(g, logging.Discard())

	err := r.Navigate(context.Background(), nav.Landing)
	require.ErrorIs(t, err, ErrTooManyRedirects)
	assert.LessOrEqual(t, g.publicRuns+g.authRuns, maxRedirects+1)
}

func TestLayout_String(t *testing.T) {
	assert.Equal(t, "public", LayoutPublic.String())
	assert.Equal(t, "authenticated", LayoutAuthenticated.String())
	assert.Equal(t, "none", LayoutNone.String())
}
