package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/mapme/internal/client/api"
	"github.com/dmitrijs2005/mapme/internal/client/flow"
	"github.com/dmitrijs2005/mapme/internal/client/identity"
	"github.com/dmitrijs2005/mapme/internal/client/nav"
	"github.com/dmitrijs2005/mapme/internal/client/pages"
	"github.com/dmitrijs2005/mapme/internal/client/router"
	"github.com/dmitrijs2005/mapme/internal/logging"
)

// Backend is what the pages and flows need from the backend API client.
type Backend interface {
	pages.Searches
	pages.Profiles
}

// Deps are the collaborators an App is built from.
type Deps struct {
	Provider identity.Provider
	Backend  Backend
	Uploader pages.Uploader
	Gate     router.Gate
	Logger   logging.Logger
	In       io.Reader
	Out      io.Writer
	Location *time.Location
}

type App struct {
	provider identity.Provider
	backend  Backend
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	loc      *time.Location

	router     *router.Router
	home       *pages.Home
	onboarding *pages.ProfileForm
	update     *pages.ProfileForm
	signIn     *flow.SignIn
	signUp     *flow.SignUp
}

func NewApp(d Deps) *App {
	a := &App{
		provider: d.Provider,
		backend:  d.Backend,
		logger:   d.Logger,
		reader:   bufio.NewReader(d.In),
		out:      d.Out,
		loc:      d.Location,
	}
	if a.loc == nil {
		a.loc = time.Local
	}

	a.router = router.New(d.Gate, d.Logger)
	profileDeps := pages.ProfileDeps{
		Profiles:  d.Backend,
		Uploader:  d.Uploader,
		Sessions:  d.Provider,
		Navigator: a.router,
		Logger:    d.Logger,
	}
	a.home = pages.NewHome(d.Backend, d.Logger)
	a.onboarding = pages.NewOnboarding(profileDeps)
	a.update = pages.NewUpdate(profileDeps)
	a.signIn = flow.NewSignIn(a.provider, a.backend, a.router, a.logger)
	a.signUp = flow.NewSignUp(a.provider, a.router, a.logger)

	a.router.Handle(nav.Landing, pages.Landing{})
	a.router.Handle(nav.SignIn, enterFunc(func(context.Context) {
		a.signIn = flow.NewSignIn(a.provider, a.backend, a.router, a.logger)
	}))
	a.router.Handle(nav.SignUp, enterFunc(func(context.Context) {
		a.signUp = flow.NewSignUp(a.provider, a.router, a.logger)
	}))
	a.router.Handle(nav.Home, a.home)
	a.router.Handle(nav.Onboarding, a.onboarding)
	a.router.Handle(nav.Update, a.update)
	return a
}

type enterFunc func(ctx context.Context)

func (f enterFunc) Enter(ctx context.Context) { f(ctx) }

// Run opens start and serves commands until EOF or exit.
func (a *App) Run(ctx context.Context, start string) error {
	fmt.Fprintln(a.out, "MapMe CLI (type 'help' for commands)")
	if err := a.Go(ctx, start); err != nil {
		return err
	}
	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) route() string { return a.router.Current() }

func (a *App) authenticated() bool { return a.router.Layout() == router.LayoutAuthenticated }

// status is the prompt suffix: the route and, when signed in, the email.
func (a *App) status() string {
	s := a.route()
	if a.authenticated() {
		if sess, err := a.provider.CurrentSession(context.Background()); err == nil && sess.Email != "" {
			s += " " + sess.Email
		}
	}
	return s
}

// navigate moves to path and renders the page it ends on.
func (a *App) navigate(ctx context.Context, path string) error {
	if err := a.router.Navigate(ctx, path); err != nil {
		a.logger.Error(ctx, "navigation failed", "path", path, "err", err)
		return err
	}
	a.render()
	return nil
}

// onPage makes sure the user is on path, following gate redirects. It
// reports whether they ended up there.
func (a *App) onPage(ctx context.Context, path string) bool {
	if a.route() == path {
		return true
	}
	if err := a.navigate(ctx, path); err != nil {
		return false
	}
	return a.route() == path
}

// report prints err unless it is already visible through page state.
func (a *App) report(err error) {
	var apiErr *api.Error
	switch {
	case err == nil:
	case errors.Is(err, flow.ErrBusy):
		fmt.Fprintln(a.out, "Please wait, still working...")
	case errors.Is(err, flow.ErrIllegalTransition):
		fmt.Fprintln(a.out, "That action is not available here.")
	case errors.As(err, &apiErr):
		fmt.Fprintln(a.out, "Backend error:", apiErr.Message)
	}
}

func (a *App) printBanners(errMsg, success string, fields flow.FieldErrors) {
	for _, name := range []string{"email", "password", "confirm", "code", "newPassword"} {
		if msg, ok := fields[name]; ok {
			fmt.Fprintf(a.out, "  %s: %s\n", name, msg)
		}
	}
	if errMsg != "" {
		fmt.Fprintln(a.out, "Error:", errMsg)
	}
	if success != "" {
		fmt.Fprintln(a.out, success)
	}
}

// render shows the current page.
func (a *App) render() {
	switch a.route() {
	case nav.Landing:
		pages.Landing{}.Render(a.out)
	case nav.SignIn:
		fmt.Fprintln(a.out, "Sign in to MapMe: signin, forgot, or go /signup")
	case nav.SignUp:
		fmt.Fprintln(a.out, "Create account: signup, or go /signin")
	case nav.Home:
		a.printSearches()
	case nav.Onboarding:
		a.printProfileForm(a.onboarding)
	case nav.Update:
		a.printProfileForm(a.update)
	}
}

func (a *App) printSearches() {
	fmt.Fprintln(a.out, "Home")
	if msg := a.home.Error(); msg != "" {
		fmt.Fprintln(a.out, "Error:", msg)
	}
	lines := a.home.Lines(a.loc)
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "  (no searches yet)")
	}
	for _, l := range lines {
		fmt.Fprintln(a.out, " ", l)
	}
}

func (a *App) printProfileForm(f *pages.ProfileForm) {
	fmt.Fprintln(a.out, f.Title())
	name, avatar := f.Values()
	fmt.Fprintf(a.out, "  name:   %s\n  avatar: %s\n", name, avatar)
	if s := f.Status(); s != "" {
		fmt.Fprintln(a.out, s)
	}
}

func (a *App) currentForm() *pages.ProfileForm {
	switch a.route() {
	case nav.Onboarding:
		return a.onboarding
	case nav.Update:
		return a.update
	}
	return nil
}
