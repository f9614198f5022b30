package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mapme/internal/client/flow"
	"github.com/dmitrijs2005/mapme/internal/client/nav"
	"github.com/dmitrijs2005/mapme/internal/client/pages"
)

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) askPassword(prompt string) (string, error) {
	return GetPassword(a.reader, prompt, a.out)
}

// followed renders the page when fn moved the user elsewhere.
func (a *App) followed(fn func() error) error {
	before := a.route()
	err := fn()
	if a.route() != before {
		a.render()
	}
	return err
}

func (a *App) Go(ctx context.Context, path string) error {
	return a.navigate(ctx, path)
}

// Reload mounts the current layout again, re-running its gate.
func (a *App) Reload(ctx context.Context) error {
	a.router.Remount()
	return a.navigate(ctx, a.route())
}

func (a *App) SignIn(ctx context.Context) error {
	if !a.onPage(ctx, nav.SignIn) {
		return nil
	}
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}

	err = a.signIn.Submit(ctx, email, password)
	a.showSignIn()
	a.report(err)
	if a.route() != nav.SignIn {
		a.render()
	}
	return err
}

func (a *App) Forgot(ctx context.Context) error {
	if !a.onPage(ctx, nav.SignIn) {
		return nil
	}
	if err := a.signIn.Forgot(); err != nil {
		a.report(err)
		return err
	}
	email, err := a.ask("Enter the email of your account")
	if err != nil {
		return err
	}

	err = a.signIn.RequestReset(ctx, email)
	a.showSignIn()
	a.report(err)
	return err
}

func (a *App) Reset(ctx context.Context) error {
	if a.route() != nav.SignIn || a.signIn.State().Phase != flow.PhaseReset {
		fmt.Fprintln(a.out, "Request a code with 'forgot' first.")
		return nil
	}
	code, err := a.ask("Enter the code from the email")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, flow.PasswordHelp)
	password, err := a.askPassword("Enter new password")
	if err != nil {
		return err
	}

	err = a.signIn.Reset(ctx, code, password)
	a.showSignIn()
	a.report(err)
	return err
}

func (a *App) Back(ctx context.Context) error {
	if a.route() != nav.SignIn {
		return nil
	}
	err := a.signIn.BackToSignIn()
	a.report(err)
	return err
}

func (a *App) showSignIn() {
	st := a.signIn.State()
	a.printBanners(st.Error, st.Success, st.FieldErrors)
}

func (a *App) SignUp(ctx context.Context) error {
	if !a.onPage(ctx, nav.SignUp) {
		return nil
	}
	if a.signUp.State().Phase != flow.PhaseSignUp {
		fmt.Fprintln(a.out, "Enter your code with 'confirm', or use 'changeemail'.")
		return nil
	}
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, flow.PasswordHelp)
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}
	confirm, err := a.askPassword("Confirm password")
	if err != nil {
		return err
	}

	err = a.signUp.Submit(ctx, email, password, confirm)
	a.showSignUp()
	a.report(err)
	return err
}

func (a *App) Confirm(ctx context.Context) error {
	if a.route() != nav.SignUp || a.signUp.State().Phase != flow.PhaseConfirm {
		fmt.Fprintln(a.out, "Sign up first.")
		return nil
	}
	code, err := a.ask("Enter the verification code")
	if err != nil {
		return err
	}

	err = a.signUp.Confirm(ctx, code)
	if a.route() == nav.SignUp {
		a.showSignUp()
	}
	a.report(err)
	if a.route() != nav.SignUp {
		a.render()
	}
	return err
}

func (a *App) Resend(ctx context.Context) error {
	if a.route() != nav.SignUp {
		return nil
	}
	sent, err := a.signUp.Resend(ctx)
	if err == nil && !sent {
		fmt.Fprintf(a.out, "You can request a new code in %ds.\n", int(a.signUp.State().Cooldown.Seconds()+0.5))
		return nil
	}
	a.showSignUp()
	a.report(err)
	return err
}

func (a *App) ChangeEmail(ctx context.Context) error {
	if a.route() != nav.SignUp {
		return nil
	}
	err := a.signUp.ChangeEmail()
	a.report(err)
	return err
}

func (a *App) showSignUp() {
	st := a.signUp.State()
	a.printBanners(st.Error, st.Success, st.FieldErrors)
	if st.Phase == flow.PhaseConfirm {
		fmt.Fprintf(a.out, "Code sent to %s. Use 'confirm', 'resend' or 'changeemail'.\n", st.Email)
	}
}

func (a *App) List(ctx context.Context) error {
	if !a.onPage(ctx, nav.Home) {
		return nil
	}
	err := a.home.Refresh(ctx)
	a.printSearches()
	return err
}

func (a *App) Add(ctx context.Context, query string) error {
	if !a.onPage(ctx, nav.Home) {
		return nil
	}
	if err := a.home.Add(ctx, query); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	a.printSearches()
	return nil
}

func (a *App) Upload(ctx context.Context, path string) error {
	f := a.currentForm()
	if f == nil {
		fmt.Fprintln(a.out, "Open /onboarding or /update first.")
		return nil
	}
	err := f.Upload(ctx, path)
	fmt.Fprintln(a.out, f.Status())
	return err
}

func (a *App) Name(ctx context.Context, name string) error {
	f := a.currentForm()
	if f == nil {
		fmt.Fprintln(a.out, "Open /onboarding or /update first.")
		return nil
	}
	f.SetName(name)
	return nil
}

func (a *App) Save(ctx context.Context) error {
	f := a.currentForm()
	if f == nil {
		return nil
	}
	err := a.followed(func() error { return f.Save(ctx) })
	if err != nil {
		fmt.Fprintln(a.out, f.Status())
	}
	return err
}

func (a *App) Skip(ctx context.Context) error {
	f := a.currentForm()
	if f == nil {
		return nil
	}
	return a.followed(func() error { return f.Skip(ctx) })
}

func (a *App) Update(ctx context.Context) error { return a.navigate(ctx, nav.Update) }

func (a *App) Home(ctx context.Context) error { return a.navigate(ctx, nav.Home) }

// SignOut always ends on /signin, even when the provider call fails.
func (a *App) SignOut(ctx context.Context) error {
	return a.followed(func() error {
		return pages.SignOut(ctx, a.provider, a.router, a.logger)
	})
}

// help lists the commands available on route.
func help(route string, authenticated bool) string {
	var cmds []string
	switch {
	case authenticated && route == nav.Home:
		cmds = []string{"list", "add [query]", "update", "signout"}
	case authenticated:
		cmds = []string{"upload <path>", "name <name>", "save", "skip", "home", "signout"}
	case route == nav.SignIn:
		cmds = []string{"signin", "forgot", "reset", "back"}
	case route == nav.SignUp:
		cmds = []string{"signup", "confirm", "resend", "changeemail"}
	default:
		cmds = []string{"signin", "signup"}
	}
	cmds = append(cmds, "go <route>", "reload", "exit")
	return "Available commands: " + strings.Join(cmds, ", ")
}
