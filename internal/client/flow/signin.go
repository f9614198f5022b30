package flow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mapme/internal/client/gate"
	"github.com/dmitrijs2005/mapme/internal/client/identity"
	"github.com/dmitrijs2005/mapme/internal/client/nav"
	"github.com/dmitrijs2005/mapme/internal/common"
	"github.com/dmitrijs2005/mapme/internal/logging"
)

const (
	// SignInRedirectDelay is how long the success banner shows before
	// leaving the sign-in page.
	SignInRedirectDelay = 1500 * time.Millisecond

	// ResetReturnDelay is how long the reset success banner shows before
	// the form returns to sign-in.
	ResetReturnDelay = 2 * time.Second
)

// SignInState is a snapshot of the sign-in form.
type SignInState struct {
	Phase       Phase
	Email       string
	FieldErrors FieldErrors
	Error       string
	Success     string
	Loading     bool
}

// SignIn drives the signin, forgot and reset phases.
type SignIn struct {
	provider  identity.Provider
	profiles  gate.Profiles
	navigator nav.Navigator
	logger    logging.Logger
	sleep     func(ctx context.Context, d time.Duration) error

	guard inflight

	mu          sync.Mutex
	phase       Phase
	email       string
	code        string
	newPassword string
	fieldErrors FieldErrors
	errMsg      string
	successMsg  string
}

func NewSignIn(provider identity.Provider, profiles gate.Profiles, navigator nav.Navigator, logger logging.Logger) *SignIn {
	return &SignIn{
		provider:  provider,
		profiles:  profiles,
		navigator: navigator,
		logger:    logger,
		sleep:     sleep,
		phase:     PhaseSignIn,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *SignIn) State() SignInState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SignInState{
		Phase:       c.phase,
		Email:       c.email,
		FieldErrors: c.fieldErrors,
		Error:       c.errMsg,
		Success:     c.successMsg,
		Loading:     c.guard.loading(),
	}
}

// begin validates form in phase want and admits the request. It clears the
// previous banners. capture, when set, stores the typed values; it runs only
// once the phase check passed, so a rejected action leaves the state alone.
func (c *SignIn) begin(want Phase, form any, capture func()) (uuid.UUID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != want {
		return uuid.Nil, fmt.Errorf("%w: %s action in %s", ErrIllegalTransition, want, c.phase)
	}
	if capture != nil {
		capture()
	}
	c.errMsg, c.successMsg = "", ""
	if c.fieldErrors = check(form); c.fieldErrors != nil {
		return uuid.Nil, common.ErrValidation
	}
	return c.guard.begin()
}

// Submit signs the user in, then sends them to /home or /onboarding
// depending on their profile after a short success banner. A failed
// profile read sends them to /home.
func (c *SignIn) Submit(ctx context.Context, email, password string) error {
	tok, err := c.begin(PhaseSignIn, signInForm{Email: email, Password: password}, func() {
		c.email = email
	})
	if err != nil {
		return err
	}

	_, err = c.provider.SignIn(ctx, email, password)
	target := nav.Home
	if err == nil {
		p, perr := c.profiles.GetUser(ctx)
		if perr != nil {
			c.logger.Warn(ctx, "profile check after sign in failed", "err", perr)
		} else {
			target = gate.Destination(p)
		}
	}

	c.mu.Lock()
	if !c.guard.finish(tok) {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		c.logger.Error(ctx, "sign in failed", "err", err)
		c.errMsg = Message(err)
		c.mu.Unlock()
		return err
	}
	c.successMsg = msgSignedIn
	c.mu.Unlock()

	if err := c.sleep(ctx, SignInRedirectDelay); err != nil {
		return err
	}
	if !c.guard.valid(tok) {
		return ErrSuperseded
	}
	return c.navigator.Navigate(ctx, target)
}

// Forgot opens the forgot-password phase, keeping the typed email.
func (c *SignIn) Forgot() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := transition(c.phase, PhaseForgot, c.email)
	if err != nil {
		return err
	}
	c.guard.invalidate()
	c.phase = next
	c.clearTransientLocked()
	return nil
}

// RequestReset sends a reset code to email and, on success, captures the
// email and moves to the reset phase.
func (c *SignIn) RequestReset(ctx context.Context, email string) error {
	tok, err := c.begin(PhaseForgot, forgotForm{Email: email}, nil)
	if err != nil {
		return err
	}

	err = c.provider.ResetPasswordRequest(ctx, email)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.guard.finish(tok) {
		return ErrSuperseded
	}
	if err != nil {
		c.logger.Error(ctx, "password reset request failed", "err", err)
		c.errMsg = Message(err)
		return err
	}

	next, err := transition(c.phase, PhaseReset, email)
	if err != nil {
		return err
	}
	c.phase = next
	c.email = email
	c.successMsg = msgResetCodeSent
	return nil
}

// Reset sets a new password with the emailed code. On success the code and
// password are cleared and the form returns to sign-in after a short
// success banner.
func (c *SignIn) Reset(ctx context.Context, code, newPassword string) error {
	var email string
	tok, err := c.begin(PhaseReset, resetForm{Code: code, NewPassword: newPassword}, func() {
		c.code, c.newPassword = code, newPassword
		email = c.email
	})
	if err != nil {
		return err
	}

	err = c.provider.ConfirmResetPassword(ctx, email, code, newPassword)

	c.mu.Lock()
	if !c.guard.finish(tok) {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		c.logger.Error(ctx, "password reset failed", "err", err)
		c.errMsg = Message(err)
		c.mu.Unlock()
		return err
	}
	c.code, c.newPassword = "", ""
	c.successMsg = msgPasswordReset
	c.mu.Unlock()

	if err := c.sleep(ctx, ResetReturnDelay); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.guard.valid(tok) {
		return ErrSuperseded
	}
	next, err := transition(c.phase, PhaseSignIn, c.email)
	if err != nil {
		return err
	}
	c.phase = next
	c.fieldErrors = nil
	return nil
}

// BackToSignIn leaves forgot or reset, clearing the code, the new password
// and every message.
func (c *SignIn) BackToSignIn() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := transition(c.phase, PhaseSignIn, c.email)
	if err != nil {
		return err
	}
	c.guard.invalidate()
	c.phase = next
	c.clearTransientLocked()
	return nil
}

func (c *SignIn) clearTransientLocked() {
	c.code, c.newPassword = "", ""
	c.fieldErrors = nil
	c.errMsg, c.successMsg = "", ""
}
