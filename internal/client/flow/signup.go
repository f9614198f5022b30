package flow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/mapme/internal/client/identity"
	"github.com/dmitrijs2005/mapme/internal/client/nav"
	"github.com/dmitrijs2005/mapme/internal/common"
	"github.com/dmitrijs2005/mapme/internal/logging"
)

// ResendCooldown is the wait between confirmation code resends.
const ResendCooldown = 60 * time.Second

// SignUpState is a snapshot of the sign-up form.
type SignUpState struct {
	Phase       Phase
	Email       string
	Code        string
	FieldErrors FieldErrors
	Error       string
	Success     string
	Loading     bool
	Cooldown    time.Duration
}

// SignUp drives the signup -> confirm flow.
type SignUp struct {
	provider  identity.Provider
	navigator nav.Navigator
	logger    logging.Logger
	now       func() time.Time

	guard inflight

	mu            sync.Mutex
	phase         Phase
	email         string
	password      string
	code          string
	fieldErrors   FieldErrors
	errMsg        string
	successMsg    string
	cooldownUntil time.Time
}

func NewSignUp(provider identity.Provider, navigator nav.Navigator, logger logging.Logger) *SignUp {
	return &SignUp{
		provider:  provider,
		navigator: navigator,
		logger:    logger,
		now:       time.Now,
		phase:     PhaseSignUp,
	}
}

func (c *SignUp) State() SignUpState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SignUpState{
		Phase:       c.phase,
		Email:       c.email,
		Code:        c.code,
		FieldErrors: c.fieldErrors,
		Error:       c.errMsg,
		Success:     c.successMsg,
		Loading:     c.guard.loading(),
		Cooldown:    c.cooldownLocked(),
	}
}

// Submit validates the credentials and registers the account. On success
// the flow moves to the confirm phase and the resend cooldown starts.
func (c *SignUp) Submit(ctx context.Context, email, password, confirm string) error {
	c.mu.Lock()
	if c.phase != PhaseSignUp {
		c.mu.Unlock()
		return fmt.Errorf("%w: submit in %s", ErrIllegalTransition, c.phase)
	}
	c.errMsg, c.successMsg = "", ""
	c.fieldErrors = check(signUpForm{Email: email, Password: password, Confirm: confirm})
	if c.fieldErrors != nil {
		c.mu.Unlock()
		return common.ErrValidation
	}
	tok, err := c.guard.begin()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	err = c.provider.SignUp(ctx, email, password)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.guard.finish(tok) {
		return ErrSuperseded
	}
	if err != nil {
		c.logger.Error(ctx, "sign up failed", "err", err)
		c.errMsg = Message(err)
		return err
	}

	next, err := transition(c.phase, PhaseConfirm, email)
	if err != nil {
		return err
	}
	c.phase = next
	c.email, c.password, c.code = email, password, ""
	c.successMsg = msgCodeSent
	c.cooldownUntil = c.now().Add(ResendCooldown)
	return nil
}

// Confirm verifies code, signs the new user in with the credentials from
// Submit and opens onboarding. A wrong code keeps the confirm phase.
func (c *SignUp) Confirm(ctx context.Context, code string) error {
	c.mu.Lock()
	if c.phase != PhaseConfirm {
		c.mu.Unlock()
		return fmt.Errorf("%w: confirm in %s", ErrIllegalTransition, c.phase)
	}
	c.errMsg, c.successMsg = "", ""
	c.code = code
	c.fieldErrors = check(codeForm{Code: code})
	if c.fieldErrors != nil {
		c.mu.Unlock()
		return common.ErrValidation
	}
	email, password := c.email, c.password
	tok, err := c.guard.begin()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	err = c.provider.ConfirmSignUp(ctx, email, code)
	signInErr := err
	if err == nil {
		_, signInErr = c.provider.SignIn(ctx, email, password)
	}

	c.mu.Lock()
	if !c.guard.finish(tok) {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		c.logger.Error(ctx, "confirm sign up failed", "err", err)
		c.errMsg = Message(err)
		c.mu.Unlock()
		return err
	}
	c.password = ""
	c.mu.Unlock()

	if signInErr != nil {
		// The account is confirmed; let the user sign in by hand.
		c.logger.Error(ctx, "sign in after confirmation failed", "err", signInErr)
		return c.navigator.Navigate(ctx, nav.SignIn)
	}
	return c.navigator.Navigate(ctx, nav.Onboarding)
}

// Resend asks for a new confirmation code. While the cooldown runs it does
// nothing and reports false.
func (c *SignUp) Resend(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.phase != PhaseConfirm {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: resend in %s", ErrIllegalTransition, c.phase)
	}
	if c.cooldownLocked() > 0 {
		c.mu.Unlock()
		return false, nil
	}
	c.errMsg, c.successMsg = "", ""
	email := c.email
	tok, err := c.guard.begin()
	c.mu.Unlock()
	if err != nil {
		return false, err
	}

	err = c.provider.ResendConfirmation(ctx, email)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.guard.finish(tok) {
		return false, ErrSuperseded
	}
	if err != nil {
		c.logger.Error(ctx, "resend confirmation failed", "err", err)
		c.errMsg = Message(err)
		return false, err
	}
	c.successMsg = msgCodeSent
	c.cooldownUntil = c.now().Add(ResendCooldown)
	return true, nil
}

// ChangeEmail returns to the signup phase. The code and all messages are
// cleared; a request still in flight is abandoned.
func (c *SignUp) ChangeEmail() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := transition(c.phase, PhaseSignUp, c.email)
	if err != nil {
		return err
	}
	c.guard.invalidate()
	c.phase = next
	c.code, c.password = "", ""
	c.fieldErrors = nil
	c.errMsg, c.successMsg = "", ""
	c.cooldownUntil = time.Time{}
	return nil
}

func (c *SignUp) cooldownLocked() time.Duration {
	if c.cooldownUntil.IsZero() {
		return 0
	}
	left := c.cooldownUntil.Sub(c.now())
	if left < 0 {
		return 0
	}
	return left
}
