package identity

import "context"

// Provider is the identity service contract used by the flow controllers and
// the auth gate. Every error it returns matches one of the package sentinels
// (or common.ErrUnauthenticated for CurrentSession).
type Provider interface {
	SignUp(ctx context.Context, email, password string) error
	ConfirmSignUp(ctx context.Context, email, code string) error
	ResendConfirmation(ctx context.Context, email string) error
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	ResetPasswordRequest(ctx context.Context, email string) error
	ConfirmResetPassword(ctx context.Context, email, code, newPassword string) error
	CurrentSession(ctx context.Context) (*Session, error)
}
