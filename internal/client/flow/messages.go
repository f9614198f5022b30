package flow

import (
	"errors"

	"github.com/dmitrijs2005/mapme/internal/client/identity"
)

const msgGeneric = "Something went wrong. Please try again."

var providerMessages = []struct {
	err error
	msg string
}{
	{identity.ErrAccountExists, "An account with this email already exists."},
	{identity.ErrPolicyViolation, "Password does not meet the requirements."},
	{identity.ErrInvalidCode, "Invalid verification code. Please try again."},
	{identity.ErrCodeExpired, "Verification code has expired. Please request a new one."},
	{identity.ErrNotConfirmed, "Please confirm your email before signing in."},
	{identity.ErrInvalidCredentials, "Incorrect email or password."},
	{identity.ErrNoSuchAccount, "No account found with this email."},
	{identity.ErrLimitExceeded, "Too many attempts. Please wait and try again."},
}

// Message is the banner text shown for err.
func Message(err error) string {
	for _, m := range providerMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return msgGeneric
}

const (
	msgSignedIn      = "Signed in. Redirecting..."
	msgCodeSent      = "We sent a verification code to your email."
	msgResetCodeSent = "Check your email for a password reset code."
	msgPasswordReset = "Password reset. You can now sign in."
)
