package identity

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

var (
	ErrAccountExists      = errors.New("account already exists")
	ErrPolicyViolation    = errors.New("password policy violation")
	ErrInvalidCode        = errors.New("invalid code")
	ErrCodeExpired        = errors.New("code expired")
	ErrNotConfirmed       = errors.New("account not confirmed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSuchAccount      = errors.New("no such account")
	ErrLimitExceeded      = errors.New("limit exceeded")

	// ErrProvider covers every other identity service failure, including
	// transport errors.
	ErrProvider = errors.New("identity provider error")
)

// exceptionErrors maps Cognito exception codes to sentinels.
var exceptionErrors = map[string]error{
	"UsernameExistsException":        ErrAccountExists,
	"AliasExistsException":           ErrAccountExists,
	"InvalidPasswordException":       ErrPolicyViolation,
	"CodeMismatchException":          ErrInvalidCode,
	"ExpiredCodeException":           ErrCodeExpired,
	"UserNotConfirmedException":      ErrNotConfirmed,
	"NotAuthorizedException":         ErrInvalidCredentials,
	"UserNotFoundException":          ErrNoSuchAccount,
	"LimitExceededException":         ErrLimitExceeded,
	"TooManyRequestsException":       ErrLimitExceeded,
	"TooManyFailedAttemptsException": ErrLimitExceeded,
}

// translate converts an error returned by the Cognito client into a tagged
// sentinel. The original error stays in the chain.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if sentinel, ok := exceptionErrors[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("%w: %w", sentinel, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrProvider, err)
}
