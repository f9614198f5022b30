// Package identity is the MapMe client's binding to the Cognito user pool.
//
// # Overview
//
// Provider is the transport-agnostic contract used by the flow controllers
// and the auth gate: sign-up with e-mail confirmation, sign-in, sign-out,
// password reset and session retrieval. Cognito implements it over the
// cognitoidentityprovider API and keeps the session in a sessionstore.Store.
//
// # Error Handling
//
// Every Cognito failure is translated once, in translate, from the service
// exception code into one of the sentinel errors below. Callers branch with
// errors.Is and never look at message text:
// ErrAccountExists, ErrPolicyViolation, ErrInvalidCode, ErrCodeExpired,
// ErrNotConfirmed, ErrInvalidCredentials, ErrNoSuchAccount, ErrLimitExceeded,
// ErrProvider.
//
// CurrentSession reports "no session" as common.ErrUnauthenticated.
package identity
