// Package flow implements the sign-up and sign-in form flows.
//
// A SignUp controller walks signup -> confirm and finishes by signing the
// new user in and opening /onboarding. A SignIn controller handles
// signin, the forgot-password request and the reset itself. Both keep their
// form state behind a mutex, validate locally before any network call and
// map provider failures to fixed user-facing messages.
//
// Each controller allows one request at a time. A trigger while a request is
// in flight fails with ErrBusy, and results that arrive after the user left
// the phase that started them are dropped with ErrSuperseded.
package flow
