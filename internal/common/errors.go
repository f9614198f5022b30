// Package common defines sentinel errors and constants shared by the MapMe
// client packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrUnauthenticated is returned when an operation needs a session and
	// there is none (never signed in, signed out, or expired beyond refresh).
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrAPI marks any non-2xx answer from the backend API.
	ErrAPI = errors.New("api error")

	// ErrUploadFailed is the single error surfaced for any failure of the
	// credential exchange or the object write.
	ErrUploadFailed = errors.New("upload failed")

	// ErrValidation marks local, pre-submission form validation failures.
	ErrValidation = errors.New("validation error")
)
