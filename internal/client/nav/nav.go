// Package nav names the client routes and the navigation contract shared by
// the router, the flow controllers and the pages.
package nav

import "context"

const (
	Landing    = "/"
	SignIn     = "/signin"
	SignUp     = "/signup"
	Onboarding = "/onboarding"
	Home       = "/home"
	Update     = "/update"
)

// Navigator moves the client to another route.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path string) error

func (f NavigatorFunc) Navigate(ctx context.Context, path string) error { return f(ctx, path) }
