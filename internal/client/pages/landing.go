package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/mapme/internal/client/nav"
)

// Landing is the static welcome screen.
type Landing struct{}

func (Landing) Enter(context.Context) {}

func (Landing) Render(w io.Writer) {
	fmt.Fprintln(w, "MapMe")
	fmt.Fprintln(w, "Your Location-Based Discovery Platform")
	fmt.Fprintln(w, "Find places, experiences, and services near you with personalized recommendations.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Sign In         go %s\n", nav.SignIn)
	fmt.Fprintf(w, "  Create Account  go %s\n", nav.SignUp)
}
