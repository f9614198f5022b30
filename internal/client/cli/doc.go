// Package cli provides the interactive MapMe command-line client.
//
// It wires the router, the sign-in and sign-up flows and the pages into a
// read-eval-print loop. The prompt shows the current route and, once signed
// in, the user's email:
//
//	mapme /home ann@example.com>
//
// Commands depend on the route; "help" lists the ones that apply.
package cli
