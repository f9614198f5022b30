package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	route() string
	authenticated() bool
	Go(ctx context.Context, path string) error
	Reload(ctx context.Context) error
	SignIn(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context) error
	Back(ctx context.Context) error
	SignUp(ctx context.Context) error
	Confirm(ctx context.Context) error
	Resend(ctx context.Context) error
	ChangeEmail(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context, query string) error
	Upload(ctx context.Context, path string) error
	Name(ctx context.Context, name string) error
	Save(ctx context.Context) error
	Skip(ctx context.Context) error
	Update(ctx context.Context) error
	Home(ctx context.Context) error
	SignOut(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the MapMe CLI.
//
// Each line is split into a command and the rest of the line as its
// argument. The prompt shows the current status (from statusFn). The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Command handlers report their own errors, so the REPL ignores them.
// Prompts inside handlers read from the same reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mapme %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			printlnFn(help(a.route(), a.authenticated()))

		case "go":
			if arg == "" {
				printlnFn("Usage: go <route>")
				continue
			}
			_ = a.Go(ctx, arg)

		case "reload":
			_ = a.Reload(ctx)

		case "signin":
			_ = a.SignIn(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "back":
			_ = a.Back(ctx)

		case "signup":
			_ = a.SignUp(ctx)

		case "confirm":
			_ = a.Confirm(ctx)

		case "resend":
			_ = a.Resend(ctx)

		case "changeemail":
			_ = a.ChangeEmail(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.Add(ctx, arg)

		case "upload":
			if arg == "" {
				printlnFn("Usage: upload <path>")
				continue
			}
			_ = a.Upload(ctx, arg)

		case "name":
			_ = a.Name(ctx, arg)

		case "save":
			_ = a.Save(ctx)

		case "skip":
			_ = a.Skip(ctx)

		case "update":
			_ = a.Update(ctx)

		case "home":
			_ = a.Home(ctx)

		case "signout", "logout":
			_ = a.SignOut(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
