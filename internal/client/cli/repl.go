package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	touch()
	drainRedirects()

	Login(ctx context.Context) error
	Forgot(ctx context.Context) error
	SignOut(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error

	Home(ctx context.Context) error
	Instance(ctx context.Context) error
	GenerateQR(ctx context.Context) error
	Disconnect(ctx context.Context) error

	Messages(ctx context.Context) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	SetLimit(ctx context.Context, arg string) error
	ResendFailed(ctx context.Context) error

	Companies(ctx context.Context) error
	AddCompany(ctx context.Context) error
	EditCompany(ctx context.Context, id string) error

	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
	EditUser(ctx context.Context, id string) error
	ToggleUser(ctx context.Context, id string) error
}

const (
	helpPublic = "Available commands: login, forgot, exit"
	helpAuthed = "Available commands: home, instance, qr, disconnect, (m)essages, next, prev, limit <n>, resend, " +
		"companies, company-add, company-edit <id>, users, user-add, user-edit <id>, user-toggle <id>, " +
		"profile, whoami, signout, exit"
)

// runREPL starts the read–eval–print loop of the admin console.
//
// Every line read counts as operator activity and resets the idle countdown.
// Before each prompt, redirects issued in the background (idle expiry, role
// denial) are applied. The loop exits on scanner EOF or on "exit"/"quit".
//
// Errors returned by command handlers are ignored here; handlers report their
// own failures as notifications.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		a.drainRedirects()
		printlnFn(fmt.Sprintf("gzap %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		a.touch()

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpAuthed)
			} else {
				printlnFn(helpPublic)
			}

		case "login":
			_ = a.Login(ctx)
		case "forgot":
			_ = a.Forgot(ctx)
		case "signout", "logout":
			_ = a.SignOut(ctx)
		case "whoami":
			_ = a.Whoami(ctx)
		case "profile":
			_ = a.Profile(ctx)

		case "home":
			_ = a.Home(ctx)
		case "instance":
			_ = a.Instance(ctx)
		case "qr":
			_ = a.GenerateQR(ctx)
		case "disconnect":
			_ = a.Disconnect(ctx)

		case "m", "messages":
			_ = a.Messages(ctx)
		case "next":
			_ = a.NextPage(ctx)
		case "prev":
			_ = a.PrevPage(ctx)
		case "limit":
			_ = a.SetLimit(ctx, arg)
		case "resend":
			_ = a.ResendFailed(ctx)

		case "companies":
			_ = a.Companies(ctx)
		case "company-add":
			_ = a.AddCompany(ctx)
		case "company-edit":
			if arg == "" {
				printlnFn("Usage: company-edit <id>")
				continue
			}
			_ = a.EditCompany(ctx, arg)

		case "users":
			_ = a.Users(ctx)
		case "user-add":
			_ = a.AddUser(ctx)
		case "user-edit", "user-toggle":
			if arg == "" {
				printlnFn("Usage:", cmd, "<id>")
				continue
			}
			if cmd == "user-edit" {
				_ = a.EditUser(ctx, arg)
			} else {
				_ = a.ToggleUser(ctx, arg)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
