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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ShowProfile(ctx context.Context) error
	UpdateSettings(ctx context.Context) error
	CheckEmail(ctx context.Context) error
	ListScans(ctx context.Context) error
	ShowResults(ctx context.Context, jobID string) error
	StartScan(ctx context.Context) error
	UploadMedia(ctx context.Context, path string) error
	ShowNews(ctx context.Context) error
	RefreshNews(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Credor client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print and
// log their own failures. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	printlnFn("Welcome to the Credor client (type 'help' for commands)")

	for {
		printlnFn(fmt.Sprintf("credor (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, update, checkemail, scans, results <job-id>, startscan, upload <file>, news, refreshnews, logout, exit")
			} else {
				printlnFn("Available commands: register, login, news, refreshnews, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "profile":
			_ = a.ShowProfile(ctx)

		case "update":
			_ = a.UpdateSettings(ctx)

		case "checkemail":
			_ = a.CheckEmail(ctx)

		case "scans":
			_ = a.ListScans(ctx)

		case "results":
			if len(args) == 0 {
				printlnFn("Usage: results <job-id>")
				continue
			}
			_ = a.ShowResults(ctx, args[0])

		case "startscan":
			_ = a.StartScan(ctx)

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <file>")
				continue
			}
			_ = a.UploadMedia(ctx, args[0])

		case "news":
			_ = a.ShowNews(ctx)

		case "refreshnews":
			_ = a.RefreshNews(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
