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
	DeleteAccount(ctx context.Context) error
	Feed(ctx context.Context) error
	Post(ctx context.Context) error
	Show(ctx context.Context, id string) error
	EditWeet(ctx context.Context, id string) error
	DeleteWeet(ctx context.Context, id string) error
	ToggleWeet(ctx context.Context, verb, id string) error
	Profile(ctx context.Context, handle string) error
	Follow(ctx context.Context, handle string) error
	Unfollow(ctx context.Context, handle string) error
	Followers(ctx context.Context, handle string) error
	Following(ctx context.Context, handle string) error
	Search(ctx context.Context, query string) error
	EditProfile(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Witter CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("witter %s> ", statusFn()))
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

		arg := func(usage string) (string, bool) {
			if len(args) == 0 {
				printlnFn("Usage: " + usage)
				return "", false
			}
			return strings.Join(args, " "), true
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: feed, post, show, edit, delete, reweet, unreweet, favorite, unfavorite, tab, untab, profile, follow, unfollow, followers, following, search, editprofile, deleteaccount, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "deleteaccount":
			_ = a.DeleteAccount(ctx)

		case "f", "feed":
			_ = a.Feed(ctx)

		case "post":
			_ = a.Post(ctx)

		case "show":
			if id, ok := arg("show <id>"); ok {
				_ = a.Show(ctx, id)
			}

		case "edit":
			if id, ok := arg("edit <id>"); ok {
				_ = a.EditWeet(ctx, id)
			}

		case "delete":
			if id, ok := arg("delete <id>"); ok {
				_ = a.DeleteWeet(ctx, id)
			}

		case "reweet", "unreweet", "favorite", "unfavorite", "tab", "untab":
			if id, ok := arg(cmd + " <id>"); ok {
				_ = a.ToggleWeet(ctx, cmd, id)
			}

		case "profile":
			if handle, ok := arg("profile <handle>"); ok {
				_ = a.Profile(ctx, handle)
			}

		case "follow":
			if handle, ok := arg("follow <handle>"); ok {
				_ = a.Follow(ctx, handle)
			}

		case "unfollow":
			if handle, ok := arg("unfollow <handle>"); ok {
				_ = a.Unfollow(ctx, handle)
			}

		case "followers":
			if handle, ok := arg("followers <handle>"); ok {
				_ = a.Followers(ctx, handle)
			}

		case "following":
			if handle, ok := arg("following <handle>"); ok {
				_ = a.Following(ctx, handle)
			}

		case "search":
			if query, ok := arg("search <query>"); ok {
				_ = a.Search(ctx, query)
			}

		case "editprofile":
			_ = a.EditProfile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
