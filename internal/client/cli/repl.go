package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/auth"
	"github.com/dmitrijs2005/gophtasks/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	sessionLost()
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Profile(ctx context.Context) error
	Categories(ctx context.Context) error
	AddCategory(ctx context.Context, args []string) error
	Seed(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, categories, help, exit"
	helpLoggedIn  = "Available commands: (l)ist [--status s] [--priority p] [--category c] [--search q], add, " +
		"edit <id>, toggle <id>, delete <id>, stats, profile, categories, addcategory <name>, seed, " +
		"whoami, avatar <url>, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the task manager CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'; the remaining tokens are passed as
// arguments. Prompts issued by the commands read from the same reader. The
// loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gt %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "avatar":
			err = a.Avatar(ctx, args)
		case "l", "list":
			err = a.List(ctx, args)
		case "add":
			err = a.Add(ctx)
		case "edit":
			err = a.Edit(ctx, args)
		case "toggle":
			err = a.Toggle(ctx, args)
		case "delete", "rm":
			err = a.Delete(ctx, args)
		case "stats":
			err = a.Stats(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "categories":
			err = a.Categories(ctx)
		case "addcategory":
			err = a.AddCategory(ctx, args)
		case "seed":
			err = a.Seed(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			if isAuthError(err) {
				a.sessionLost()
			}
			printlnFn("Error:", describe(err))
		}
	}
}

func isAuthError(err error) bool {
	return errors.Is(err, auth.ErrNotAuthenticated) || errors.Is(err, client.ErrUnauthorized)
}

// describe turns well-known errors into a hint for the user.
func describe(err error) string {
	switch {
	case isAuthError(err):
		return "not logged in (use 'login' or 'register')"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	}
	return err.Error()
}
