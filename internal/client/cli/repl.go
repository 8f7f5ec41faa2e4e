package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/dysh/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context, args []string) error
	LoginGoogle(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Onboard(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Prefs(ctx context.Context, args []string) error
	AddPref(ctx context.Context, args []string) error
	RemovePref(ctx context.Context, args []string) error
	NextMeal(ctx context.Context, args []string) error
	Explore(ctx context.Context, args []string) error
	Like(ctx context.Context, args []string) error
	Unlike(ctx context.Context, args []string) error
	Cookbook(ctx context.Context, args []string) error
	Daily(ctx context.Context, args []string) error
	GenerateDaily(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	Generate(ctx context.Context, args []string) error
	Recipe(ctx context.Context, args []string) error
	Testimonials(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
}

var errUsage = errors.New("usage")

// usageError carries the usage line of a command called with bad arguments.
type usageError struct{ line string }

func (e usageError) Error() string   { return "usage: " + e.line }
func (e usageError) Is(t error) bool { return t == errUsage }

func usage(line string) error { return usageError{line: line} }

// runREPL starts a simple read-eval-print loop for the dysh CLI.
//
// It reads a line from reader, parses the first token as the command and
// passes the rest as arguments. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Signed out:
//	  - help                         show available commands
//	  - login                        sign in with an Apple identity token
//	  - login-google                 sign in with a Google ID token
//	  - testimonials                 what other cooks say
//	  - stats                        session metrics
//	  - exit | quit                  leave the program
//
//	Signed in, additionally:
//	  - logout, status, whoami, profile, onboard
//	  - prefs, addpref <cuisine>, rmpref <cuisine>, nextmeal
//	  - explore <category> [limit], like <id>, unlike <id>
//	  - cookbook [limit] [offset], daily [category], gendaily
//	  - category <name> [limit], recipe <id>
//	  - generate <ingredient>... [-country <name>]
//
// Errors returned by handlers are reported by report and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("dysh %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: logout, status, whoami, profile, onboard, prefs, addpref, rmpref, nextmeal,")
				printlnFn("  explore, like, unlike, cookbook, daily, gendaily, category, generate, recipe, testimonials, stats, exit")
				printlnFn("Explore categories: trending, thirty-min-meals, chefs-pick, occasion, healthy-light, comfort-food, one-pot-meals")
			} else {
				printlnFn("Available commands: login, login-google, testimonials, stats, exit")
			}

		case "login":
			cmdErr = a.Login(ctx, args)
		case "login-google":
			cmdErr = a.LoginGoogle(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx, args)
		case "status":
			cmdErr = a.Status(ctx, args)
		case "whoami":
			cmdErr = a.WhoAmI(ctx, args)
		case "onboard":
			cmdErr = a.Onboard(ctx, args)
		case "profile":
			cmdErr = a.Profile(ctx, args)
		case "prefs":
			cmdErr = a.Prefs(ctx, args)
		case "addpref":
			cmdErr = a.AddPref(ctx, args)
		case "rmpref":
			cmdErr = a.RemovePref(ctx, args)
		case "nextmeal":
			cmdErr = a.NextMeal(ctx, args)
		case "explore":
			cmdErr = a.Explore(ctx, args)
		case "like":
			cmdErr = a.Like(ctx, args)
		case "unlike":
			cmdErr = a.Unlike(ctx, args)
		case "cookbook":
			cmdErr = a.Cookbook(ctx, args)
		case "daily":
			cmdErr = a.Daily(ctx, args)
		case "gendaily":
			cmdErr = a.GenerateDaily(ctx, args)
		case "category":
			cmdErr = a.Category(ctx, args)
		case "generate":
			cmdErr = a.Generate(ctx, args)
		case "recipe":
			cmdErr = a.Recipe(ctx, args)
		case "testimonials":
			cmdErr = a.Testimonials(ctx, args)
		case "stats":
			cmdErr = a.Stats(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			report(cmdErr)
		}
		if err != nil {
			return
		}
	}
}

// report tells the user what went wrong in terms they can act on.
func report(err error) {
	switch {
	case errors.Is(err, errUsage):
		printlnFn(err.Error())
	case errors.Is(err, session.ErrNotAuthenticated):
		printlnFn("You are not signed in, sign in again with 'login' or 'login-google'.")
	case errors.Is(err, session.ErrAuthExpired):
		printlnFn("Your session has expired, sign in again.")
	default:
		printlnFn("Request failed, try again:", err)
	}
}
