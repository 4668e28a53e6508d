package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophrecipes/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. The real App
// type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error

	Search(ctx context.Context, args []string) error
	Browse(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Related(ctx context.Context, args []string) error
	Random(ctx context.Context, args []string) error
	External(ctx context.Context, args []string) error
	WebSearch(ctx context.Context, args []string) error

	Save(ctx context.Context, args []string) error
	Unsave(ctx context.Context, args []string) error
	Fav(ctx context.Context, args []string) error
	Unfav(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Diet(ctx context.Context, args []string) error

	Plan(ctx context.Context, args []string) error
	Suggest(ctx context.Context, args []string) error
	Assign(ctx context.Context, args []string) error
	Unassign(ctx context.Context, args []string) error

	Stats(ctx context.Context, args []string) error
}

const (
	helpBrowse = "Recipes: search, browse, category, categories, show, related, random, external, websearch, plan, suggest"
	helpGuest  = "Account: register, login, help, exit"
	helpMember = "Account: whoami, logout, help, exit\n" +
		"Profile: save, unsave, fav, unfav, profile, diet, assign, unassign"
)

// runREPL starts a read–eval–print loop over scanner.
//
// The first token of every line is the command; the remaining tokens are
// passed to the handler as arguments. A handler error is printed as a single
// notice and the loop continues. The loop exits on EOF or on "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("recipes%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var handler func(context.Context, []string) error
		switch cmd {
		case "help":
			printlnFn(helpBrowse)
			if a.isLoggedIn(ctx) {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "register":
			handler = a.Register
		case "login":
			handler = a.Login
		case "logout":
			handler = a.Logout
		case "whoami":
			handler = a.WhoAmI

		case "search":
			handler = a.Search
		case "browse":
			handler = a.Browse
		case "category":
			handler = a.Category
		case "categories":
			handler = a.Categories
		case "show":
			handler = a.Show
		case "related":
			handler = a.Related
		case "random":
			handler = a.Random
		case "external":
			handler = a.External
		case "websearch":
			handler = a.WebSearch

		case "save":
			handler = a.Save
		case "unsave":
			handler = a.Unsave
		case "fav":
			handler = a.Fav
		case "unfav":
			handler = a.Unfav
		case "profile":
			handler = a.Profile
		case "diet":
			handler = a.Diet

		case "plan":
			handler = a.Plan
		case "suggest":
			handler = a.Suggest
		case "assign":
			handler = a.Assign
		case "unassign":
			handler = a.Unassign

		case "stats":
			handler = a.Stats

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if err := handler(ctx, args); err != nil {
			printlnFn("Error:", describeError(err))
		}
	}
}

// errUsage marks a malformed command line; its text is the usage line.
type errUsage string

func (e errUsage) Error() string { return "usage: " + string(e) }

func describeError(err error) string {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		return "please log in first"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, common.ErrUserExists):
		return "an account with this email already exists"
	case errors.Is(err, common.ErrRemoteFetchFailed):
		return "the recipe provider is unavailable, try again later"
	default:
		return err.Error()
	}
}
