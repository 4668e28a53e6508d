package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophrecipes/internal/client/catalog"
	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
)

// searchArgs are the options shared by search and websearch:
//
//	search [-diet tag] [-exclude a,b] [-page n] words...
type searchArgs struct {
	query        string
	diet         string
	intolerances []string
	page         int
}

func parseSearchArgs(name string, args []string) (searchArgs, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	diet := fs.String("diet", "", "keep recipes with this tag")
	exclude := fs.String("exclude", "", "comma-separated tags to exclude")
	page := fs.Int("page", 1, "page number")

	if err := fs.Parse(args); err != nil {
		return searchArgs{}, errUsage(name + " [-diet tag] [-exclude a,b] [-page n] words...")
	}
	if *page < 1 {
		return searchArgs{}, fmt.Errorf("page must be a positive number, got %d", *page)
	}

	return searchArgs{
		query:        strings.Join(fs.Args(), " "),
		diet:         strings.ToLower(strings.TrimSpace(*diet)),
		intolerances: splitList(*exclude),
		page:         *page,
	}, nil
}

// Search filters the bundled catalog.
func (a *App) Search(_ context.Context, args []string) error {
	sa, err := parseSearchArgs("search", args)
	if err != nil {
		return err
	}

	p := a.recipeService.Search(catalog.SearchQuery{
		Query:        sa.query,
		Diet:         sa.diet,
		Intolerances: sa.intolerances,
		Page:         sa.page,
		PageSize:     a.pageSize(),
	})
	printRecipePage(a.out, p)
	return nil
}

// Browse lists the whole catalog: browse [page].
func (a *App) Browse(_ context.Context, args []string) error {
	page, err := parsePage(args, 0)
	if err != nil {
		return err
	}
	printRecipePage(a.out, a.recipeService.All(page, a.pageSize()))
	return nil
}

// Category lists one category: category <id> [page].
func (a *App) Category(_ context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage("category <id> [page]")
	}
	page, err := parsePage(args, 1)
	if err != nil {
		return err
	}
	printRecipePage(a.out, a.recipeService.ByCategoryPage(args[0], page, a.pageSize()))
	return nil
}

func (a *App) Categories(_ context.Context, _ []string) error {
	for _, c := range a.recipeService.Categories() {
		fmt.Fprintf(a.out, "%-10s %-10s %d recipes\n", c.ID, c.Name, c.Count)
	}
	return nil
}

// Show prints a recipe: the bundled one with that id, else the provider's.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("show <id>")
	}
	id, err := parseRecipeID(args[0])
	if err != nil {
		return err
	}

	item, err := a.recipeService.GetByID(ctx, id)
	if err != nil {
		return err
	}
	printItem(a.out, item)
	return nil
}

// Related lists up to three catalog recipes sharing a category or tag.
func (a *App) Related(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("related <id>")
	}
	if _, ok := a.recipeService.GetLocal(args[0]); !ok {
		return fmt.Errorf("no local recipe %q", args[0])
	}
	printRecipes(a.out, a.recipeService.Related(args[0], 0))
	return nil
}

// Random draws catalog recipes: random [tag] [count].
func (a *App) Random(_ context.Context, args []string) error {
	tag, count := "", 0
	if len(args) > 0 {
		tag = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return errUsage("random [tag] [count]")
		}
		count = n
	}
	printRecipes(a.out, a.recipeService.Random(tag, count))
	return nil
}

// External prints a provider recipe by id.
func (a *App) External(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("external <id>")
	}
	id, err := parseRecipeID(args[0])
	if err != nil {
		return err
	}

	r, err := a.recipeService.GetRemoteByID(ctx, id)
	if err != nil {
		return err
	}
	printItem(a.out, models.RemoteItem(*r))
	return nil
}

// WebSearch queries the provider with the search options.
func (a *App) WebSearch(ctx context.Context, args []string) error {
	sa, err := parseSearchArgs("websearch", args)
	if err != nil {
		return err
	}

	res, err := a.recipeService.SearchRemote(ctx, models.RemoteSearchQuery{
		Query:        sa.query,
		Diet:         sa.diet,
		Intolerances: sa.intolerances,
		Page:         sa.page,
		PageSize:     a.pageSize(),
	})
	if err != nil {
		return err
	}

	if len(res.Results) == 0 {
		fmt.Fprintln(a.out, "No recipes found")
		return nil
	}
	for _, r := range res.Results {
		printSummary(a.out, models.RemoteItem(r).Summary())
	}
	fmt.Fprintf(a.out, "Showing %d-%d of %d\n", res.Offset+1, res.Offset+len(res.Results), res.TotalResults)
	return nil
}
