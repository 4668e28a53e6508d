package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
)

// Plan prints the week, one line per slot.
func (a *App) Plan(ctx context.Context, _ []string) error {
	plan, err := a.mealPlanner.Plan(ctx)
	if err != nil {
		return err
	}
	printPlan(a.out, plan)
	return nil
}

// Suggest prints random catalog picks for a meal: suggest <meal>.
func (a *App) Suggest(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("suggest <breakfast|lunch|dinner|snack>")
	}
	rs, err := a.mealPlanner.Suggest(ctx, args[0])
	if err != nil {
		return err
	}
	printRecipes(a.out, rs)
	return nil
}

// Assign places a recipe in a slot: assign <day> <meal> <id>.
func (a *App) Assign(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage("assign <day> <meal> <id>")
	}
	id, err := parseRecipeID(args[2])
	if err != nil {
		return err
	}

	item, err := a.recipeService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	plan, err := a.mealPlanner.Assign(ctx, args[0], args[1], item.Summary())
	if err != nil {
		return err
	}
	printPlan(a.out, plan)
	return nil
}

// Unassign empties a slot: unassign <day> <meal>.
func (a *App) Unassign(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage("unassign <day> <meal>")
	}
	plan, err := a.mealPlanner.Clear(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	printPlan(a.out, plan)
	return nil
}

func printPlan(w io.Writer, plan *models.MealPlan) {
	for _, day := range models.Days {
		for _, meal := range models.Meals {
			title := "-"
			if r, ok := plan.Get(day, meal); ok {
				title = fmt.Sprintf("%s (#%s)", r.Title, r.ID)
			}
			fmt.Fprintf(w, "%-9s %-9s %s\n", day, meal, title)
		}
	}
}
