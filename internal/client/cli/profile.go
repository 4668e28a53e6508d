package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
)

type listOp func(ctx context.Context, userID string, recipeID int64, isMember bool) (*models.Preferences, error)

// changeList adds (remove=false) or removes a recipe id from one of the
// signed-in user's lists.
func (a *App) changeList(ctx context.Context, args []string, usage, label string, op listOp, remove bool) error {
	if len(args) != 1 {
		return errUsage(usage)
	}
	id, err := parseRecipeID(args[0])
	if err != nil {
		return err
	}
	userID, err := a.requireUser(ctx)
	if err != nil {
		return err
	}

	p, err := op(ctx, userID, id, remove)
	if err != nil {
		return err
	}

	verb := "Added to"
	if remove {
		verb = "Removed from"
	}
	ids := p.SavedRecipes
	if label == "favorites" {
		ids = p.FavoriteRecipes
	}
	fmt.Fprintf(a.out, "%s %s: %d (%d total)\n", verb, label, id, len(ids))
	return nil
}

func (a *App) Save(ctx context.Context, args []string) error {
	return a.changeList(ctx, args, "save <id>", "saved", a.profileService.ToggleSaved, false)
}

func (a *App) Unsave(ctx context.Context, args []string) error {
	return a.changeList(ctx, args, "unsave <id>", "saved", a.profileService.ToggleSaved, true)
}

func (a *App) Fav(ctx context.Context, args []string) error {
	return a.changeList(ctx, args, "fav <id>", "favorites", a.profileService.ToggleFavorite, false)
}

func (a *App) Unfav(ctx context.Context, args []string) error {
	return a.changeList(ctx, args, "unfav <id>", "favorites", a.profileService.ToggleFavorite, true)
}

// Profile prints the preferences and both recipe lists. Failed recipe reads
// are listed inline after the successful ones.
func (a *App) Profile(ctx context.Context, _ []string) error {
	userID, err := a.requireUser(ctx)
	if err != nil {
		return err
	}

	view, err := a.profileService.Load(ctx, userID)
	if err != nil {
		return err
	}
	if view.Loading() {
		fmt.Fprintln(a.out, "Loading recipes...")
	}
	if err := view.Wait(ctx); err != nil {
		return err
	}

	p := view.Preferences
	fmt.Fprintf(a.out, "Diet: %s\n", joinOrNone(p.DietaryPreferences))
	fmt.Fprintf(a.out, "Allergies: %s\n", joinOrNone(p.Allergies))

	printItems(a.out, "Saved recipes", view.Saved())
	printItems(a.out, "Favorite recipes", view.Favorites())

	for _, r := range view.Errors() {
		fmt.Fprintf(a.out, "! recipe %d could not be loaded: %s\n", r.ID, describeError(r.Err))
	}
	return nil
}

// Diet prompts for both tag sets and replaces them.
func (a *App) Diet(ctx context.Context, _ []string) error {
	userID, err := a.requireUser(ctx)
	if err != nil {
		return err
	}

	dietary, err := GetList(a.reader, "Enter dietary preferences", a.out)
	if err != nil {
		return err
	}
	allergies, err := GetList(a.reader, "Enter allergies", a.out)
	if err != nil {
		return err
	}

	p, err := a.profileService.UpdateDiet(ctx, userID, dietary, allergies)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Diet: %s. Allergies: %s.\n", joinOrNone(p.DietaryPreferences), joinOrNone(p.Allergies))
	return nil
}

func printItems(w io.Writer, title string, items []models.RecipeItem) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(items))
	for _, it := range items {
		printSummary(w, it.Summary())
	}
}

func joinOrNone(tags []string) string {
	if len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, ", ")
}
