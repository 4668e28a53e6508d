package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
)

func printSummary(w io.Writer, s models.RecipeSummary) {
	fmt.Fprintf(w, "[%s] %-8s %s (%d min)\n", s.Source, s.ID, s.Title, s.ReadyInMinutes)
}

func printRecipes(w io.Writer, rs []models.Recipe) {
	if len(rs) == 0 {
		fmt.Fprintln(w, "No recipes found")
		return
	}
	for _, r := range rs {
		printSummary(w, models.LocalItem(r).Summary())
	}
}

func printRecipePage(w io.Writer, p models.Page[models.Recipe]) {
	printRecipes(w, p.Items)
	if p.TotalPages > 0 {
		fmt.Fprintf(w, "Page %d of %d\n", p.CurrentPage, p.TotalPages)
	}
}

func printItem(w io.Writer, item models.RecipeItem) {
	switch item.Source {
	case models.SourceLocal:
		printLocal(w, item.Local)
	case models.SourceRemote:
		printRemote(w, item.Remote)
	}
}

func printLocal(w io.Writer, r *models.Recipe) {
	fmt.Fprintf(w, "%s  [%s]\n", r.Title, r.Category)
	if r.Description != "" {
		fmt.Fprintln(w, r.Description)
	}
	fmt.Fprintf(w, "Prep %s, cook %s, total %s. Serves %d, %d kcal.\n",
		r.PrepTime, r.CookTime, r.TotalTime, r.Servings, r.Calories)

	fmt.Fprintln(w, "Ingredients:")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  - %s\n", ing)
	}
	fmt.Fprintln(w, "Instructions:")
	for i, step := range r.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
	if r.Notes != "" {
		fmt.Fprintf(w, "Notes: %s\n", r.Notes)
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(r.Tags, ", "))
	}
}

func printRemote(w io.Writer, r *models.ExternalRecipe) {
	fmt.Fprintf(w, "%s  [provider #%d]\n", r.Title, r.ID)
	fmt.Fprintf(w, "Ready in %d min. Serves %d.\n", r.ReadyInMinutes, r.Servings)
	if len(r.Diets) > 0 {
		fmt.Fprintf(w, "Diets: %s\n", strings.Join(r.Diets, ", "))
	}

	fmt.Fprintln(w, "Ingredients:")
	for _, ing := range r.ExtendedIngredients {
		fmt.Fprintf(w, "  - %s\n", ing.Original)
	}

	fmt.Fprintln(w, "Instructions:")
	steps := 0
	for _, set := range r.AnalyzedInstructions {
		for _, s := range set.Steps {
			fmt.Fprintf(w, "  %d. %s\n", s.Number, s.Step)
			steps++
		}
	}
	if steps == 0 && r.Instructions != "" {
		fmt.Fprintf(w, "  %s\n", r.Instructions)
	}

	if r.Nutrition != nil && len(r.Nutrition.Nutrients) > 0 {
		fmt.Fprintln(w, "Nutrition:")
		for _, n := range r.Nutrition.Nutrients {
			fmt.Fprintf(w, "  %s: %.0f%s\n", n.Name, n.Amount, n.Unit)
		}
	}
	if r.SourceURL != "" {
		fmt.Fprintf(w, "Source: %s\n", r.SourceURL)
	}
}
