package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/dmitrijs2005/gophrecipes/internal/common"
)

// MockClient fabricates provider responses from the requested ids alone.
// Equal inputs always produce equal outputs.
type MockClient struct {
	// Catalog of ids that RandomRecipes and SearchRecipes draw from.
	// Defaults to 1..12.
	IDs []int64
}

func NewMockClient() *MockClient {
	ids := make([]int64, 12)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return &MockClient{IDs: ids}
}

func (m *MockClient) GetRecipeByID(_ context.Context, id int64) (*models.ExternalRecipe, error) {
	r := MockRecipe(id)
	return &r, nil
}

func (m *MockClient) SearchRecipes(_ context.Context, q models.RemoteSearchQuery) (*models.RemoteSearchResult, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Query))

	var hits []models.ExternalRecipe
	for _, id := range m.IDs {
		r := MockRecipe(id)
		if needle == "" || strings.Contains(strings.ToLower(r.Title), needle) {
			hits = append(hits, r)
		}
	}

	size := q.PageSize
	if size <= 0 {
		size = common.DefaultPageSize
	}
	p := models.Paginate(hits, q.Page, size, common.DefaultPageSize)
	return &models.RemoteSearchResult{
		Results:      p.Items,
		Offset:       (p.CurrentPage - 1) * size,
		Number:       len(p.Items),
		TotalResults: len(hits),
	}, nil
}

func (m *MockClient) GetRandomRecipes(_ context.Context, _ []string, number int) ([]models.ExternalRecipe, error) {
	if number <= 0 {
		number = 3
	}
	if len(m.IDs) == 0 {
		return []models.ExternalRecipe{}, nil
	}

	out := make([]models.ExternalRecipe, number)
	for i := range out {
		out[i] = MockRecipe(m.IDs[i%len(m.IDs)])
	}
	return out, nil
}

// MockRecipe is the synthetic recipe the mock client returns for id.
func MockRecipe(id int64) models.ExternalRecipe {
	n := id
	if n < 0 {
		n = -n
	}

	return models.ExternalRecipe{
		ID:             id,
		Title:          fmt.Sprintf("External Recipe %d", id),
		Image:          fmt.Sprintf("https://spoonacular.com/recipeImages/%d-556x370.jpg", id),
		SourceURL:      fmt.Sprintf("https://spoonacular.com/%d", id),
		Summary:        "This is a mock external recipe from Spoonacular.",
		Instructions:   "Follow the instructions on the Spoonacular website.",
		ReadyInMinutes: 30 + int(n%31),
		Servings:       2 + int(n%5),
		Diets:          []string{"vegetarian", "gluten-free"},
		ExtendedIngredients: []models.Ingredient{
			{Original: "1 cup flour"},
			{Original: "2 eggs"},
			{Original: "1/2 cup milk"},
			{Original: "1 tsp baking powder"},
		},
		AnalyzedInstructions: []models.InstructionSet{{
			Steps: []models.Step{
				{Number: 1, Step: "Mix all dry ingredients in a bowl.", Ingredients: []models.StepIngredient{{ID: 20081, Name: "flour"}, {ID: 18371, Name: "baking powder"}}},
				{Number: 2, Step: "Add wet ingredients and mix until smooth.", Ingredients: []models.StepIngredient{{ID: 1123, Name: "eggs"}, {ID: 1077, Name: "milk"}}},
				{Number: 3, Step: "Cook on a hot pan until golden brown.", Ingredients: []models.StepIngredient{}},
			},
		}},
	}
}
