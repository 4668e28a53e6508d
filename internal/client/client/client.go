package client

import (
	"context"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
)

type Client interface {
	SearchRecipes(ctx context.Context, q models.RemoteSearchQuery) (*models.RemoteSearchResult, error)
	GetRecipeByID(ctx context.Context, id int64) (*models.ExternalRecipe, error)
	GetRandomRecipes(ctx context.Context, tags []string, number int) ([]models.ExternalRecipe, error)
}
