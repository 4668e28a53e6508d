// Package users persists locally registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
)

type Repository interface {
	// Create fails with common.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByEmail and GetByID return common.ErrorNotFound on a miss.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
