// Package preferences persists one User Preferences row per user id.
package preferences

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when the user has no record.
	Get(ctx context.Context, userID string) (*models.Preferences, error)
	// Upsert writes the whole record keyed by p.UserID.
	Upsert(ctx context.Context, p *models.Preferences, updatedAt time.Time) error
}
