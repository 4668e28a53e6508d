package preferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/dmitrijs2005/gophrecipes/internal/common"
	"github.com/dmitrijs2005/gophrecipes/internal/dbx"
)

// SQLRepository stores each set as a JSON array in its own column.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Get(ctx context.Context, userID string) (*models.Preferences, error) {
	query := dbx.Rebind(r.dialect, `
		SELECT id, user_id, dietary_preferences, allergies, saved_recipes, favorite_recipes
		FROM preferences WHERE user_id = ?`)

	var diet, allergies, saved, favorites string
	p := &models.Preferences{}

	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.ID, &p.UserID, &diet, &allergies, &saved, &favorites)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get preferences[%s]: %w", userID, err)
	}

	for _, f := range []struct {
		raw string
		dst any
	}{
		{diet, &p.DietaryPreferences},
		{allergies, &p.Allergies},
		{saved, &p.SavedRecipes},
		{favorites, &p.FavoriteRecipes},
	} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("failed to decode preferences[%s]: %w", userID, err)
		}
	}

	p.Normalize()
	return p, nil
}

func (r *SQLRepository) Upsert(ctx context.Context, p *models.Preferences, updatedAt time.Time) error {
	cols := make([]any, 0, 4)
	for _, v := range []any{p.DietaryPreferences, p.Allergies, p.SavedRecipes, p.FavoriteRecipes} {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode preferences[%s]: %w", p.UserID, err)
		}
		cols = append(cols, string(b))
	}

	query := dbx.Rebind(r.dialect, `
		INSERT INTO preferences (user_id, id, dietary_preferences, allergies, saved_recipes, favorite_recipes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			id = excluded.id,
			dietary_preferences = excluded.dietary_preferences,
			allergies = excluded.allergies,
			saved_recipes = excluded.saved_recipes,
			favorite_recipes = excluded.favorite_recipes,
			updated_at = excluded.updated_at`)

	args := append([]any{p.UserID, p.ID}, cols...)
	args = append(args, updatedAt.UnixMilli())

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save preferences[%s]: %w", p.UserID, err)
	}
	return nil
}
