package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/dmitrijs2005/gophrecipes/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_GetDefaultIsTransient(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	p, err := env.prefs.Get(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, "pref-nobody", p.ID)
	assert.Empty(t, p.SavedRecipes)
	assert.NotNil(t, p.SavedRecipes)

	_, err = env.repos.Preferences(env.db).Get(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPreferenceService_AddFavoriteIsIdempotent(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	userID := env.signIn(t)

	_, err := env.prefs.AddFavorite(ctx, userID, 42)
	require.NoError(t, err)
	p, err := env.prefs.AddFavorite(ctx, userID, 42)
	require.NoError(t, err)

	assert.Equal(t, []int64{42}, p.FavoriteRecipes)

	stored, err := env.prefs.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, stored.FavoriteRecipes)
}

func TestPreferenceService_RemoveNonMemberWritesNothing(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	userID := env.signIn(t)

	p, err := env.prefs.RemoveSaved(ctx, userID, 7)
	require.NoError(t, err)
	assert.Empty(t, p.SavedRecipes)

	_, err = env.repos.Preferences(env.db).Get(ctx, userID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	p, err = env.prefs.RemoveFavorite(ctx, userID, 7)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(userID), p)
}

func TestPreferenceService_SaveGetRoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	userID := env.signIn(t)

	in := &models.Preferences{
		UserID:             userID,
		DietaryPreferences: []string{"vegan"},
		Allergies:          []string{"peanut"},
		SavedRecipes:       []int64{1, 2},
		FavoriteRecipes:    []int64{3},
	}
	_, err := env.prefs.Save(ctx, in)
	require.NoError(t, err)

	got, err := env.prefs.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "pref-"+userID, got.ID)
	assert.Equal(t, in.DietaryPreferences, got.DietaryPreferences)
	assert.Equal(t, in.Allergies, got.Allergies)
	assert.Equal(t, in.SavedRecipes, got.SavedRecipes)
	assert.Equal(t, in.FavoriteRecipes, got.FavoriteRecipes)
}

func TestPreferenceService_SaveRequiresUserID(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signIn(t)

	_, err := env.prefs.Save(context.Background(), &models.Preferences{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestPreferenceService_MutationsRequireSession(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.prefs.AddFavorite(ctx, "u1", 1)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	userID := env.signIn(t)

	_, err = env.prefs.AddSaved(ctx, "someone-else", 1)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = env.repos.Preferences(env.db).Get(ctx, "someone-else")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, env.auth.Logout(ctx))
	_, err = env.prefs.UpdateDiet(ctx, userID, []string{"vegan"}, nil)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestPreferenceService_UpdateDietNormalizes(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	userID := env.signIn(t)

	p, err := env.prefs.UpdateDiet(ctx, userID, []string{"vegan", "vegan", "keto"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"vegan", "keto"}, p.DietaryPreferences)
	assert.Equal(t, []string{}, p.Allergies)
}

func TestPreferenceService_ConcurrentAddsAreNotLost(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	userID := env.signIn(t)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.prefs.AddSaved(ctx, userID, int64(i+1)); err != nil {
				errs <- fmt.Errorf("add %d: %w", i+1, err)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	p, err := env.prefs.Get(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, p.SavedRecipes, n)
	for i := range n {
		assert.True(t, p.IsSaved(int64(i+1)), "missing %d", i+1)
	}
}
