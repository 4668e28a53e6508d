package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/client/metrics"
	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/dmitrijs2005/gophrecipes/internal/client/repositories"
	"github.com/dmitrijs2005/gophrecipes/internal/common"
	"github.com/dmitrijs2005/gophrecipes/internal/dbx"
	"github.com/dmitrijs2005/gophrecipes/internal/logging"
)

// PreferenceService reads and mutates per-user preference records.
//
// Mutations are serialized per user id and run in a transaction, so the
// read-modify-write of one call never overwrites another's result.
type PreferenceService struct {
	db      *sql.DB
	repos   repositories.Manager
	creds   *CredentialStore
	locks   *keyedMutex
	now     func() time.Time
	metrics *metrics.Metrics
	log     logging.Logger
}

func NewPreferenceService(db *sql.DB, repos repositories.Manager, creds *CredentialStore, m *metrics.Metrics, log logging.Logger) *PreferenceService {
	return &PreferenceService{
		db:      db,
		repos:   repos,
		creds:   creds,
		locks:   newKeyedMutex(),
		now:     time.Now,
		metrics: m,
		log:     log,
	}
}

// Get returns the stored record or a fresh default. The default is not
// written.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*models.Preferences, error) {
	p, err := s.repos.Preferences(s.db).Get(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return models.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Save replaces the whole record keyed by prefs.UserID.
func (s *PreferenceService) Save(ctx context.Context, prefs *models.Preferences) (*models.Preferences, error) {
	if prefs == nil || prefs.UserID == "" {
		return nil, fmt.Errorf("%w: preferences need a user id", common.ErrInvalidInput)
	}

	next := *prefs
	next.Normalize()

	return s.mutate(ctx, "save", prefs.UserID, true, func(p *models.Preferences) bool {
		*p = next
		return true
	})
}

func (s *PreferenceService) AddFavorite(ctx context.Context, userID string, recipeID int64) (*models.Preferences, error) {
	return s.mutate(ctx, "add_favorite", userID, true, func(p *models.Preferences) (changed bool) {
		p.FavoriteRecipes, changed = models.AddID(p.FavoriteRecipes, recipeID)
		return changed
	})
}

func (s *PreferenceService) RemoveFavorite(ctx context.Context, userID string, recipeID int64) (*models.Preferences, error) {
	return s.mutate(ctx, "remove_favorite", userID, false, func(p *models.Preferences) (changed bool) {
		p.FavoriteRecipes, changed = models.RemoveID(p.FavoriteRecipes, recipeID)
		return changed
	})
}

func (s *PreferenceService) AddSaved(ctx context.Context, userID string, recipeID int64) (*models.Preferences, error) {
	return s.mutate(ctx, "add_saved", userID, true, func(p *models.Preferences) (changed bool) {
		p.SavedRecipes, changed = models.AddID(p.SavedRecipes, recipeID)
		return changed
	})
}

func (s *PreferenceService) RemoveSaved(ctx context.Context, userID string, recipeID int64) (*models.Preferences, error) {
	return s.mutate(ctx, "remove_saved", userID, false, func(p *models.Preferences) (changed bool) {
		p.SavedRecipes, changed = models.RemoveID(p.SavedRecipes, recipeID)
		return changed
	})
}

// UpdateDiet replaces both tag sets.
func (s *PreferenceService) UpdateDiet(ctx context.Context, userID string, dietary, allergies []string) (*models.Preferences, error) {
	probe := models.Preferences{DietaryPreferences: dietary, Allergies: allergies}
	probe.Normalize()

	return s.mutate(ctx, "update_diet", userID, true, func(p *models.Preferences) bool {
		p.DietaryPreferences = probe.DietaryPreferences
		p.Allergies = probe.Allergies
		return true
	})
}

// mutate runs fn against the user's record under the user lock and inside a
// transaction, writing only when fn reports a change. Without a record and
// with create=false nothing is written and the default is returned.
func (s *PreferenceService) mutate(ctx context.Context, op, userID string, create bool, fn func(p *models.Preferences) bool) (*models.Preferences, error) {
	sess, err := s.creds.Require(ctx)
	if err == nil && sess.Claims.UserID != userID {
		err = common.ErrUnauthorized
	}
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			s.metrics.PreferenceMutation(op, metrics.ResultDenied)
		} else {
			s.metrics.PreferenceMutation(op, metrics.ResultError)
		}
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var result *models.Preferences
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Preferences(tx)

		p, err := repo.Get(ctx, userID)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			p = models.DefaultPreferences(userID)
			if !create {
				result = p
				return nil
			}
		case err != nil:
			return err
		}

		changed := fn(p)
		p.UserID = userID
		p.Normalize()
		result = p

		if !changed {
			return nil
		}
		return repo.Upsert(ctx, p, s.now())
	})
	if err != nil {
		s.metrics.PreferenceMutation(op, metrics.ResultError)
		s.log.Error(ctx, "preference mutation failed", "op", op, "user", userID, "err", err)
		return nil, fmt.Errorf("preferences %s: %w", op, err)
	}

	s.metrics.PreferenceMutation(op, metrics.ResultOK)
	s.log.Debug(ctx, "preference mutation", "op", op, "user", userID)
	return result, nil
}
