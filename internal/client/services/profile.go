package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/client/cache"
	"github.com/dmitrijs2005/gophrecipes/internal/client/metrics"
	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/dmitrijs2005/gophrecipes/internal/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultProfileConcurrency bounds the recipe reads started by Load.
const DefaultProfileConcurrency = 4

func PreferencesCacheKey(userID string) string { return "userPreferences:" + userID }

// ProfileService combines cached preference reads with the recipe reads
// a profile page needs, and invalidates the cached preferences after every
// mutation it performs.
type ProfileService struct {
	prefs       *PreferenceService
	recipes     *RecipeService
	q           *queryCache
	ttl         time.Duration
	concurrency int
	log         logging.Logger
}

type ProfileServiceConfig struct {
	PreferencesTTL time.Duration
	Concurrency    int
}

func NewProfileService(prefs *PreferenceService, recipes *RecipeService, c cache.Cache, cfg ProfileServiceConfig, m *metrics.Metrics, log logging.Logger) *ProfileService {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultProfileConcurrency
	}
	return &ProfileService{
		prefs:       prefs,
		recipes:     recipes,
		q:           newQueryCache(c, m, log),
		ttl:         cfg.PreferencesTTL,
		concurrency: cfg.Concurrency,
		log:         log,
	}
}

// Preferences is the cached read of a user's preferences.
func (s *ProfileService) Preferences(ctx context.Context, userID string) (*models.Preferences, error) {
	return fetch(ctx, s.q, cachePreferences, PreferencesCacheKey(userID), s.ttl, func(ctx context.Context) (*models.Preferences, error) {
		return s.prefs.Get(ctx, userID)
	})
}

// ItemResult is the outcome of one recipe read of a profile.
type ItemResult struct {
	ID   int64
	Item models.RecipeItem
	Err  error
}

// ProfileView is a profile whose recipe lists fill in as reads complete.
type ProfileView struct {
	Preferences *models.Preferences

	mu        sync.Mutex
	pending   int
	saved     []ItemResult
	favorites []ItemResult
	done      chan struct{}
}

// Loading reports whether any recipe read is still running.
func (v *ProfileView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending > 0
}

// Wait blocks until every read has finished or ctx is done.
func (v *ProfileView) Wait(ctx context.Context) error {
	select {
	case <-v.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Saved returns the saved recipes fetched so far, in list order.
func (v *ProfileView) Saved() []models.RecipeItem {
	return v.items(func() []ItemResult { return v.saved })
}

// Favorites returns the favorite recipes fetched so far, in list order.
func (v *ProfileView) Favorites() []models.RecipeItem {
	return v.items(func() []ItemResult { return v.favorites })
}

// Errors lists failed reads of both lists, saved first.
func (v *ProfileView) Errors() []ItemResult {
	v.mu.Lock()
	defer v.mu.Unlock()

	var out []ItemResult
	for _, list := range [][]ItemResult{v.saved, v.favorites} {
		for _, r := range list {
			if r.Err != nil {
				out = append(out, r)
			}
		}
	}
	return out
}

func (v *ProfileView) items(list func() []ItemResult) []models.RecipeItem {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]models.RecipeItem, 0)
	for _, r := range list() {
		if r.Err == nil && r.Item.Source != "" {
			out = append(out, r.Item)
		}
	}
	return out
}

func (v *ProfileView) set(list []ItemResult, i int, item models.RecipeItem, err error) {
	v.mu.Lock()
	list[i].Item = item
	list[i].Err = err
	v.pending--
	v.mu.Unlock()
}

// Load reads the preferences once and then starts one recipe read per saved
// and favorite id. It returns as soon as the reads are scheduled; use the
// view's Loading and Wait to follow them. A failed read is recorded in the
// view and does not stop the others.
func (s *ProfileService) Load(ctx context.Context, userID string) (*ProfileView, error) {
	prefs, err := s.Preferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	v := &ProfileView{
		Preferences: prefs,
		saved:       resultsFor(prefs.SavedRecipes),
		favorites:   resultsFor(prefs.FavoriteRecipes),
		done:        make(chan struct{}),
	}
	v.pending = len(v.saved) + len(v.favorites)

	g := &errgroup.Group{}
	g.SetLimit(s.concurrency)

	go func() {
		defer close(v.done)
		for _, list := range [][]ItemResult{v.saved, v.favorites} {
			for i := range list {
				id := list[i].ID
				g.Go(func() error {
					item, err := s.recipes.GetByID(ctx, id)
					if err != nil {
						s.log.Warn(ctx, "profile recipe read failed", "id", id, "err", err)
					}
					v.set(list, i, item, err)
					return nil
				})
			}
		}
		_ = g.Wait()
	}()

	return v, nil
}

func resultsFor(ids []int64) []ItemResult {
	out := make([]ItemResult, len(ids))
	for i, id := range ids {
		out[i].ID = id
	}
	return out
}

// ToggleSaved removes recipeID from the saved list when isSaved, and adds it
// otherwise.
func (s *ProfileService) ToggleSaved(ctx context.Context, userID string, recipeID int64, isSaved bool) (*models.Preferences, error) {
	op := s.prefs.AddSaved
	if isSaved {
		op = s.prefs.RemoveSaved
	}
	return s.afterMutation(ctx, userID)(op(ctx, userID, recipeID))
}

// ToggleFavorite removes recipeID from favorites when isFavorite, and adds
// it otherwise.
func (s *ProfileService) ToggleFavorite(ctx context.Context, userID string, recipeID int64, isFavorite bool) (*models.Preferences, error) {
	op := s.prefs.AddFavorite
	if isFavorite {
		op = s.prefs.RemoveFavorite
	}
	return s.afterMutation(ctx, userID)(op(ctx, userID, recipeID))
}

func (s *ProfileService) SavePreferences(ctx context.Context, prefs *models.Preferences) (*models.Preferences, error) {
	userID := ""
	if prefs != nil {
		userID = prefs.UserID
	}
	return s.afterMutation(ctx, userID)(s.prefs.Save(ctx, prefs))
}

func (s *ProfileService) UpdateDiet(ctx context.Context, userID string, dietary, allergies []string) (*models.Preferences, error) {
	return s.afterMutation(ctx, userID)(s.prefs.UpdateDiet(ctx, userID, dietary, allergies))
}

// afterMutation invalidates the user's cached preferences when the mutation
// succeeded and passes the result through.
func (s *ProfileService) afterMutation(ctx context.Context, userID string) func(*models.Preferences, error) (*models.Preferences, error) {
	return func(p *models.Preferences, err error) (*models.Preferences, error) {
		if err != nil {
			return nil, err
		}
		s.q.invalidate(ctx, PreferencesCacheKey(userID))
		return p, nil
	}
}
