package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/client/cache"
	"github.com/dmitrijs2005/gophrecipes/internal/client/catalog"
	"github.com/dmitrijs2005/gophrecipes/internal/client/client"
	"github.com/dmitrijs2005/gophrecipes/internal/client/metrics"
	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/dmitrijs2005/gophrecipes/internal/common"
	"github.com/dmitrijs2005/gophrecipes/internal/logging"
)

// Cache names used for metrics labels.
const (
	cacheRecipe      = "recipe"
	cacheSearch      = "search"
	cachePreferences = "preferences"
)

// RecipeService serves the local catalog directly and remote recipes
// through the query cache.
type RecipeService struct {
	catalog   *catalog.Catalog
	remote    client.Client
	q         *queryCache
	recipeTTL time.Duration
	searchTTL time.Duration
	metrics   *metrics.Metrics
	log       logging.Logger
}

type RecipeServiceConfig struct {
	RecipeTTL time.Duration
	SearchTTL time.Duration
}

func NewRecipeService(cat *catalog.Catalog, remote client.Client, c cache.Cache, cfg RecipeServiceConfig, m *metrics.Metrics, log logging.Logger) *RecipeService {
	return &RecipeService{
		catalog:   cat,
		remote:    remote,
		q:         newQueryCache(c, m, log),
		recipeTTL: cfg.RecipeTTL,
		searchTTL: cfg.SearchTTL,
		metrics:   m,
		log:       log,
	}
}

func RecipeCacheKey(id int64) string { return fmt.Sprintf("recipe:%d", id) }

func (s *RecipeService) Catalog() *catalog.Catalog { return s.catalog }

func (s *RecipeService) GetLocal(id string) (*models.Recipe, bool) { return s.catalog.GetByID(id) }

func (s *RecipeService) ByCategory(categoryID string) []models.Recipe {
	return s.catalog.ByCategory(categoryID)
}

func (s *RecipeService) ByCategoryPage(categoryID string, page, pageSize int) models.Page[models.Recipe] {
	return s.catalog.ByCategoryPage(categoryID, page, pageSize)
}

func (s *RecipeService) Related(id string, limit int) []models.Recipe {
	return s.catalog.Related(id, limit)
}

func (s *RecipeService) Search(q catalog.SearchQuery) models.Page[models.Recipe] {
	return s.catalog.Search(q)
}

func (s *RecipeService) Random(tag string, count int) []models.Recipe {
	return s.catalog.Random(tag, count)
}

func (s *RecipeService) All(page, pageSize int) models.Page[models.Recipe] {
	return s.catalog.All(page, pageSize)
}

func (s *RecipeService) Categories() []models.Category { return s.catalog.Categories() }

// GetRemoteByID returns the provider recipe for id, cached by id.
func (s *RecipeService) GetRemoteByID(ctx context.Context, id int64) (*models.ExternalRecipe, error) {
	r, err := fetch(ctx, s.q, cacheRecipe, RecipeCacheKey(id), s.recipeTTL, func(ctx context.Context) (*models.ExternalRecipe, error) {
		started := time.Now()
		r, err := s.remote.GetRecipeByID(ctx, id)
		s.metrics.RemoteRequest("get_recipe", started, err)
		if err != nil {
			return nil, remoteErr(err)
		}
		return r, nil
	})
	if err != nil {
		s.log.Warn(ctx, "remote recipe fetch failed", "id", id, "err", err)
		return nil, err
	}
	return r, nil
}

// SearchRemote queries the provider; results are cached by the normalized
// query.
func (s *RecipeService) SearchRemote(ctx context.Context, q models.RemoteSearchQuery) (*models.RemoteSearchResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = common.DefaultPageSize
	}

	return fetch(ctx, s.q, cacheSearch, searchCacheKey(q), s.searchTTL, func(ctx context.Context) (*models.RemoteSearchResult, error) {
		started := time.Now()
		res, err := s.remote.SearchRecipes(ctx, q)
		s.metrics.RemoteRequest("search", started, err)
		if err != nil {
			return nil, remoteErr(err)
		}
		return res, nil
	})
}

// RandomRemote asks the provider for fresh suggestions. Not cached.
func (s *RecipeService) RandomRemote(ctx context.Context, tags []string, number int) ([]models.ExternalRecipe, error) {
	started := time.Now()
	rs, err := s.remote.GetRandomRecipes(ctx, tags, number)
	s.metrics.RemoteRequest("random", started, err)
	if err != nil {
		return nil, remoteErr(err)
	}
	return rs, nil
}

// GetByID resolves a numeric id to the local recipe with the same string id
// when the catalog has one, and to the provider recipe otherwise.
func (s *RecipeService) GetByID(ctx context.Context, id int64) (models.RecipeItem, error) {
	if r, ok := s.catalog.GetByID(strconv.FormatInt(id, 10)); ok {
		return models.LocalItem(*r), nil
	}

	r, err := s.GetRemoteByID(ctx, id)
	if err != nil {
		return models.RecipeItem{}, err
	}
	return models.RemoteItem(*r), nil
}

func remoteErr(err error) error {
	if errors.Is(err, common.ErrRemoteFetchFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrRemoteFetchFailed, err)
}

func searchCacheKey(q models.RemoteSearchQuery) string {
	intolerances := make([]string, 0, len(q.Intolerances))
	for _, t := range q.Intolerances {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			intolerances = append(intolerances, t)
		}
	}
	slices.Sort(intolerances)

	return fmt.Sprintf("search:%s|%s|%s|%d|%d",
		strings.ToLower(strings.TrimSpace(q.Query)),
		strings.ToLower(strings.TrimSpace(q.Diet)),
		strings.Join(intolerances, ","),
		q.Page, q.PageSize)
}
