package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophrecipes/internal/client/cache"
	"github.com/dmitrijs2005/gophrecipes/internal/client/catalog"
	"github.com/dmitrijs2005/gophrecipes/internal/client/client"
	"github.com/dmitrijs2005/gophrecipes/internal/client/config"
	"github.com/dmitrijs2005/gophrecipes/internal/client/metrics"
	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/dmitrijs2005/gophrecipes/internal/client/repositories"
	"github.com/dmitrijs2005/gophrecipes/internal/client/services"
	"github.com/dmitrijs2005/gophrecipes/internal/client/token"
	"github.com/dmitrijs2005/gophrecipes/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type authService interface {
	Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

type recipeService interface {
	GetLocal(id string) (*models.Recipe, bool)
	ByCategoryPage(categoryID string, page, pageSize int) models.Page[models.Recipe]
	Related(id string, limit int) []models.Recipe
	Search(q catalog.SearchQuery) models.Page[models.Recipe]
	Random(tag string, count int) []models.Recipe
	All(page, pageSize int) models.Page[models.Recipe]
	Categories() []models.Category
	GetRemoteByID(ctx context.Context, id int64) (*models.ExternalRecipe, error)
	SearchRemote(ctx context.Context, q models.RemoteSearchQuery) (*models.RemoteSearchResult, error)
	GetByID(ctx context.Context, id int64) (models.RecipeItem, error)
}

type profileService interface {
	Preferences(ctx context.Context, userID string) (*models.Preferences, error)
	Load(ctx context.Context, userID string) (*services.ProfileView, error)
	ToggleSaved(ctx context.Context, userID string, recipeID int64, isSaved bool) (*models.Preferences, error)
	ToggleFavorite(ctx context.Context, userID string, recipeID int64, isFavorite bool) (*models.Preferences, error)
	UpdateDiet(ctx context.Context, userID string, dietary, allergies []string) (*models.Preferences, error)
}

type mealPlanner interface {
	Plan(ctx context.Context) (*models.MealPlan, error)
	Suggest(ctx context.Context, meal string) ([]models.Recipe, error)
	Assign(ctx context.Context, day, meal string, r models.RecipeSummary) (*models.MealPlan, error)
	Clear(ctx context.Context, day, meal string) (*models.MealPlan, error)
}

var (
	_ authService    = (*services.AuthService)(nil)
	_ recipeService  = (*services.RecipeService)(nil)
	_ profileService = (*services.ProfileService)(nil)
	_ mealPlanner    = (*services.MealPlanService)(nil)
)

// App holds every store and service of one CLI session. They are built once
// in NewApp and shared by all commands.
type App struct {
	config   *config.Config
	db       *sql.DB
	cache    cache.Cache
	log      logging.Logger
	registry *prometheus.Registry

	authService    authService
	recipeService  recipeService
	profileService profileService
	mealPlanner    mealPlanner

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the application for cfg, reading from stdin and writing to
// stdout.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, repos, err := repositories.InitDatabase(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "driver", c.DatabaseDriver, "err", err)
		return nil, err
	}

	secret := []byte(c.TokenSecret)
	if len(secret) == 0 {
		if secret, err = services.LoadOrCreateSecret(ctx, db, repos); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	codec, err := token.New(c.TokenFormat, secret, nil)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	qc, err := cache.New(ctx, cache.Config{Backend: c.CacheBackend, Prefix: c.CachePrefix, RedisAddr: c.RedisAddr})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: %w", err)
	}

	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry)
	if err != nil {
		_ = qc.Close()
		_ = db.Close()
		return nil, err
	}

	cat, err := catalog.Load(catalog.WithPageSize(c.PageSize))
	if err != nil {
		_ = qc.Close()
		_ = db.Close()
		return nil, err
	}

	var remote client.Client
	if c.RecipeAPIKey == "" {
		log.Warn(ctx, "no recipe API key configured, using the mock provider")
		remote = client.NewMockClient()
	} else {
		remote = client.NewHTTPClient(c.RecipeAPIBaseURL, c.RecipeAPIKey, c.RequestTimeout, nil)
	}

	creds := services.NewCredentialStore(db, repos, codec, nil, log)
	prefs := services.NewPreferenceService(db, repos, creds, m, log)
	recipes := services.NewRecipeService(cat, remote, qc, services.RecipeServiceConfig{
		RecipeTTL: c.RemoteRecipeTTL,
		SearchTTL: c.SearchTTL,
	}, m, log)
	profile := services.NewProfileService(prefs, recipes, qc, services.ProfileServiceConfig{
		PreferencesTTL: c.PreferencesTTL,
	}, m, log)
	auth := services.NewAuthService(db, repos, creds, c.TokenTTL, log)

	if c.SeedDemoUser {
		if err := auth.EnsureDemoUser(ctx); err != nil {
			log.Warn(ctx, "demo user not seeded", "err", err)
		}
	}

	return &App{
		config:         c,
		db:             db,
		cache:          qc,
		log:            log,
		registry:       registry,
		authService:    auth,
		recipeService:  recipes,
		profileService: profile,
		mealPlanner:    services.NewMealPlanService(db, repos, creds, recipes, log),
		reader:         bufio.NewReader(in),
		out:            out,
	}, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to gophrecipes (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, bufio.NewScanner(a.reader))
}

// Close releases the cache and the database.
func (a *App) Close() error {
	var firstErr error
	if a.cache != nil {
		firstErr = a.cache.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// currentUser reads the credential fresh; nil means signed out.
func (a *App) currentUser(ctx context.Context) *models.User {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.log.Warn(ctx, "session lookup failed", "err", err)
		return nil
	}
	return u
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.currentUser(ctx) != nil
}

func (a *App) getStatus(ctx context.Context) string {
	if u := a.currentUser(ctx); u != nil {
		return fmt.Sprintf("(%s)", u.Name)
	}
	return ""
}

func (a *App) pageSize() int {
	if a.config == nil {
		return 0
	}
	return a.config.PageSize
}
