package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/client/cache"
	"github.com/dmitrijs2005/gophrecipes/internal/client/catalog"
	"github.com/dmitrijs2005/gophrecipes/internal/client/client"
	"github.com/dmitrijs2005/gophrecipes/internal/client/metrics"
	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/dmitrijs2005/gophrecipes/internal/client/repositories"
	"github.com/dmitrijs2005/gophrecipes/internal/client/token"
	"github.com/dmitrijs2005/gophrecipes/internal/logging"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db      *sql.DB
	repos   repositories.Manager
	cache   *cache.Memory
	metrics *metrics.Metrics
	creds   *CredentialStore
	prefs   *PreferenceService
	recipes *RecipeService
	profile *ProfileService
	auth    *AuthService
	plan    *MealPlanService
}

func newTestEnv(t *testing.T, remote client.Client) *testEnv {
	t.Helper()
	ctx := context.Background()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, repos, err := repositories.InitDatabase(ctx, "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if remote == nil {
		remote = client.NewMockClient()
	}

	cat, err := catalog.Load(catalog.WithRand(func(int) int { return 0 }))
	require.NoError(t, err)

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	log := logging.Nop()
	mem := cache.NewMemory("test:", nil)
	creds := NewCredentialStore(db, repos, token.NewJWTCodec([]byte("test-secret"), nil), nil, log)
	prefs := NewPreferenceService(db, repos, creds, m, log)
	recipes := NewRecipeService(cat, remote, mem, RecipeServiceConfig{RecipeTTL: time.Hour, SearchTTL: 5 * time.Minute}, m, log)

	return &testEnv{
		db:      db,
		repos:   repos,
		cache:   mem,
		metrics: m,
		creds:   creds,
		prefs:   prefs,
		recipes: recipes,
		profile: NewProfileService(prefs, recipes, mem, ProfileServiceConfig{PreferencesTTL: 5 * time.Minute}, m, log),
		auth:    NewAuthService(db, repos, creds, time.Hour, log),
		plan:    NewMealPlanService(db, repos, creds, recipes, log),
	}
}

// signIn registers a fresh account and returns its id.
func (e *testEnv) signIn(t *testing.T) string {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), "Cook", uuid.NewString()+"@example.com", "secret")
	require.NoError(t, err)
	return resp.User.ID
}

var errFetch = errors.New("provider unavailable")

// countingClient wraps the mock provider, counts GetRecipeByID calls and
// can hold them until release is closed. Ids in fail return errFetch.
type countingClient struct {
	*client.MockClient
	calls   atomic.Int32
	release chan struct{}
	fail    map[int64]bool

	once sync.Once
}

func newCountingClient() *countingClient {
	return &countingClient{MockClient: client.NewMockClient(), fail: map[int64]bool{}}
}

func (c *countingClient) hold() { c.release = make(chan struct{}) }

func (c *countingClient) open() {
	c.once.Do(func() {
		if c.release != nil {
			close(c.release)
		}
	})
}

func (c *countingClient) GetRecipeByID(ctx context.Context, id int64) (*models.ExternalRecipe, error) {
	c.calls.Add(1)
	if c.release != nil {
		select {
		case <-c.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.fail[id] {
		return nil, errFetch
	}
	return c.MockClient.GetRecipeByID(ctx, id)
}
