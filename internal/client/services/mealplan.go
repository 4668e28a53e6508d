package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/dmitrijs2005/gophrecipes/internal/client/repositories"
	"github.com/dmitrijs2005/gophrecipes/internal/common"
	"github.com/dmitrijs2005/gophrecipes/internal/dbx"
	"github.com/dmitrijs2005/gophrecipes/internal/logging"
)

// SuggestionCount is how many recipes Suggest returns.
const SuggestionCount = 3

// MealPlanService keeps the weekly plan in the metadata table.
type MealPlanService struct {
	db      *sql.DB
	repos   repositories.Manager
	creds   *CredentialStore
	recipes *RecipeService
	locks   *keyedMutex
	log     logging.Logger
}

func NewMealPlanService(db *sql.DB, repos repositories.Manager, creds *CredentialStore, recipes *RecipeService, log logging.Logger) *MealPlanService {
	return &MealPlanService{
		db:      db,
		repos:   repos,
		creds:   creds,
		recipes: recipes,
		locks:   newKeyedMutex(),
		log:     log,
	}
}

// Plan returns the stored plan, or an empty one.
func (s *MealPlanService) Plan(ctx context.Context) (*models.MealPlan, error) {
	return s.read(ctx, s.db)
}

// Suggest picks random local recipes for a meal. Breakfast, Lunch and
// Dinner filter by their lower-cased name; Snack draws from every recipe.
func (s *MealPlanService) Suggest(ctx context.Context, meal string) ([]models.Recipe, error) {
	m, ok := models.CanonicalMeal(meal)
	if !ok {
		return nil, fmt.Errorf("%w: unknown meal %q", common.ErrInvalidSlot, meal)
	}

	tag := strings.ToLower(m)
	if m == "Snack" {
		tag = ""
	}
	return s.recipes.Random(tag, SuggestionCount), nil
}

func (s *MealPlanService) Assign(ctx context.Context, day, meal string, r models.RecipeSummary) (*models.MealPlan, error) {
	return s.update(ctx, day, meal, func(p *models.MealPlan, d, m string) { p.Set(d, m, r) })
}

func (s *MealPlanService) Clear(ctx context.Context, day, meal string) (*models.MealPlan, error) {
	return s.update(ctx, day, meal, func(p *models.MealPlan, d, m string) { p.Clear(d, m) })
}

func (s *MealPlanService) update(ctx context.Context, day, meal string, fn func(p *models.MealPlan, day, meal string)) (*models.MealPlan, error) {
	if _, err := s.creds.Require(ctx); err != nil {
		return nil, err
	}

	d, ok := models.CanonicalDay(day)
	if !ok {
		return nil, fmt.Errorf("%w: unknown day %q", common.ErrInvalidSlot, day)
	}
	m, ok := models.CanonicalMeal(meal)
	if !ok {
		return nil, fmt.Errorf("%w: unknown meal %q", common.ErrInvalidSlot, meal)
	}

	unlock := s.locks.Lock(common.MealPlanKey)
	defer unlock()

	var plan *models.MealPlan
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		p, err := s.read(ctx, tx)
		if err != nil {
			return err
		}
		fn(p, d, m)

		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		plan = p
		return s.repos.Metadata(tx).Set(ctx, common.MealPlanKey, data)
	})
	if err != nil {
		return nil, fmt.Errorf("meal plan: %w", err)
	}

	s.log.Debug(ctx, "meal plan updated", "day", d, "meal", m)
	return plan, nil
}

func (s *MealPlanService) read(ctx context.Context, db dbx.DBTX) (*models.MealPlan, error) {
	raw, err := s.repos.Metadata(db).Get(ctx, common.MealPlanKey)
	if err != nil {
		return nil, fmt.Errorf("meal plan: %w", err)
	}

	plan := models.NewMealPlan()
	if len(raw) == 0 {
		return plan, nil
	}
	if err := json.Unmarshal(raw, plan); err != nil {
		return nil, fmt.Errorf("meal plan: %w", err)
	}
	if plan.Slots == nil {
		plan.Slots = map[string]map[string]models.RecipeSummary{}
	}
	return plan, nil
}
