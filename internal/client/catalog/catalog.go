// Package catalog serves the bundled recipe collection. The data is embedded
// at build time, is read-only, and every operation is a pure function of it,
// so nothing here returns an error after Load.
package catalog

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/dmitrijs2005/gophrecipes/internal/common"
	"gopkg.in/yaml.v3"
)

//go:embed recipes.yaml
var bundled []byte

// Defaults applied when callers pass zero.
const (
	DefaultRelatedLimit = 3
	DefaultRandomCount  = 3
)

type document struct {
	Categories []models.Category `yaml:"categories"`
	Recipes    []models.Recipe   `yaml:"recipes"`
}

// Catalog is safe for concurrent use as long as the injected random source
// is.
type Catalog struct {
	recipes    []models.Recipe
	categories []models.Category
	pageSize   int
	intn       func(n int) int
}

type Option func(*Catalog)

// WithRand sets the source used by Random. intn must return a value in
// [0, n).
func WithRand(intn func(n int) int) Option {
	return func(c *Catalog) { c.intn = intn }
}

// WithPageSize overrides common.DefaultPageSize for Search and browsing.
func WithPageSize(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// Load parses the embedded collection.
func Load(opts ...Option) (*Catalog, error) {
	return Parse(bundled, opts...)
}

// Parse builds a Catalog from a YAML document with the same layout as the
// embedded one. Tags are lower-cased on load.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Recipes))
	for i := range doc.Recipes {
		r := &doc.Recipes[i]
		if r.ID == "" {
			return nil, fmt.Errorf("failed to parse catalog: recipe %d has no id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("failed to parse catalog: duplicate recipe id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
		for j, t := range r.Tags {
			r.Tags[j] = strings.ToLower(t)
		}
	}

	c := &Catalog{
		recipes:    doc.Recipes,
		categories: doc.Categories,
		pageSize:   common.DefaultPageSize,
		intn:       rand.IntN,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Catalog) GetByID(id string) (*models.Recipe, bool) {
	for i := range c.recipes {
		if c.recipes[i].ID == id {
			r := c.recipes[i]
			return &r, true
		}
	}
	return nil, false
}

// ByCategory matches the category name case-insensitively, or the lower-cased
// id against the tag set, so "vegan" finds vegan-tagged dinners.
func (c *Catalog) ByCategory(categoryID string) []models.Recipe {
	tag := strings.ToLower(categoryID)
	return c.filter(func(r models.Recipe) bool {
		return strings.EqualFold(r.Category, categoryID) || r.HasTag(tag)
	})
}

// Related returns recipes sharing the category or any tag with id, in
// catalog order and without the recipe itself.
func (c *Catalog) Related(id string, limit int) []models.Recipe {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	src, ok := c.GetByID(id)
	if !ok {
		return []models.Recipe{}
	}

	out := c.filter(func(r models.Recipe) bool {
		return r.ID != src.ID && (r.Category == src.Category || r.SharesTag(*src))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SearchQuery filters the local collection. Empty fields match everything.
type SearchQuery struct {
	Query        string
	Diet         string
	Intolerances []string
	Page         int
	PageSize     int
}

// Search matches Query as a case-insensitive substring of the title or any
// ingredient. Diet keeps recipes tagged with it; every intolerance excludes
// recipes tagged with it.
func (c *Catalog) Search(q SearchQuery) models.Page[models.Recipe] {
	needle := strings.ToLower(strings.TrimSpace(q.Query))
	diet := strings.ToLower(strings.TrimSpace(q.Diet))

	excluded := make([]string, 0, len(q.Intolerances))
	for _, t := range q.Intolerances {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			excluded = append(excluded, t)
		}
	}

	matches := c.filter(func(r models.Recipe) bool {
		if needle != "" && !matchesText(r, needle) {
			return false
		}
		if diet != "" && !r.HasTag(diet) {
			return false
		}
		for _, t := range excluded {
			if r.HasTag(t) {
				return false
			}
		}
		return true
	})

	return models.Paginate(matches, q.Page, q.PageSize, c.pageSize)
}

// Random draws count recipes uniformly with replacement from those tagged
// with tag (all recipes when tag is empty).
func (c *Catalog) Random(tag string, count int) []models.Recipe {
	if count <= 0 {
		count = DefaultRandomCount
	}

	pool := c.recipes
	if tag != "" {
		t := strings.ToLower(tag)
		pool = c.filter(func(r models.Recipe) bool { return r.HasTag(t) })
	}
	if len(pool) == 0 {
		return []models.Recipe{}
	}

	out := make([]models.Recipe, count)
	for i := range out {
		out[i] = pool[c.intn(len(pool))]
	}
	return out
}

func (c *Catalog) All(page, pageSize int) models.Page[models.Recipe] {
	return models.Paginate(c.recipes, page, pageSize, c.pageSize)
}

func (c *Catalog) ByCategoryPage(categoryID string, page, pageSize int) models.Page[models.Recipe] {
	return models.Paginate(c.ByCategory(categoryID), page, pageSize, c.pageSize)
}

// Categories returns the declared categories with counts computed from the
// current collection.
func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	for i, cat := range c.categories {
		cat.Count = len(c.ByCategory(cat.ID))
		out[i] = cat
	}
	return out
}

// Len is the number of bundled recipes.
func (c *Catalog) Len() int { return len(c.recipes) }

func (c *Catalog) filter(keep func(models.Recipe) bool) []models.Recipe {
	out := make([]models.Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func matchesText(r models.Recipe, needle string) bool {
	if strings.Contains(strings.ToLower(r.Title), needle) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), needle) {
			return true
		}
	}
	return false
}
