package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, opts ...Option) *Catalog {
	t.Helper()
	c, err := Load(opts...)
	require.NoError(t, err)
	return c
}

func ids(rs []models.Recipe) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestLoad_Bundled(t *testing.T) {
	c := load(t)
	assert.Equal(t, 6, c.Len())

	r, ok := c.GetByID("3")
	require.True(t, ok)
	assert.Equal(t, "Vegetable Stir Fry", r.Title)
	assert.Len(t, r.Ingredients, 13)

	_, ok = c.GetByID("99")
	assert.False(t, ok)
}

func TestSearch_PastaGivesOneItemOnePage(t *testing.T) {
	p := load(t).Search(SearchQuery{Query: "pasta"})

	require.Len(t, p.Items, 1)
	assert.Equal(t, "Creamy Garlic Pasta", p.Items[0].Title)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 1, p.CurrentPage)
}

func TestSearch_MatchesIngredientsCaseInsensitive(t *testing.T) {
	p := load(t).Search(SearchQuery{Query: "MOZZARELLA"})
	assert.Equal(t, []string{"6"}, ids(p.Items))
}

func TestSearch_DietAndIntolerances(t *testing.T) {
	c := load(t)

	veg := c.Search(SearchQuery{Diet: "Vegetarian"})
	assert.Equal(t, []string{"1", "6"}, ids(veg.Items))

	noItalian := c.Search(SearchQuery{Diet: "vegetarian", Intolerances: []string{"pizza"}})
	assert.Equal(t, []string{"1"}, ids(noItalian.Items))

	several := c.Search(SearchQuery{Intolerances: []string{"healthy", " Italian ", ""}})
	assert.Equal(t, []string{"2"}, ids(several.Items))
}

func TestSearch_PaginationDefaults(t *testing.T) {
	c := load(t)

	all := c.Search(SearchQuery{Page: -3})
	assert.Equal(t, 1, all.CurrentPage)
	assert.Len(t, all.Items, 6)
	assert.Equal(t, 1, all.TotalPages)

	second := c.Search(SearchQuery{Page: 2, PageSize: 4})
	assert.Equal(t, []string{"5", "6"}, ids(second.Items))
	assert.Equal(t, 2, second.TotalPages)
}

func TestByCategory_Desserts(t *testing.T) {
	got := load(t).ByCategory("desserts")
	require.Len(t, got, 1)
	assert.Equal(t, "Classic Chocolate Chip Cookies", got[0].Title)
}

func TestByCategory_TagMatch(t *testing.T) {
	c := load(t)
	assert.Equal(t, []string{"3"}, ids(c.ByCategory("Vegan")))
	assert.Equal(t, []string{"1", "3", "6"}, ids(c.ByCategory("DINNER")))
	assert.Empty(t, c.ByCategory("lunch"))
}

func TestRelated_ExcludesSelfLimitedInOrder(t *testing.T) {
	c := load(t)

	got := c.Related("1", 0)
	assert.LessOrEqual(t, len(got), 3)
	assert.NotContains(t, ids(got), "1")
	assert.Equal(t, []string{"3", "4", "5"}, ids(got))

	assert.Equal(t, []string{"3"}, ids(c.Related("1", 1)))
	assert.Empty(t, c.Related("nope", 3))
}

func TestRelated_SharedCategoryOnly(t *testing.T) {
	doc := `
recipes:
  - id: a
    category: Dinner
    tags: [one]
  - id: b
    category: Dinner
    tags: [two]
  - id: c
    category: Lunch
    tags: [three]
`
	c, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(c.Related("a", 3)))
}

func TestRandom_InjectedSource(t *testing.T) {
	var calls []int
	seq := []int{1, 0, 1}
	c := load(t, WithRand(func(n int) int {
		calls = append(calls, n)
		return seq[len(calls)-1]
	}))

	got := c.Random("Vegetarian", 0)
	assert.Equal(t, []string{"6", "1", "6"}, ids(got))
	assert.Equal(t, []int{2, 2, 2}, calls)
}

func TestRandom_EmptyPool(t *testing.T) {
	c := load(t, WithRand(func(int) int { panic("must not be called") }))
	assert.Empty(t, c.Random("lunch", 5))
}

func TestRandom_UntaggedUsesWholeCatalog(t *testing.T) {
	c := load(t)
	got := c.Random("", 20)
	require.Len(t, got, 20)
	for _, r := range got {
		_, ok := c.GetByID(r.ID)
		assert.True(t, ok)
	}
}

func TestPagination_ThirteenItemsThreePages(t *testing.T) {
	var b strings.Builder
	b.WriteString("recipes:\n")
	for i := 1; i <= 13; i++ {
		fmt.Fprintf(&b, "  - id: \"%d\"\n    title: Recipe %d\n", i, i)
	}

	c, err := Parse([]byte(b.String()))
	require.NoError(t, err)

	last := c.All(3, 6)
	assert.Equal(t, 3, last.TotalPages)
	assert.Equal(t, []string{"13"}, ids(last.Items))

	search := c.Search(SearchQuery{Query: "recipe", Page: 3})
	assert.Equal(t, 3, search.TotalPages)
	assert.Len(t, search.Items, 1)
}

func TestCategories_LiveCounts(t *testing.T) {
	got := load(t).Categories()

	counts := map[string]int{}
	for _, cat := range got {
		counts[cat.ID] = cat.Count
	}
	assert.Equal(t, map[string]int{"breakfast": 2, "lunch": 0, "dinner": 3, "desserts": 1, "vegan": 1}, counts)
}

func TestByCategoryPage(t *testing.T) {
	p := load(t).ByCategoryPage("dinner", 2, 2)
	assert.Equal(t, []string{"6"}, ids(p.Items))
	assert.Equal(t, 2, p.TotalPages)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("recipes: [ {id: a}, {id: a} ]"))
	assert.ErrorContains(t, err, "duplicate recipe id")

	_, err = Parse([]byte("recipes: [ {title: x} ]"))
	assert.ErrorContains(t, err, "has no id")

	_, err = Parse([]byte("recipes: {"))
	require.Error(t, err)
}
