package catalog

import (
	"testing"

	"github.com/brandontaylor1/quibotanicals/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rating(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func testProduct(id, name string, category models.Category, p string) *models.Product {
	return &models.Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		Category:    category,
		Price:       price(p),
	}
}

func ids(result Result) []string {
	out := make([]string, 0, len(result.Products))
	for _, p := range result.Products {
		out = append(out, p.ID)
	}
	return out
}

func fullRange() (decimal.Decimal, decimal.Decimal) {
	return decimal.Zero, decimal.NewFromInt(10000)
}

func TestRun_EmptyCatalog(t *testing.T) {
	min, max := fullRange()
	result := Run(nil, QuerySpec{PriceMin: min, PriceMax: max})
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Products)
}

func TestRun_Deterministic(t *testing.T) {
	products := DefaultCatalog()
	min, max := fullRange()
	spec := QuerySpec{Text: "cbd", PriceMin: min, PriceMax: max, Sort: SortPriceAsc}

	first := Run(products, spec)
	second := Run(products, spec)
	assert.Equal(t, ids(first), ids(second))
}

func TestRun_TextFilter(t *testing.T) {
	products := []*models.Product{
		testProduct("a", "Sleep Gummies", models.CategoryWellness, "40"),
		testProduct("b", "Recovery Cream", models.CategorySkincare, "95"),
	}
	min, max := fullRange()

	result := Run(products, QuerySpec{Text: "gummies", PriceMin: min, PriceMax: max})
	assert.Equal(t, []string{"a"}, ids(result))

	// matches against category too
	result = Run(products, QuerySpec{Text: "skincare", PriceMin: min, PriceMax: max})
	assert.Equal(t, []string{"b"}, ids(result))

	// matches against description
	result = Run(products, QuerySpec{Text: "cream description", PriceMin: min, PriceMax: max})
	assert.Equal(t, []string{"b"}, ids(result))

	// case-insensitive
	result = Run(products, QuerySpec{Text: "GUMMIES", PriceMin: min, PriceMax: max})
	assert.Equal(t, []string{"a"}, ids(result))
}

func TestRun_WhitespaceTextKeepsAll(t *testing.T) {
	products := DefaultCatalog()
	min, max := fullRange()

	result := Run(products, QuerySpec{Text: "   ", PriceMin: min, PriceMax: max})
	assert.Equal(t, len(products), result.Count)
}

func TestRun_CategoryFilter(t *testing.T) {
	products := DefaultCatalog()
	min, max := fullRange()

	result := Run(products, QuerySpec{
		Categories: []models.Category{models.CategoryWellness},
		PriceMin:   min,
		PriceMax:   max,
	})
	require.NotZero(t, result.Count)
	for _, p := range result.Products {
		assert.Equal(t, models.CategoryWellness, p.Category)
	}

	// empty set means all categories
	result = Run(products, QuerySpec{PriceMin: min, PriceMax: max})
	assert.Equal(t, len(products), result.Count)
}

func TestRun_CategoryNotInCatalog(t *testing.T) {
	products := DefaultCatalog() // seed catalog has no Luxury products
	min, max := fullRange()

	result := Run(products, QuerySpec{
		Categories: []models.Category{models.CategoryLuxury},
		PriceMin:   min,
		PriceMax:   max,
	})
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Products)
}

func TestRun_PriceBoundsInclusive(t *testing.T) {
	products := DefaultCatalog()

	// exact point query returns exactly the products priced at P
	result := Run(products, QuerySpec{PriceMin: price("85"), PriceMax: price("85")})
	assert.Equal(t, []string{"prod-001", "prod-003"}, ids(result))
}

func TestRun_PriceBoundsSwappedWhenInverted(t *testing.T) {
	products := DefaultCatalog()

	inverted := Run(products, QuerySpec{PriceMin: price("100"), PriceMax: price("50")})
	normal := Run(products, QuerySpec{PriceMin: price("50"), PriceMax: price("100")})
	assert.Equal(t, ids(normal), ids(inverted))
	assert.NotZero(t, inverted.Count)
}

func TestRun_SortNameAsc(t *testing.T) {
	products := []*models.Product{
		testProduct("z", "Zeta", models.CategoryWellness, "10"),
		testProduct("a", "Alpha", models.CategoryWellness, "20"),
		testProduct("m", "Mu", models.CategoryWellness, "30"),
	}
	min, max := fullRange()

	result := Run(products, QuerySpec{PriceMin: min, PriceMax: max, Sort: SortNameAsc})
	assert.Equal(t, []string{"a", "m", "z"}, ids(result))
}

func TestRun_SortPriceDesc(t *testing.T) {
	products := DefaultCatalog()
	min, max := fullRange()

	result := Run(products, QuerySpec{PriceMin: min, PriceMax: max, Sort: SortPriceDesc})
	require.NotZero(t, result.Count)
	for i := 1; i < len(result.Products); i++ {
		assert.True(t, result.Products[i-1].Price.GreaterThanOrEqual(result.Products[i].Price))
	}
}

func TestRun_SortRatingDescUnratedLast(t *testing.T) {
	unrated := testProduct("u", "Unrated Balm", models.CategorySkincare, "30")
	low := testProduct("l", "Low Rated Oil", models.CategoryCBDOils, "60")
	low.Rating = rating("3.1")
	high := testProduct("h", "High Rated Oil", models.CategoryCBDOils, "90")
	high.Rating = rating("4.9")
	min, max := fullRange()

	result := Run([]*models.Product{unrated, low, high}, QuerySpec{PriceMin: min, PriceMax: max, Sort: SortRatingDesc})
	assert.Equal(t, []string{"h", "l", "u"}, ids(result))
}

func TestRun_RelevanceKeepsCatalogOrder(t *testing.T) {
	products := DefaultCatalog()
	min, max := fullRange()

	result := Run(products, QuerySpec{PriceMin: min, PriceMax: max, Sort: SortRelevance})
	assert.Equal(t, ids(Result{Products: products, Count: len(products)}), ids(result))
}

func TestRun_StableTiesKeepCatalogOrder(t *testing.T) {
	products := []*models.Product{
		testProduct("first", "B Same Price", models.CategoryWellness, "50"),
		testProduct("second", "A Same Price", models.CategoryWellness, "50"),
		testProduct("third", "C Cheaper", models.CategoryWellness, "10"),
	}
	min, max := fullRange()

	result := Run(products, QuerySpec{PriceMin: min, PriceMax: max, Sort: SortPriceAsc})
	assert.Equal(t, []string{"third", "first", "second"}, ids(result))
}

func TestRun_SearchScenarioPriceAsc(t *testing.T) {
	// text "cbd" matches every seed product via name, category or
	// description; ascending price with ties broken by catalog order
	result := Run(DefaultCatalog(), QuerySpec{
		Text:     "cbd",
		PriceMin: price("0"),
		PriceMax: price("200"),
		Sort:     SortPriceAsc,
	})
	assert.Equal(t, []string{
		"prod-006", // 40
		"prod-008", // 55
		"prod-005", // 65
		"prod-002", // 75
		"prod-001", // 85, before prod-003 by catalog order
		"prod-003", // 85
		"prod-004", // 95
		"prod-007", // 120
	}, ids(result))
}

func TestRun_SkincareUnderFiftyScenario(t *testing.T) {
	// no seed Skincare product costs 50 or less: empty result, no error
	result := Run(DefaultCatalog(), QuerySpec{
		Categories: []models.Category{models.CategorySkincare},
		PriceMin:   price("0"),
		PriceMax:   price("50"),
	})
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Products)
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		raw      string
		expected SortMode
	}{
		{"name-asc", SortNameAsc},
		{"price-asc", SortPriceAsc},
		{"price-desc", SortPriceDesc},
		{"rating-desc", SortRatingDesc},
		{"relevance", SortRelevance},
		{"", SortRelevance},
		{"bogus", SortRelevance},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseSortMode(tt.raw), "raw %q", tt.raw)
	}
}

func TestRun_ReturnsReferencesNotCopies(t *testing.T) {
	products := DefaultCatalog()
	min, max := fullRange()

	result := Run(products, QuerySpec{PriceMin: min, PriceMax: max})
	require.Equal(t, len(products), result.Count)
	for i, p := range result.Products {
		assert.Same(t, products[i], p)
	}
}
