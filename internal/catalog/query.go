// Package catalog provides the product catalog and its query engine
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/brandontaylor1/quibotanicals/internal/models"
	"github.com/shopspring/decimal"
)

// SortMode selects the comparator applied to query results
type SortMode string

const (
	SortNameAsc    SortMode = "name-asc"
	SortPriceAsc   SortMode = "price-asc"
	SortPriceDesc  SortMode = "price-desc"
	SortRatingDesc SortMode = "rating-desc"
	SortRelevance  SortMode = "relevance" // original catalog order
)

// ParseSortMode maps a raw string to a SortMode. Unrecognized values
// fall back to relevance rather than failing.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortNameAsc, SortPriceAsc, SortPriceDesc, SortRatingDesc, SortRelevance:
		return SortMode(s)
	}
	return SortRelevance
}

// QuerySpec is one set of user-chosen search, filter and sort parameters
type QuerySpec struct {
	Text       string
	Categories []models.Category // empty means all categories
	PriceMin   decimal.Decimal
	PriceMax   decimal.Decimal
	Sort       SortMode
}

// Result is the display-ordered subset of the catalog for one query.
// Products are references into the input catalog, never copies.
type Result struct {
	Products []*models.Product `json:"products"`
	Count    int               `json:"count"`
}

// Run applies the query pipeline to an immutable catalog: text filter,
// category filter, price bounds, then exactly one stable sort. Identical
// inputs always yield identical ordered output. Run never fails: bad
// price bounds are swapped and an empty result is a normal outcome.
func Run(products []*models.Product, spec QuerySpec) Result {
	matched := make([]*models.Product, 0, len(products))

	text := strings.ToLower(strings.TrimSpace(spec.Text))

	categories := make(map[models.Category]struct{}, len(spec.Categories))
	for _, c := range spec.Categories {
		categories[c] = struct{}{}
	}

	priceMin, priceMax := spec.PriceMin, spec.PriceMax
	if priceMin.GreaterThan(priceMax) {
		priceMin, priceMax = priceMax, priceMin
	}

	for _, p := range products {
		if text != "" && !matchesText(p, text) {
			continue
		}
		if len(categories) > 0 {
			if _, ok := categories[p.Category]; !ok {
				continue
			}
		}
		if p.Price.LessThan(priceMin) || p.Price.GreaterThan(priceMax) {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, spec.Sort)

	return Result{Products: matched, Count: len(matched)}
}

func matchesText(p *models.Product, text string) bool {
	return strings.Contains(strings.ToLower(p.Name), text) ||
		strings.Contains(strings.ToLower(string(p.Category)), text) ||
		strings.Contains(strings.ToLower(p.Description), text)
}

// sortProducts applies one stable comparator. Ties keep catalog order so
// repeated identical queries return identical sequences.
func sortProducts(products []*models.Product, mode SortMode) {
	switch mode {
	case SortNameAsc:
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			a, b := products[i], products[j]
			if a.Rated() != b.Rated() {
				// unrated products sort after all rated ones
				return a.Rated()
			}
			if !a.Rated() {
				return false
			}
			return a.Rating.Decimal.GreaterThan(b.Rating.Decimal)
		})
	default:
		// relevance keeps the catalog's original input order
	}
}
