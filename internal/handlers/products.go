package handlers

import (
	"net/http"
	"strings"

	"github.com/brandontaylor1/quibotanicals/internal/catalog"
	"github.com/brandontaylor1/quibotanicals/internal/models"
	"github.com/shopspring/decimal"
)

// Price bounds default to the full range when not supplied
var (
	defaultPriceMin = decimal.Zero
	defaultPriceMax = decimal.NewFromInt(10000)
)

// Products runs a catalog query from URL parameters:
// q, category (repeatable), price_min, price_max, sort.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	spec := catalog.QuerySpec{
		Text:     params.Get("q"),
		PriceMin: parsePrice(params.Get("price_min"), defaultPriceMin),
		PriceMax: parsePrice(params.Get("price_max"), defaultPriceMax),
		Sort:     catalog.ParseSortMode(params.Get("sort")),
	}
	for _, c := range params["category"] {
		if c = strings.TrimSpace(c); c != "" {
			spec.Categories = append(spec.Categories, models.Category(c))
		}
	}

	h.writeJSON(w, http.StatusOK, h.catalogService.Query(spec))
}

// ProductDetail serves a single product by ID
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if id == "" || strings.Contains(id, "/") {
		h.jsonError(w, "Product not found", http.StatusNotFound)
		return
	}

	product := h.catalogService.Get(id)
	if product == nil {
		h.jsonError(w, "Product not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

// Categories lists the catalog's category shelves
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": models.AllCategories(),
	})
}

// parsePrice falls back to the default for absent or malformed values;
// the original UI's sliders could only produce numbers, so a bad value
// is treated as unset rather than rejected.
func parsePrice(raw string, fallback decimal.Decimal) decimal.Decimal {
	if raw == "" {
		return fallback
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return fallback
	}
	return price
}
