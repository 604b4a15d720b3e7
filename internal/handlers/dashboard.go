package handlers

import (
	"net/http"

	"github.com/brandontaylor1/quibotanicals/internal/middleware"
	"github.com/brandontaylor1/quibotanicals/internal/models"
	"github.com/shopspring/decimal"
)

// Dashboard serves admin summary data for the catalog
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r)
	products := h.catalogService.Products()

	byCategory := make(map[models.Category]int)
	ratingSum := decimal.Zero
	rated := 0
	reviews := 0
	for _, p := range products {
		byCategory[p.Category]++
		reviews += p.ReviewCount
		if p.Rated() {
			ratingSum = ratingSum.Add(p.Rating.Decimal)
			rated++
		}
	}

	averageRating := decimal.Zero
	if rated > 0 {
		averageRating = ratingSum.Div(decimal.NewFromInt(int64(rated))).Round(2)
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"admin":          session.Email,
		"product_count":  len(products),
		"by_category":    byCategory,
		"average_rating": averageRating,
		"review_count":   reviews,
	})
}
