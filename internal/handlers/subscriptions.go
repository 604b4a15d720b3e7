package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brandontaylor1/quibotanicals/internal/models"
)

// Tiers lists the subscription tiers
func (h *Handler) Tiers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"tiers": models.AllTiers(),
	})
}

type subscribeRequest struct {
	TierID string `json:"tier_id"`
}

// Subscribe adds a monthly subscription box for the chosen tier to the cart
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tier := models.TierByID(req.TierID)
	if tier == nil {
		h.jsonError(w, "Unknown subscription tier", http.StatusNotFound)
		return
	}

	item := models.NewCartItem("tier-"+tier.ID, tier.Name+" Subscription Box", tier.Price, 1)
	item.IsSubscription = true
	item.Frequency = "Monthly"
	if err := h.cartRepo.Add(item); err != nil {
		h.jsonError(w, "Failed to add subscription", http.StatusInternalServerError)
		return
	}

	h.respondWithCart(w)
}
