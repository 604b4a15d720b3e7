package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brandontaylor1/quibotanicals/internal/models"
	"github.com/google/uuid"
)

type cartResponse struct {
	Items    []*models.CartItem `json:"items"`
	Subtotal string             `json:"subtotal"`
	Shipping string             `json:"shipping"`
	Total    string             `json:"total"`
	Count    int                `json:"count"`
}

func newCartResponse(cart *models.Cart) cartResponse {
	items := cart.Items
	if items == nil {
		items = []*models.CartItem{}
	}
	return cartResponse{
		Items:    items,
		Subtotal: cart.Subtotal().StringFixed(2),
		Shipping: cart.Shipping().StringFixed(2),
		Total:    cart.Total().StringFixed(2),
		Count:    len(items),
	}
}

// GetCart returns the current cart with totals
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartRepo.Get()
	if err != nil {
		h.jsonError(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, newCartResponse(cart))
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddToCart adds a catalog product to the cart
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	product := h.catalogService.Get(req.ProductID)
	if product == nil {
		h.jsonError(w, "Product not found", http.StatusNotFound)
		return
	}

	item := models.NewCartItem(product.ID, product.Name, product.Price, req.Quantity)
	item.Image = product.Image
	if err := h.cartRepo.Add(item); err != nil {
		h.jsonError(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}

	h.respondWithCart(w)
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets a line's quantity; zero removes the line
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cartItemID(w, r)
	if !ok {
		return
	}

	var req updateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Quantity < 0 {
		h.jsonError(w, "Quantity cannot be negative", http.StatusBadRequest)
		return
	}

	if err := h.cartRepo.SetQuantity(id, req.Quantity); err != nil {
		h.jsonError(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	h.respondWithCart(w)
}

// RemoveCartItem deletes a cart line
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cartItemID(w, r)
	if !ok {
		return
	}

	if err := h.cartRepo.Remove(id); err != nil {
		h.jsonError(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	h.respondWithCart(w)
}

func (h *Handler) cartItemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/cart/")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.jsonError(w, "Invalid cart item id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondWithCart(w http.ResponseWriter) {
	cart, err := h.cartRepo.Get()
	if err != nil {
		h.jsonError(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, newCartResponse(cart))
}
