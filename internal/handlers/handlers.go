// Package handlers provides HTTP request handlers
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brandontaylor1/quibotanicals/internal/catalog"
	"github.com/brandontaylor1/quibotanicals/internal/config"
	"github.com/brandontaylor1/quibotanicals/internal/services/auth"
	"github.com/brandontaylor1/quibotanicals/internal/storage"
)

// Handler contains all HTTP handlers and dependencies
type Handler struct {
	cfg            *config.Config
	authService    *auth.Service
	catalogService *catalog.Service
	productRepo    *storage.ProductRepository
	cartRepo       *storage.CartRepository
}

// New creates a new handler with all dependencies
func New(
	cfg *config.Config,
	authService *auth.Service,
	catalogService *catalog.Service,
	productRepo *storage.ProductRepository,
	cartRepo *storage.CartRepository,
) *Handler {
	return &Handler{
		cfg:            cfg,
		authService:    authService,
		catalogService: catalogService,
		productRepo:    productRepo,
		cartRepo:       cartRepo,
	}
}

// writeJSON writes a JSON response with the given status
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
	}
}

// jsonError writes a JSON error response
func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
