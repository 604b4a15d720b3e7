// QuiBotanicals storefront API
// Entry point for the web server
package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/brandontaylor1/quibotanicals/internal/catalog"
	"github.com/brandontaylor1/quibotanicals/internal/config"
	"github.com/brandontaylor1/quibotanicals/internal/handlers"
	"github.com/brandontaylor1/quibotanicals/internal/kv"
	"github.com/brandontaylor1/quibotanicals/internal/middleware"
	"github.com/brandontaylor1/quibotanicals/internal/services/auth"
	"github.com/brandontaylor1/quibotanicals/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := storage.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	productRepo := storage.NewProductRepository(db)
	cartRepo := storage.NewCartRepository(db)

	// Seed the catalog
	if err := catalog.Seed(productRepo); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// Select the session store backend
	sessionStore, err := newSessionStore(cfg, db)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}

	// Initialize services
	verifier, err := auth.NewStaticVerifier(cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to create credential verifier: %v", err)
	}
	authService := auth.NewService(cfg, sessionStore, verifier)
	if err := authService.Initialize(context.Background()); err != nil {
		if errors.Is(err, auth.ErrStorageUnavailable) {
			log.Printf("Session storage unavailable, running with in-memory sessions: %v", err)
		} else {
			log.Fatalf("Failed to initialize auth service: %v", err)
		}
	}

	catalogService, err := catalog.NewService(catalog.NewRepositorySource(productRepo))
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Initialize handlers
	h := handlers.New(cfg, authService, catalogService, productRepo, cartRepo)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuth(authService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes - catalog
	mux.HandleFunc("/api/products", h.Products)
	mux.HandleFunc("/api/products/", h.ProductDetail)
	mux.HandleFunc("/api/categories", h.Categories)

	// Public routes - subscriptions
	mux.HandleFunc("/api/subscriptions/tiers", h.Tiers)
	mux.HandleFunc("/api/subscriptions/subscribe", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.Subscribe(w, r)
	})

	// Public routes - cart
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetCart(w, r)
		case http.MethodPost:
			h.AddToCart(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/cart/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			h.UpdateCartItem(w, r)
		case http.MethodDelete:
			h.RemoveCartItem(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Admin routes
	mux.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.Login(w, r)
	})
	mux.HandleFunc("/api/admin/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.Logout(w, r)
	})
	mux.HandleFunc("/api/admin/session", h.SessionInfo)
	mux.Handle("/api/admin/dashboard", authMiddleware.RequireAdmin(http.HandlerFunc(h.Dashboard)))

	// Apply global middleware
	handler := middleware.Chain(
		mux,
		middleware.Recover,
		middleware.SecurityHeaders,
		middleware.Logger,
	)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("QuiBotanicals server starting on http://localhost%s", addr)
	log.Printf("Environment: %s", cfg.Environment)

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// newSessionStore picks the durable key-value backend from configuration
func newSessionStore(cfg *config.Config, db *storage.DB) (kv.Store, error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		return kv.NewRedisStoreFromURL(cfg.RedisURL)
	case config.SessionStoreMemory:
		return kv.NewMemoryStore(), nil
	default:
		return kv.NewSQLiteStore(db.DB), nil
	}
}
