package catalog

import (
	"fmt"
	"sync"

	"github.com/brandontaylor1/quibotanicals/internal/models"
	"github.com/brandontaylor1/quibotanicals/internal/storage"
	"github.com/shopspring/decimal"
)

// Source yields the catalog as an ordered sequence of products
type Source interface {
	Products() ([]*models.Product, error)
}

// StaticSource serves a fixed in-memory product list
type StaticSource struct {
	products []*models.Product
}

// NewStaticSource creates a source over a fixed list
func NewStaticSource(products []*models.Product) *StaticSource {
	return &StaticSource{products: products}
}

func (s *StaticSource) Products() ([]*models.Product, error) {
	return s.products, nil
}

// RepositorySource materializes the catalog from the product table
type RepositorySource struct {
	repo *storage.ProductRepository
}

// NewRepositorySource creates a source backed by the product repository
func NewRepositorySource(repo *storage.ProductRepository) *RepositorySource {
	return &RepositorySource{repo: repo}
}

func (s *RepositorySource) Products() ([]*models.Product, error) {
	return s.repo.List()
}

// Service holds the materialized catalog snapshot and answers queries.
// The snapshot is read-only once loaded, so queries are safe to run
// concurrently without coordination.
type Service struct {
	mu       sync.RWMutex
	source   Source
	products []*models.Product
}

// NewService creates a catalog service and loads the initial snapshot
func NewService(source Source) (*Service, error) {
	s := &Service{source: source}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh re-materializes the catalog from its source
func (s *Service) Refresh() error {
	products, err := s.source.Products()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

// Products returns the current catalog snapshot in relevance order
func (s *Service) Products() []*models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Query runs one QuerySpec against the current snapshot
func (s *Service) Query(spec QuerySpec) Result {
	return Run(s.Products(), spec)
}

// Get returns the product with the given ID, nil when absent
func (s *Service) Get(id string) *models.Product {
	for _, p := range s.Products() {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// DefaultCatalog returns the seed catalog in relevance order
func DefaultCatalog() []*models.Product {
	return []*models.Product{
		seedProduct("prod-001", "Premium CBD Wellness Oil", "Our signature CBD oil blend for daily wellness", models.CategoryCBDOils, "85", "4.8", 124),
		seedProduct("prod-002", "CBD Wellness Serum", "Premium CBD serum for daily wellness", models.CategorySkincare, "75", "4.6", 89),
		seedProduct("prod-003", "Botanical Balance Tincture", "Full-spectrum CBD tincture for balance", models.CategoryWellness, "85", "4.9", 156),
		seedProduct("prod-004", "Luxury Recovery Cream", "Luxurious CBD-infused recovery cream", models.CategorySkincare, "95", "4.7", 203),
		seedProduct("prod-005", "Calm & Focus Capsules", "CBD capsules for mental clarity", models.CategoryWellness, "65", "4.5", 78),
		seedProduct("prod-006", "Sleep Support Gummies", "CBD gummies for better sleep", models.CategoryWellness, "40", "4.4", 95),
		seedProduct("prod-007", "Pure CBD Isolate", "Premium CBD isolate for maximum potency", models.CategoryCBDOils, "120", "4.9", 67),
		seedProduct("prod-008", "Soothing Face Mask", "CBD-infused face mask for relaxation", models.CategorySkincare, "55", "4.3", 112),
	}
}

func seedProduct(id, name, description string, category models.Category, price, rating string, reviews int) *models.Product {
	return &models.Product{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		Price:       decimal.RequireFromString(price),
		Image:       "/static/products/" + id + ".jpg",
		Rating:      decimal.NullDecimal{Decimal: decimal.RequireFromString(rating), Valid: true},
		ReviewCount: reviews,
	}
}

// Seed writes the default catalog into the product table, preserving
// input order as the stored position
func Seed(repo *storage.ProductRepository) error {
	for i, p := range DefaultCatalog() {
		if err := repo.Upsert(p, i); err != nil {
			return err
		}
	}
	return nil
}
