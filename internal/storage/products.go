package storage

import (
	"database/sql"
	"fmt"

	"github.com/brandontaylor1/quibotanicals/internal/models"
	"github.com/shopspring/decimal"
)

// ProductRepository provides catalog data access
type ProductRepository struct {
	db *DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Upsert inserts or replaces a product at the given catalog position
func (r *ProductRepository) Upsert(p *models.Product, position int) error {
	query := `
		INSERT INTO products (id, position, name, description, category, price, image, rating, review_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position = excluded.position,
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			price = excluded.price,
			image = excluded.image,
			rating = excluded.rating,
			review_count = excluded.review_count
	`
	var rating interface{}
	if p.Rating.Valid {
		rating = p.Rating.Decimal.String()
	}
	_, err := r.db.Exec(query,
		p.ID,
		position,
		p.Name,
		p.Description,
		string(p.Category),
		p.Price.String(),
		p.Image,
		rating,
		p.ReviewCount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

// List returns the full catalog in its original input order
func (r *ProductRepository) List() ([]*models.Product, error) {
	query := `
		SELECT id, name, description, category, price, image, rating, review_count
		FROM products ORDER BY position ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetByID retrieves a single product, nil when absent
func (r *ProductRepository) GetByID(id string) (*models.Product, error) {
	query := `
		SELECT id, name, description, category, price, image, rating, review_count
		FROM products WHERE id = ?
	`
	row := r.db.QueryRow(query, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// Count returns the number of catalog products
func (r *ProductRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var category string
	var price string
	var rating sql.NullString

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&category,
		&price,
		&p.Image,
		&rating,
		&p.ReviewCount,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	p.Category = models.Category(category)
	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price for %s: %w", p.ID, err)
	}
	if rating.Valid {
		d, err := decimal.NewFromString(rating.String)
		if err != nil {
			return nil, fmt.Errorf("invalid stored rating for %s: %w", p.ID, err)
		}
		p.Rating = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	return &p, nil
}
