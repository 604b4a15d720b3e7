package storage

import (
	"database/sql"
	"fmt"

	"github.com/brandontaylor1/quibotanicals/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartRepository provides cart data access
type CartRepository struct {
	db *DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *DB) *CartRepository {
	return &CartRepository{db: db}
}

// Add inserts a cart line. If a non-subscription line for the same
// product already exists its quantity is incremented instead.
func (r *CartRepository) Add(item *models.CartItem) error {
	if !item.IsSubscription {
		existing, err := r.getByProductID(item.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			return r.SetQuantity(existing.ID, existing.Quantity+item.Quantity)
		}
	}

	query := `
		INSERT INTO cart_items (id, product_id, name, price, quantity, image, is_subscription, frequency, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		item.ID.String(),
		item.ProductID,
		item.Name,
		item.Price.String(),
		item.Quantity,
		item.Image,
		item.IsSubscription,
		item.Frequency,
		item.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

// SetQuantity updates a line's quantity; zero removes the line
func (r *CartRepository) SetQuantity(id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return r.Remove(id)
	}
	_, err := r.db.Exec("UPDATE cart_items SET quantity = ? WHERE id = ?", quantity, id.String())
	return err
}

// Remove deletes a cart line. Removing an absent line is a no-op.
func (r *CartRepository) Remove(id uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM cart_items WHERE id = ?", id.String())
	return err
}

// Clear empties the cart
func (r *CartRepository) Clear() error {
	_, err := r.db.Exec("DELETE FROM cart_items")
	return err
}

// Get returns the current cart with all lines in insertion order
func (r *CartRepository) Get() (*models.Cart, error) {
	query := `
		SELECT id, product_id, name, price, quantity, image, is_subscription, frequency, added_at
		FROM cart_items ORDER BY added_at ASC, id ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	defer rows.Close()

	cart := &models.Cart{}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	return cart, rows.Err()
}

func (r *CartRepository) getByProductID(productID string) (*models.CartItem, error) {
	query := `
		SELECT id, product_id, name, price, quantity, image, is_subscription, frequency, added_at
		FROM cart_items WHERE product_id = ? AND is_subscription = 0
	`
	item, err := scanCartItem(r.db.QueryRow(query, productID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return item, err
}

func scanCartItem(row rowScanner) (*models.CartItem, error) {
	var item models.CartItem
	var id, price string

	err := row.Scan(
		&id,
		&item.ProductID,
		&item.Name,
		&price,
		&item.Quantity,
		&item.Image,
		&item.IsSubscription,
		&item.Frequency,
		&item.AddedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan cart item: %w", err)
	}

	item.ID, _ = uuid.Parse(id)
	item.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price for cart item %s: %w", id, err)
	}

	return &item, nil
}
