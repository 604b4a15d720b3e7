package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shipping policy: orders over the threshold ship free
var (
	FreeShippingThreshold = decimal.NewFromInt(50)
	StandardShippingFee   = decimal.RequireFromString("9.99")
)

// CartItem is a single line in the shopping cart
type CartItem struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	Image          string          `json:"image"`
	IsSubscription bool            `json:"is_subscription"`
	Frequency      string          `json:"frequency,omitempty"` // e.g. "Monthly"
	AddedAt        time.Time       `json:"added_at"`
}

// NewCartItem creates a cart line with generated ID
func NewCartItem(productID, name string, price decimal.Decimal, quantity int) *CartItem {
	return &CartItem{
		ID:        uuid.New(),
		ProductID: productID,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC(),
	}
}

// LineTotal returns price times quantity
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart aggregates the current cart lines and derived totals
type Cart struct {
	Items []*CartItem `json:"items"`
}

// Subtotal sums all line totals
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Shipping returns the shipping fee for the current subtotal
func (c *Cart) Shipping() decimal.Decimal {
	if len(c.Items) == 0 {
		return decimal.Zero
	}
	if c.Subtotal().GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return StandardShippingFee
}

// Total returns subtotal plus shipping
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Shipping())
}

// IsEmpty returns true when no lines are present
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
