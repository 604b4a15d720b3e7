// Package models defines core domain types
package models

import (
	"github.com/shopspring/decimal"
)

// Category groups products by shelf
type Category string

const (
	CategoryCBDOils  Category = "CBD Oils"
	CategorySkincare Category = "Skincare"
	CategoryWellness Category = "Wellness"
	CategoryLuxury   Category = "Luxury"
)

// AllCategories returns all valid categories for iteration
func AllCategories() []Category {
	return []Category{
		CategoryCBDOils,
		CategorySkincare,
		CategoryWellness,
		CategoryLuxury,
	}
}

// Valid reports whether the category is one of the known shelves
func (c Category) Valid() bool {
	switch c {
	case CategoryCBDOils, CategorySkincare, CategoryWellness, CategoryLuxury:
		return true
	}
	return false
}

// Product represents a single catalog item. The catalog is immutable
// input to the query engine; products are never mutated after load.
type Product struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    Category            `json:"category"`
	Price       decimal.Decimal     `json:"price"`
	Image       string              `json:"image"`
	Rating      decimal.NullDecimal `json:"rating,omitempty"`
	ReviewCount int                 `json:"review_count,omitempty"`
}

// Rated reports whether the product has collected any rating
func (p *Product) Rated() bool {
	return p.Rating.Valid
}
