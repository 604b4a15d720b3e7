package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCategory_Valid(t *testing.T) {
	tests := []struct {
		category Category
		expected bool
	}{
		{CategoryCBDOils, true},
		{CategorySkincare, true},
		{CategoryWellness, true},
		{CategoryLuxury, true},
		{Category("Gardening"), false},
		{Category(""), false},
	}

	for _, tt := range tests {
		if tt.category.Valid() != tt.expected {
			t.Errorf("Valid() for %q: expected %v, got %v", tt.category, tt.expected, tt.category.Valid())
		}
	}
}

func TestAllCategories(t *testing.T) {
	categories := AllCategories()
	if len(categories) != 4 {
		t.Errorf("Expected 4 categories, got %d", len(categories))
	}
	for _, c := range categories {
		if !c.Valid() {
			t.Errorf("Expected %q to be valid", c)
		}
	}
}

func TestProduct_Rated(t *testing.T) {
	p := &Product{Name: "Pure CBD Isolate"}
	if p.Rated() {
		t.Error("Expected product without rating to be unrated")
	}

	p.Rating = decimal.NullDecimal{Decimal: decimal.RequireFromString("4.9"), Valid: true}
	if !p.Rated() {
		t.Error("Expected product with rating to be rated")
	}
}
