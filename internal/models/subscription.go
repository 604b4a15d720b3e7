package models

import (
	"github.com/shopspring/decimal"
)

// SubscriptionTier is a recurring monthly box offering
type SubscriptionTier struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Popular     bool            `json:"popular"`
	Features    []string        `json:"features"`
}

// AllTiers returns the fixed subscription tiers, cheapest first
func AllTiers() []*SubscriptionTier {
	return []*SubscriptionTier{
		{
			ID:          "basic",
			Name:        "Essential",
			Price:       decimal.RequireFromString("39.99"),
			Description: "Perfect for beginners exploring CBD wellness",
			Features: []string{
				"3-4 premium CBD products",
				"Monthly delivery",
				"Educational wellness guide",
				"Access to community forum",
				"Free shipping",
				"Cancel anytime",
			},
		},
		{
			ID:          "premium",
			Name:        "Premium",
			Price:       decimal.RequireFromString("69.99"),
			Description: "Our most popular plan for regular CBD users",
			Popular:     true,
			Features: []string{
				"5-6 premium CBD products",
				"Monthly delivery",
				"Exclusive limited edition items",
				"Priority customer support",
				"Educational wellness guide",
				"Access to community forum",
				"Free shipping",
				"Cancel anytime",
			},
		},
		{
			ID:          "luxury",
			Name:        "Luxury",
			Price:       decimal.RequireFromString("99.99"),
			Description: "Ultimate CBD experience with premium brands",
			Features: []string{
				"7-8 premium CBD products",
				"Monthly delivery",
				"Exclusive luxury brand items",
				"First access to new products",
				"Personalized wellness consultation",
				"Priority customer support",
				"Educational wellness guide",
				"Access to community forum",
				"Free shipping",
				"Cancel anytime",
			},
		},
	}
}

// TierByID looks up a tier by its identifier
func TierByID(id string) *SubscriptionTier {
	for _, tier := range AllTiers() {
		if tier.ID == id {
			return tier
		}
	}
	return nil
}
