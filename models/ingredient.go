package models

import (
	"time"
)

// UnitDetails describes how an ingredient is measured and priced.
type UnitDetails struct {
	UnitOfMeasurement string   `gorm:"column:unit_of_measurement;type:varchar(64);not null" json:"unitOfMeasurement"`
	PricePerUnit      *float64 `gorm:"column:price_per_unit" json:"pricePerUnit,omitempty"`
}

// QuantityDetails tracks stock levels and the low-stock alert threshold.
type QuantityDetails struct {
	CurrentQuantity  float64  `gorm:"column:current_quantity;not null;default:0" json:"currentQuantity"`
	MaxQuantityLimit *float64 `gorm:"column:max_quantity_limit" json:"maxQuantityLimit,omitempty"`
	AlertLowQuantity *float64 `gorm:"column:alert_low_quantity" json:"alertLowQuantity,omitempty"`
	TimesReachedLow  int      `gorm:"column:times_reached_low;not null;default:0" json:"timesReachedLow"`
}

// ApplyDelta adjusts the current quantity by delta, clamping at zero.
// It returns true when the adjustment crosses from above the alert threshold
// to at-or-below it; only that transition bumps TimesReachedLow, so repeated
// adjustments that stay below the threshold do not re-increment the counter.
func (q *QuantityDetails) ApplyDelta(delta float64) bool {
	before := q.CurrentQuantity
	after := before + delta
	if after < 0 {
		after = 0
	}
	q.CurrentQuantity = after

	if q.AlertLowQuantity == nil {
		return false
	}
	threshold := *q.AlertLowQuantity
	if before > threshold && after <= threshold {
		q.TimesReachedLow++
		return true
	}
	return false
}

// Ingredient is a stocked inventory item persisted in Postgres.
type Ingredient struct {
	IngredientID    uint            `gorm:"column:ingredient_id;primaryKey;autoIncrement" json:"ingredientID"`
	ProductName     string          `gorm:"column:product_name;type:varchar(256);not null" json:"productName"`
	UnitDetails     UnitDetails     `gorm:"embedded" json:"unitDetails"`
	QuantityDetails QuantityDetails `gorm:"embedded" json:"quantityDetails"`
	DateAdded       time.Time       `gorm:"column:date_added;autoCreateTime" json:"dateAdded"`
	DateUpdated     time.Time       `gorm:"column:date_updated;autoUpdateTime" json:"dateUpdated"`
}

func (Ingredient) TableName() string { return "ingredients" }

// CreateIngredientRequest is the payload for creating an ingredient.
type CreateIngredientRequest struct {
	ProductName       string   `json:"productName" binding:"required"`
	UnitOfMeasurement string   `json:"unitOfMeasurement" binding:"required"`
	PricePerUnit      *float64 `json:"pricePerUnit" binding:"omitempty,gte=0"`
	CurrentQuantity   float64  `json:"currentQuantity" binding:"gte=0"`
	MaxQuantityLimit  *float64 `json:"maxQuantityLimit" binding:"omitempty,gte=0"`
	AlertLowQuantity  *float64 `json:"alertLowQuantity" binding:"omitempty,gte=0"`
}

// UpdateIngredientRequest merges the provided fields into an ingredient.
// Quantity changes go through the adjust endpoint, not here.
type UpdateIngredientRequest struct {
	ProductName       *string  `json:"productName"`
	UnitOfMeasurement *string  `json:"unitOfMeasurement"`
	PricePerUnit      *float64 `json:"pricePerUnit" binding:"omitempty,gte=0"`
	MaxQuantityLimit  *float64 `json:"maxQuantityLimit" binding:"omitempty,gte=0"`
	AlertLowQuantity  *float64 `json:"alertLowQuantity" binding:"omitempty,gte=0"`
}

// AdjustQuantityRequest is the payload for a stock adjustment. Negative
// deltas are consumption; positive deltas are restocking.
type AdjustQuantityRequest struct {
	Delta float64 `json:"delta" binding:"required"`
}
