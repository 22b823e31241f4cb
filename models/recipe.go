package models

import (
	"time"
)

// RecipeComponent ties one ingredient and a per-use amount to a recipe.
// Components are owned by their recipe: they are created, replaced and
// deleted with it, never addressed on their own.
type RecipeComponent struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID     uint    `gorm:"column:recipe_id;not null;index" json:"-"`
	IngredientID uint    `gorm:"column:ingredient_id;not null" json:"ingredientID"`
	Quantity     float64 `gorm:"not null" json:"quantity"`
}

func (RecipeComponent) TableName() string { return "recipe_components" }

// RecipeUseHistory is one append-only use record for a recipe.
type RecipeUseHistory struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID uint      `gorm:"column:recipe_id;not null;index" json:"-"`
	LastUsed time.Time `gorm:"column:last_used;not null" json:"lastUsed"`
}

func (RecipeUseHistory) TableName() string { return "recipe_use_history" }

// Recipe is a named combination of ingredient quantities that can be used,
// consuming stock.
type Recipe struct {
	RecipeID         uint               `gorm:"column:recipe_id;primaryKey;autoIncrement" json:"recipeID"`
	RecipeName       string             `gorm:"column:recipe_name;type:varchar(256);not null" json:"recipeName"`
	RecipeComponents []RecipeComponent  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipeComponents"`
	UseCount         int                `gorm:"column:use_count;not null;default:0" json:"useCount"`
	UseHistory       []RecipeUseHistory `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"useHistory"`
	DateAdded        time.Time          `gorm:"column:date_added;autoCreateTime" json:"dateAdded"`
	DateUpdated      time.Time          `gorm:"column:date_updated;autoUpdateTime" json:"dateUpdated"`
}

func (Recipe) TableName() string { return "recipes" }

// RecipeComponentInput is one (ingredient, quantity) pair in a create or
// update payload.
type RecipeComponentInput struct {
	IngredientID uint    `json:"ingredientID" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
}

// CreateRecipeRequest is the payload for creating a recipe.
type CreateRecipeRequest struct {
	RecipeName       string                 `json:"recipeName" binding:"required"`
	RecipeComponents []RecipeComponentInput `json:"recipeComponents" binding:"required,min=1,dive"`
}

// UpdateRecipeRequest merges the provided fields into a recipe. Providing
// recipeComponents replaces the full component set.
type UpdateRecipeRequest struct {
	RecipeName       *string                `json:"recipeName"`
	RecipeComponents []RecipeComponentInput `json:"recipeComponents" binding:"omitempty,min=1,dive"`
}
