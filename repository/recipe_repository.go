package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kitchen-inventory-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeRepository defines data-access operations for recipes and their
// owned components and use history.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	FindByID(ctx context.Context, id uint) (*models.Recipe, error)
	FindAll(ctx context.Context) ([]models.Recipe, error)
	UpdateName(ctx context.Context, id uint, name string) error
	ReplaceComponents(ctx context.Context, id uint, components []models.RecipeComponent) error
	RecordUse(ctx context.Context, id uint, usedAt time.Time) error
	Delete(ctx context.Context, id uint) error
}

// GormRecipeRepository implements RecipeRepository using GORM.
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository.
func NewGormRecipeRepository(db *gorm.DB) RecipeRepository {
	return &GormRecipeRepository{db: db}
}

func (r *GormRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

func (r *GormRecipeRepository) FindByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("RecipeComponents").
		Preload("UseHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("last_used ASC")
		}).
		First(&recipe, "recipe_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return &recipe, nil
}

func (r *GormRecipeRepository) FindAll(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("RecipeComponents").
		Preload("UseHistory").
		Order("recipe_id ASC").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (r *GormRecipeRepository) UpdateName(ctx context.Context, id uint, name string) error {
	res := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("recipe_id = ?", id).
		Update("recipe_name", name)
	if res.Error != nil {
		return fmt.Errorf("update recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceComponents swaps the recipe's full component set in one
// transaction; a partial replacement is never visible.
func (r *GormRecipeRepository) ReplaceComponents(ctx context.Context, id uint, components []models.RecipeComponent) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&recipe, "recipe_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeComponent{}).Error; err != nil {
			return err
		}
		for i := range components {
			components[i].ID = 0
			components[i].RecipeID = id
		}
		return tx.Create(&components).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("replace components: %w", err)
	}
	return nil
}

// RecordUse appends one use record and increments the use counter in a
// single transaction, keeping useCount equal to the history length.
func (r *GormRecipeRepository) RecordUse(ctx context.Context, id uint, usedAt time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&recipe, "recipe_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		use := models.RecipeUseHistory{RecipeID: id, LastUsed: usedAt}
		if err := tx.Create(&use).Error; err != nil {
			return err
		}
		return tx.Model(&models.Recipe{}).
			Where("recipe_id = ?", id).
			Update("use_count", gorm.Expr("use_count + 1")).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("record use: %w", err)
	}
	return nil
}

func (r *GormRecipeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Recipe{}, "recipe_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeComponent{}).Error; err != nil {
			return err
		}
		return tx.Where("recipe_id = ?", id).Delete(&models.RecipeUseHistory{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}
