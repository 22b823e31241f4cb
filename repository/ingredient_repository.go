package repository

import (
	"context"
	"errors"
	"fmt"

	"kitchen-inventory-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// IngredientRepository defines data-access operations for ingredients.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *models.Ingredient) error
	FindByID(ctx context.Context, id uint) (*models.Ingredient, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error)
	FindAll(ctx context.Context) ([]models.Ingredient, error)
	Update(ctx context.Context, ingredient *models.Ingredient) error
	AdjustQuantity(ctx context.Context, id uint, delta float64) (*models.Ingredient, bool, error)
	Delete(ctx context.Context, id uint) error
}

// GormIngredientRepository implements IngredientRepository using GORM.
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GormIngredientRepository.
func NewGormIngredientRepository(db *gorm.DB) IngredientRepository {
	return &GormIngredientRepository{db: db}
}

func (r *GormIngredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return fmt.Errorf("create ingredient: %w", err)
	}
	return nil
}

func (r *GormIngredientRepository) FindByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, "ingredient_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find ingredient: %w", err)
	}
	return &ing, nil
}

func (r *GormIngredientRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).
		Where("ingredient_id IN ?", ids).
		Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("find ingredients: %w", err)
	}
	return ingredients, nil
}

func (r *GormIngredientRepository) FindAll(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).
		Order("ingredient_id ASC").
		Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

func (r *GormIngredientRepository) Update(ctx context.Context, ingredient *models.Ingredient) error {
	if err := r.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

// AdjustQuantity applies delta to the ingredient's stock inside a transaction
// holding a row lock, so concurrent adjustments to the same ingredient
// serialize and the result matches sequential application. It returns the
// updated ingredient and whether the adjustment crossed the low-stock
// threshold.
func (r *GormIngredientRepository) AdjustQuantity(ctx context.Context, id uint, delta float64) (*models.Ingredient, bool, error) {
	var ing models.Ingredient
	var crossed bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ing, "ingredient_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		crossed = ing.QuantityDetails.ApplyDelta(delta)

		return tx.Model(&models.Ingredient{}).
			Where("ingredient_id = ?", id).
			Updates(map[string]interface{}{
				"current_quantity":  ing.QuantityDetails.CurrentQuantity,
				"times_reached_low": ing.QuantityDetails.TimesReachedLow,
			}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, fmt.Errorf("adjust quantity: %w", err)
	}
	return &ing, crossed, nil
}

func (r *GormIngredientRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Ingredient{}, "ingredient_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete ingredient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
