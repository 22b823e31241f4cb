package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"kitchen-inventory-service/models"
	"kitchen-inventory-service/repository"

	"go.uber.org/zap"
)

// Recorder receives usage events emitted by the stores. Implemented by
// ReportService; a failed append is a storage fault surfaced to the caller,
// never retried here.
type Recorder interface {
	Record(ctx context.Context, reportType models.ReportType, entityID uint, entityName string, count int) error
}

// IngredientService defines the business logic interface for ingredients.
type IngredientService interface {
	Create(ctx context.Context, req *models.CreateIngredientRequest) (*models.Ingredient, *ServiceError)
	GetByID(ctx context.Context, id uint) (*models.Ingredient, *ServiceError)
	List(ctx context.Context) ([]models.Ingredient, *ServiceError)
	Update(ctx context.Context, id uint, req *models.UpdateIngredientRequest) (*models.Ingredient, *ServiceError)
	AdjustQuantity(ctx context.Context, id uint, delta float64) (*models.Ingredient, *ServiceError)
	Delete(ctx context.Context, id uint) *ServiceError
}

type ingredientServiceImpl struct {
	repo     repository.IngredientRepository
	recorder Recorder
	logger   *zap.Logger
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(repo repository.IngredientRepository, recorder Recorder, logger *zap.Logger) IngredientService {
	return &ingredientServiceImpl{repo: repo, recorder: recorder, logger: logger}
}

// Create validates and persists a new ingredient, then records an
// INGREDIENTS_CREATED event.
func (s *ingredientServiceImpl) Create(ctx context.Context, req *models.CreateIngredientRequest) (*models.Ingredient, *ServiceError) {
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, validationError("productName must not be empty")
	}
	if strings.TrimSpace(req.UnitOfMeasurement) == "" {
		return nil, validationError("unitOfMeasurement must not be empty")
	}
	if req.CurrentQuantity < 0 {
		return nil, validationError("currentQuantity must not be negative")
	}

	ingredient := &models.Ingredient{
		ProductName: req.ProductName,
		UnitDetails: models.UnitDetails{
			UnitOfMeasurement: req.UnitOfMeasurement,
			PricePerUnit:      req.PricePerUnit,
		},
		QuantityDetails: models.QuantityDetails{
			CurrentQuantity:  req.CurrentQuantity,
			MaxQuantityLimit: req.MaxQuantityLimit,
			AlertLowQuantity: req.AlertLowQuantity,
		},
	}

	if err := s.repo.Create(ctx, ingredient); err != nil {
		s.logger.Error("Failed to create ingredient", zap.Error(err))
		return nil, storageFaultError("Failed to create ingredient")
	}

	if err := s.recorder.Record(ctx, models.ReportIngredientsCreated, ingredient.IngredientID, ingredient.ProductName, 1); err != nil {
		s.logger.Error("Failed to record ingredient creation", zap.Error(err))
		return nil, storageFaultError("Ingredient created but event recording failed")
	}

	s.logger.Info("Ingredient created",
		zap.Uint("ingredient_id", ingredient.IngredientID),
		zap.String("product_name", ingredient.ProductName),
	)
	return ingredient, nil
}

func (s *ingredientServiceImpl) GetByID(ctx context.Context, id uint) (*models.Ingredient, *ServiceError) {
	ingredient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("Ingredient not found")
		}
		s.logger.Error("Failed to load ingredient", zap.Uint("ingredient_id", id), zap.Error(err))
		return nil, storageFaultError("Failed to load ingredient")
	}
	return ingredient, nil
}

func (s *ingredientServiceImpl) List(ctx context.Context) ([]models.Ingredient, *ServiceError) {
	ingredients, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list ingredients", zap.Error(err))
		return nil, storageFaultError("Failed to list ingredients")
	}
	return ingredients, nil
}

// Update merges the provided fields. Quantity and the low-stock counter are
// untouched here; stock changes go through AdjustQuantity.
func (s *ingredientServiceImpl) Update(ctx context.Context, id uint, req *models.UpdateIngredientRequest) (*models.Ingredient, *ServiceError) {
	ingredient, svcErr := s.GetByID(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}

	if req.ProductName != nil {
		if strings.TrimSpace(*req.ProductName) == "" {
			return nil, validationError("productName must not be empty")
		}
		ingredient.ProductName = *req.ProductName
	}
	if req.UnitOfMeasurement != nil {
		if strings.TrimSpace(*req.UnitOfMeasurement) == "" {
			return nil, validationError("unitOfMeasurement must not be empty")
		}
		ingredient.UnitDetails.UnitOfMeasurement = *req.UnitOfMeasurement
	}
	if req.PricePerUnit != nil {
		if *req.PricePerUnit < 0 {
			return nil, validationError("pricePerUnit must not be negative")
		}
		ingredient.UnitDetails.PricePerUnit = req.PricePerUnit
	}
	if req.MaxQuantityLimit != nil {
		ingredient.QuantityDetails.MaxQuantityLimit = req.MaxQuantityLimit
	}
	if req.AlertLowQuantity != nil {
		ingredient.QuantityDetails.AlertLowQuantity = req.AlertLowQuantity
	}

	if err := s.repo.Update(ctx, ingredient); err != nil {
		s.logger.Error("Failed to update ingredient", zap.Uint("ingredient_id", id), zap.Error(err))
		return nil, storageFaultError("Failed to update ingredient")
	}
	return ingredient, nil
}

// AdjustQuantity applies a stock delta, clamped at zero. Consumption
// (negative delta) records an INGREDIENT_USED event with the consumed
// amount; a threshold crossing additionally records
// TIMES_INGREDIENT_REACHED_LOW.
func (s *ingredientServiceImpl) AdjustQuantity(ctx context.Context, id uint, delta float64) (*models.Ingredient, *ServiceError) {
	ingredient, crossedLow, err := s.repo.AdjustQuantity(ctx, id, delta)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("Ingredient not found")
		}
		s.logger.Error("Failed to adjust quantity", zap.Uint("ingredient_id", id), zap.Error(err))
		return nil, storageFaultError("Failed to adjust quantity")
	}

	if delta < 0 {
		count := int(math.Ceil(-delta))
		if count < 1 {
			count = 1
		}
		if err := s.recorder.Record(ctx, models.ReportIngredientUsed, id, ingredient.ProductName, count); err != nil {
			s.logger.Error("Failed to record ingredient usage", zap.Uint("ingredient_id", id), zap.Error(err))
			return nil, storageFaultError("Quantity adjusted but event recording failed")
		}
	}
	if crossedLow {
		if err := s.recorder.Record(ctx, models.ReportTimesIngredientReachedLow, id, ingredient.ProductName, 1); err != nil {
			s.logger.Error("Failed to record low-stock event", zap.Uint("ingredient_id", id), zap.Error(err))
			return nil, storageFaultError("Quantity adjusted but event recording failed")
		}
		s.logger.Warn("Ingredient reached low stock",
			zap.Uint("ingredient_id", id),
			zap.String("product_name", ingredient.ProductName),
			zap.Float64("current_quantity", ingredient.QuantityDetails.CurrentQuantity),
		)
	}

	return ingredient, nil
}

// Delete removes the ingredient. Recipes referencing it are left alone;
// their components dangle and using such a recipe fails at use time.
func (s *ingredientServiceImpl) Delete(ctx context.Context, id uint) *ServiceError {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError("Ingredient not found")
		}
		s.logger.Error("Failed to delete ingredient", zap.Uint("ingredient_id", id), zap.Error(err))
		return storageFaultError("Failed to delete ingredient")
	}
	s.logger.Info("Ingredient deleted", zap.Uint("ingredient_id", id))
	return nil
}
