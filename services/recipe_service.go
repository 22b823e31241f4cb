package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kitchen-inventory-service/models"
	"kitchen-inventory-service/repository"

	"go.uber.org/zap"
)

// RecipeService defines the business logic interface for recipes.
type RecipeService interface {
	Create(ctx context.Context, req *models.CreateRecipeRequest) (*models.Recipe, *ServiceError)
	GetByID(ctx context.Context, id uint) (*models.Recipe, *ServiceError)
	List(ctx context.Context) ([]models.Recipe, *ServiceError)
	Update(ctx context.Context, id uint, req *models.UpdateRecipeRequest) (*models.Recipe, *ServiceError)
	Use(ctx context.Context, id uint) (*models.Recipe, *ServiceError)
	Delete(ctx context.Context, id uint) *ServiceError
}

type recipeServiceImpl struct {
	repo           repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	ingredients    IngredientService
	recorder       Recorder
	logger         *zap.Logger
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(
	repo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	ingredients IngredientService,
	recorder Recorder,
	logger *zap.Logger,
) RecipeService {
	return &recipeServiceImpl{
		repo:           repo,
		ingredientRepo: ingredientRepo,
		ingredients:    ingredients,
		recorder:       recorder,
		logger:         logger,
	}
}

// validateComponents checks quantities, duplicates, and that every
// referenced ingredient exists right now.
func (s *recipeServiceImpl) validateComponents(ctx context.Context, components []models.RecipeComponentInput) *ServiceError {
	if len(components) == 0 {
		return validationError("recipe must have at least one component")
	}
	seen := make(map[uint]bool, len(components))
	ids := make([]uint, 0, len(components))
	for _, c := range components {
		if c.Quantity <= 0 {
			return validationError(fmt.Sprintf("component quantity for ingredient %d must be positive", c.IngredientID))
		}
		if seen[c.IngredientID] {
			return validationError(fmt.Sprintf("duplicate ingredient %d in components", c.IngredientID))
		}
		seen[c.IngredientID] = true
		ids = append(ids, c.IngredientID)
	}

	found, err := s.ingredientRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to resolve recipe components", zap.Error(err))
		return storageFaultError("Failed to resolve recipe components")
	}
	existing := make(map[uint]bool, len(found))
	for _, ing := range found {
		existing[ing.IngredientID] = true
	}
	for _, id := range ids {
		if !existing[id] {
			return validationError(fmt.Sprintf("ingredient %d does not exist", id))
		}
	}
	return nil
}

// Create validates and persists a new recipe, then records a
// RECIPES_CREATED event.
func (s *recipeServiceImpl) Create(ctx context.Context, req *models.CreateRecipeRequest) (*models.Recipe, *ServiceError) {
	if strings.TrimSpace(req.RecipeName) == "" {
		return nil, validationError("recipeName must not be empty")
	}
	if svcErr := s.validateComponents(ctx, req.RecipeComponents); svcErr != nil {
		return nil, svcErr
	}

	recipe := &models.Recipe{RecipeName: req.RecipeName}
	for _, c := range req.RecipeComponents {
		recipe.RecipeComponents = append(recipe.RecipeComponents, models.RecipeComponent{
			IngredientID: c.IngredientID,
			Quantity:     c.Quantity,
		})
	}

	if err := s.repo.Create(ctx, recipe); err != nil {
		s.logger.Error("Failed to create recipe", zap.Error(err))
		return nil, storageFaultError("Failed to create recipe")
	}

	if err := s.recorder.Record(ctx, models.ReportRecipesCreated, recipe.RecipeID, recipe.RecipeName, 1); err != nil {
		s.logger.Error("Failed to record recipe creation", zap.Error(err))
		return nil, storageFaultError("Recipe created but event recording failed")
	}

	s.logger.Info("Recipe created",
		zap.Uint("recipe_id", recipe.RecipeID),
		zap.String("recipe_name", recipe.RecipeName),
	)
	return recipe, nil
}

func (s *recipeServiceImpl) GetByID(ctx context.Context, id uint) (*models.Recipe, *ServiceError) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("Recipe not found")
		}
		s.logger.Error("Failed to load recipe", zap.Uint("recipe_id", id), zap.Error(err))
		return nil, storageFaultError("Failed to load recipe")
	}
	return recipe, nil
}

func (s *recipeServiceImpl) List(ctx context.Context) ([]models.Recipe, *ServiceError) {
	recipes, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list recipes", zap.Error(err))
		return nil, storageFaultError("Failed to list recipes")
	}
	return recipes, nil
}

// Update renames the recipe and, when components are provided, replaces
// the component list wholesale after validating it.
func (s *recipeServiceImpl) Update(ctx context.Context, id uint, req *models.UpdateRecipeRequest) (*models.Recipe, *ServiceError) {
	if _, svcErr := s.GetByID(ctx, id); svcErr != nil {
		return nil, svcErr
	}

	if req.RecipeName != nil {
		if strings.TrimSpace(*req.RecipeName) == "" {
			return nil, validationError("recipeName must not be empty")
		}
		if err := s.repo.UpdateName(ctx, id, *req.RecipeName); err != nil {
			s.logger.Error("Failed to rename recipe", zap.Uint("recipe_id", id), zap.Error(err))
			return nil, storageFaultError("Failed to update recipe")
		}
	}

	if req.RecipeComponents != nil {
		if svcErr := s.validateComponents(ctx, req.RecipeComponents); svcErr != nil {
			return nil, svcErr
		}
		components := make([]models.RecipeComponent, 0, len(req.RecipeComponents))
		for _, c := range req.RecipeComponents {
			components = append(components, models.RecipeComponent{
				IngredientID: c.IngredientID,
				Quantity:     c.Quantity,
			})
		}
		if err := s.repo.ReplaceComponents(ctx, id, components); err != nil {
			s.logger.Error("Failed to replace recipe components", zap.Uint("recipe_id", id), zap.Error(err))
			return nil, storageFaultError("Failed to update recipe")
		}
	}

	return s.GetByID(ctx, id)
}

// Use consumes stock for every component of the recipe. The whole
// operation is all-or-nothing with respect to missing ingredients: every
// component is resolved up front, and if any referenced ingredient has
// been deleted the use fails with a dangling-reference error before any
// stock is touched. Insufficient stock does not block the use; affected
// ingredients simply clamp at zero.
func (s *recipeServiceImpl) Use(ctx context.Context, id uint) (*models.Recipe, *ServiceError) {
	recipe, svcErr := s.GetByID(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if len(recipe.RecipeComponents) == 0 {
		return nil, validationError("recipe has no components")
	}

	ids := make([]uint, 0, len(recipe.RecipeComponents))
	for _, c := range recipe.RecipeComponents {
		ids = append(ids, c.IngredientID)
	}
	found, err := s.ingredientRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to resolve recipe components", zap.Uint("recipe_id", id), zap.Error(err))
		return nil, storageFaultError("Failed to resolve recipe components")
	}
	existing := make(map[uint]bool, len(found))
	for _, ing := range found {
		existing[ing.IngredientID] = true
	}
	for _, c := range recipe.RecipeComponents {
		if !existing[c.IngredientID] {
			return nil, danglingReferenceError(fmt.Sprintf(
				"recipe references deleted ingredient %d", c.IngredientID))
		}
	}

	for _, c := range recipe.RecipeComponents {
		if _, svcErr := s.ingredients.AdjustQuantity(ctx, c.IngredientID, -c.Quantity); svcErr != nil {
			return nil, svcErr
		}
	}

	if err := s.repo.RecordUse(ctx, id, time.Now().UTC()); err != nil {
		s.logger.Error("Failed to record recipe use", zap.Uint("recipe_id", id), zap.Error(err))
		return nil, storageFaultError("Failed to record recipe use")
	}
	if err := s.recorder.Record(ctx, models.ReportRecipeUsed, recipe.RecipeID, recipe.RecipeName, 1); err != nil {
		s.logger.Error("Failed to record recipe usage event", zap.Uint("recipe_id", id), zap.Error(err))
		return nil, storageFaultError("Recipe used but event recording failed")
	}

	s.logger.Info("Recipe used",
		zap.Uint("recipe_id", recipe.RecipeID),
		zap.String("recipe_name", recipe.RecipeName),
	)
	return s.GetByID(ctx, id)
}

func (s *recipeServiceImpl) Delete(ctx context.Context, id uint) *ServiceError {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError("Recipe not found")
		}
		s.logger.Error("Failed to delete recipe", zap.Uint("recipe_id", id), zap.Error(err))
		return storageFaultError("Failed to delete recipe")
	}
	s.logger.Info("Recipe deleted", zap.Uint("recipe_id", id))
	return nil
}
