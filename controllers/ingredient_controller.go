package controllers

import (
	"net/http"

	"kitchen-inventory-service/models"
	"kitchen-inventory-service/services"

	"github.com/gin-gonic/gin"
)

// IngredientController handles HTTP requests for ingredient operations.
type IngredientController struct {
	ingredientService services.IngredientService
}

// NewIngredientController creates a new IngredientController.
func NewIngredientController(ingredientService services.IngredientService) *IngredientController {
	return &IngredientController{ingredientService: ingredientService}
}

// CreateIngredient handles POST /api/ingredients.
func (ic *IngredientController) CreateIngredient(ctx *gin.Context) {
	var req models.CreateIngredientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	ingredient, svcErr := ic.ingredientService.Create(ctx.Request.Context(), &req)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"ingredient": ingredient})
}

// GetIngredient handles GET /api/ingredients/:id.
func (ic *IngredientController) GetIngredient(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	ingredient, svcErr := ic.ingredientService.GetByID(ctx.Request.Context(), id)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ingredient": ingredient})
}

// ListIngredients handles GET /api/ingredients.
func (ic *IngredientController) ListIngredients(ctx *gin.Context) {
	ingredients, svcErr := ic.ingredientService.List(ctx.Request.Context())
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// UpdateIngredient handles PUT /api/ingredients/:id.
func (ic *IngredientController) UpdateIngredient(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.UpdateIngredientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	ingredient, svcErr := ic.ingredientService.Update(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ingredient": ingredient})
}

// AdjustQuantity handles POST /api/ingredients/:id/adjust.
func (ic *IngredientController) AdjustQuantity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.AdjustQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	ingredient, svcErr := ic.ingredientService.AdjustQuantity(ctx.Request.Context(), id, req.Delta)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ingredient": ingredient})
}

// DeleteIngredient handles DELETE /api/ingredients/:id.
func (ic *IngredientController) DeleteIngredient(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if svcErr := ic.ingredientService.Delete(ctx.Request.Context(), id); svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted"})
}
