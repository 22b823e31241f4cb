package controllers

import (
	"net/http"

	"kitchen-inventory-service/models"
	"kitchen-inventory-service/services"

	"github.com/gin-gonic/gin"
)

// RecipeController handles HTTP requests for recipe operations.
type RecipeController struct {
	recipeService services.RecipeService
}

// NewRecipeController creates a new RecipeController.
func NewRecipeController(recipeService services.RecipeService) *RecipeController {
	return &RecipeController{recipeService: recipeService}
}

// CreateRecipe handles POST /api/recipes.
func (rc *RecipeController) CreateRecipe(ctx *gin.Context) {
	var req models.CreateRecipeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	recipe, svcErr := rc.recipeService.Create(ctx.Request.Context(), &req)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// GetRecipe handles GET /api/recipes/:id.
func (rc *RecipeController) GetRecipe(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	recipe, svcErr := rc.recipeService.GetByID(ctx.Request.Context(), id)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// ListRecipes handles GET /api/recipes.
func (rc *RecipeController) ListRecipes(ctx *gin.Context) {
	recipes, svcErr := rc.recipeService.List(ctx.Request.Context())
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// UpdateRecipe handles PUT /api/recipes/:id.
func (rc *RecipeController) UpdateRecipe(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.UpdateRecipeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	recipe, svcErr := rc.recipeService.Update(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// UseRecipe handles POST /api/recipes/:id/use.
func (rc *RecipeController) UseRecipe(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	recipe, svcErr := rc.recipeService.Use(ctx.Request.Context(), id)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// DeleteRecipe handles DELETE /api/recipes/:id.
func (rc *RecipeController) DeleteRecipe(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if svcErr := rc.recipeService.Delete(ctx.Request.Context(), id); svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}
