package controllers

import (
	"net/http"

	"kitchen-inventory-service/models"
	"kitchen-inventory-service/services"

	"github.com/gin-gonic/gin"
)

// UserController handles HTTP requests for account management.
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController.
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// CreateUser handles POST /api/users (admin only).
func (uc *UserController) CreateUser(ctx *gin.Context) {
	var req models.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, svcErr := uc.userService.Create(ctx.Request.Context(), &req)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user": user})
}

// GetUser handles GET /api/users/:id (admin only).
func (uc *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, svcErr := uc.userService.GetByID(ctx.Request.Context(), id)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers handles GET /api/users (admin only).
func (uc *UserController) ListUsers(ctx *gin.Context) {
	users, svcErr := uc.userService.List(ctx.Request.Context())
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUser handles PUT /api/users/:id (admin only).
func (uc *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, svcErr := uc.userService.Update(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser handles DELETE /api/users/:id (admin only).
func (uc *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if svcErr := uc.userService.Delete(ctx.Request.Context(), id); svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
