package controllers

import (
	"net/http"

	"kitchen-inventory-service/middleware"
	"kitchen-inventory-service/models"
	"kitchen-inventory-service/services"

	"github.com/gin-gonic/gin"
)

// AuthController handles login, logout and session introspection.
type AuthController struct {
	userService services.UserService
	jwtService  services.JWTService
}

// NewAuthController creates a new AuthController.
func NewAuthController(userService services.UserService, jwtService services.JWTService) *AuthController {
	return &AuthController{userService: userService, jwtService: jwtService}
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, svcErr := ac.userService.Authenticate(ctx.Request.Context(), req.Username, req.Password)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	token, err := ac.jwtService.GenerateToken(user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}

	ctx.SetCookie(middleware.SessionCookieName, token, 86400, "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout handles POST /api/auth/logout.
func (ac *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session handles GET /api/auth/session. Runs behind RequireAuth, so the
// claims are already on the context.
func (ac *AuthController) Session(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}

	user, svcErr := ac.userService.GetByID(ctx.Request.Context(), claims.UserID)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}
