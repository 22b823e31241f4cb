package routes

import (
	"kitchen-inventory-service/controllers"
	"kitchen-inventory-service/middleware"
	"kitchen-inventory-service/services"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything RegisterRoutes wires up.
type Controllers struct {
	Auth       *controllers.AuthController
	Ingredient *controllers.IngredientController
	Recipe     *controllers.RecipeController
	Report     *controllers.ReportController
	User       *controllers.UserController
}

// RegisterRoutes sets up the full API surface. Everything under /api except
// login requires a session; account management and log clearing are
// admin only.
func RegisterRoutes(r *gin.Engine, c Controllers, jwtService services.JWTService) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", c.Auth.Login)
	auth.POST("/logout", c.Auth.Logout)
	auth.GET("/session", middleware.RequireAuth(jwtService), c.Auth.Session)

	ingredients := api.Group("/ingredients")
	ingredients.Use(middleware.RequireAuth(jwtService))
	ingredients.POST("", c.Ingredient.CreateIngredient)
	ingredients.GET("", c.Ingredient.ListIngredients)
	ingredients.GET("/:id", c.Ingredient.GetIngredient)
	ingredients.PUT("/:id", c.Ingredient.UpdateIngredient)
	ingredients.POST("/:id/adjust", c.Ingredient.AdjustQuantity)
	ingredients.DELETE("/:id", c.Ingredient.DeleteIngredient)

	recipes := api.Group("/recipes")
	recipes.Use(middleware.RequireAuth(jwtService))
	recipes.POST("", c.Recipe.CreateRecipe)
	recipes.GET("", c.Recipe.ListRecipes)
	recipes.GET("/:id", c.Recipe.GetRecipe)
	recipes.PUT("/:id", c.Recipe.UpdateRecipe)
	recipes.POST("/:id/use", c.Recipe.UseRecipe)
	recipes.DELETE("/:id", c.Recipe.DeleteRecipe)

	reports := api.Group("/reports")
	reports.Use(middleware.RequireAuth(jwtService))
	reports.POST("", c.Report.CreateReport)
	reports.GET("", c.Report.ListReports)
	reports.GET("/type/:reportType", c.Report.ListReportsByType)
	reports.GET("/range", c.Report.ListReportsByRange)
	reports.GET("/summary", c.Report.GetSummary)
	reports.GET("/chart", c.Report.GetChart)
	reports.GET("/top", c.Report.GetTopEntities)
	reports.GET("/dashboard", c.Report.GetDashboard)
	reports.DELETE("/clear", middleware.RequireAdmin(), c.Report.ClearReports)

	users := api.Group("/users")
	users.Use(middleware.RequireAuth(jwtService), middleware.RequireAdmin())
	users.POST("", c.User.CreateUser)
	users.GET("", c.User.ListUsers)
	users.GET("/:id", c.User.GetUser)
	users.PUT("/:id", c.User.UpdateUser)
	users.DELETE("/:id", c.User.DeleteUser)
}
