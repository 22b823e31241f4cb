package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kitchen-inventory-service/controllers"
	"kitchen-inventory-service/database"
	"kitchen-inventory-service/models"
	"kitchen-inventory-service/repository"
	"kitchen-inventory-service/routes"
	servicepkg "kitchen-inventory-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if err := database.Connect(cfg.DSN(),
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeComponent{},
		&models.RecipeUseHistory{},
		&models.Report{},
		&models.User{},
	); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	cache := servicepkg.NewReportCache(nil, logger)
	if cfg.RedisAddr != "" {
		redisClient, err := database.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("Redis unavailable, dashboard caching disabled", zap.Error(err))
		} else {
			cache = servicepkg.NewReportCache(redisClient, logger)
			defer redisClient.Close() //nolint:errcheck
		}
	}

	var publisher servicepkg.EventPublisher
	if cfg.ReportsSNSTopic != "" {
		snsPublisher, err := servicepkg.NewSNSPublisher(context.Background(), cfg.ReportsSNSTopic)
		if err != nil {
			logger.Warn("SNS unavailable, event fan-out disabled", zap.Error(err))
		} else {
			publisher = snsPublisher
		}
	}

	// DI chain
	ingredientRepo := repository.NewGormIngredientRepository(database.DB)
	recipeRepo := repository.NewGormRecipeRepository(database.DB)
	reportRepo := repository.NewGormReportRepository(database.DB)
	userRepo := repository.NewGormUserRepository(database.DB)

	reportService := servicepkg.NewReportService(reportRepo, ingredientRepo, cache, publisher, logger)
	ingredientService := servicepkg.NewIngredientService(ingredientRepo, reportService, logger)
	recipeService := servicepkg.NewRecipeService(recipeRepo, ingredientRepo, ingredientService, reportService, logger)
	userService := servicepkg.NewUserService(userRepo, logger)
	jwtService := servicepkg.NewJWTService(cfg.JWTSecret)

	if err := userService.SeedDefaults(context.Background(), cfg.AdminPassword); err != nil {
		logger.Fatal("Failed to seed default accounts", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// Global request-logging middleware
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("duration", duration),
		)
	})

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "kitchen-inventory-service"})
	})

	routes.RegisterRoutes(r, routes.Controllers{
		Auth:       controllers.NewAuthController(userService, jwtService),
		Ingredient: controllers.NewIngredientController(ingredientService),
		Recipe:     controllers.NewRecipeController(recipeService),
		Report:     controllers.NewReportController(reportService),
		User:       controllers.NewUserController(userService),
	}, jwtService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Kitchen inventory service started", zap.String("port", cfg.Port))
	<-quit
	logger.Info("Shutting down kitchen inventory service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
