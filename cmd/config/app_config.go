package config

import (
	"os"
	"time"

	"pantryplanner/internal/api/handlers"
	"pantryplanner/internal/api/routes"
	"pantryplanner/internal/middleware"
	"pantryplanner/internal/utils"
	"pantryplanner/internal/utils/storage"
	"pantryplanner/pkg/inventory"
	"pantryplanner/pkg/jwt"
	"pantryplanner/pkg/meal"
	"pantryplanner/pkg/shopping"
	"pantryplanner/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)
	mealRepository := meal.NewMealRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	inventoryService := inventory.NewInventoryService(inventoryRepository, s3)
	shoppingService := shopping.NewShoppingService(shoppingRepository)
	mealService := meal.NewMealService(mealRepository, inventoryRepository, shoppingRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService, validator)
	mealHandler := handlers.NewMealHandler(mealService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		InventoryHandler: inventoryHandler,
		ShoppingHandler:  shoppingHandler,
		MealHandler:      mealHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
