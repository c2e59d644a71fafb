package routes

import (
	"pantryplanner/internal/api/handlers"
	"pantryplanner/internal/middleware"
	"pantryplanner/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	InventoryHandler handlers.InventoryHandler
	ShoppingHandler  handlers.ShoppingHandler
	MealHandler      handlers.MealHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Inventory()
	c.Shopping()
	c.Meals()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.GetProfile)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/send_verify", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.ResendVerification)
	}
}

func (c *Config) Inventory() {
	inventory := c.App.Group("/api/v1/inventory", c.Middleware.AuthMiddleware(c.JWTService))

	inventory.Post("", c.InventoryHandler.AddItem)
	inventory.Get("", c.InventoryHandler.GetItems)
	inventory.Get("/:id", c.InventoryHandler.GetItemDetails)
	inventory.Put("/:id", c.InventoryHandler.UpdateItem)
	inventory.Delete("/:id", c.InventoryHandler.DeleteItem)
	inventory.Post("/image", c.InventoryHandler.UploadItemImage)
}

func (c *Config) Shopping() {
	shopping := c.App.Group("/api/v1/shopping", c.Middleware.AuthMiddleware(c.JWTService))

	shopping.Post("/lists", c.ShoppingHandler.CreateList)
	shopping.Get("/lists", c.ShoppingHandler.GetLists)
	shopping.Delete("/lists/:id", c.ShoppingHandler.DeleteList)
	shopping.Post("/lists/:id/items", c.ShoppingHandler.AddItem)
	shopping.Patch("/items/:item_id", c.ShoppingHandler.UpdateItem)
	shopping.Delete("/items/:item_id", c.ShoppingHandler.DeleteItem)
}

func (c *Config) Meals() {
	meals := c.App.Group("/api/v1/meals", c.Middleware.AuthMiddleware(c.JWTService))

	meals.Post("", c.MealHandler.CreateMeal)
	meals.Get("", c.MealHandler.GetMeals)
	meals.Put("/:id", c.MealHandler.UpdateMeal)
	meals.Delete("/:id", c.MealHandler.DeleteMeal)
	meals.Get("/:id/availability", c.MealHandler.GetMealAvailability)
	meals.Post("/:id/prepared", c.MealHandler.MarkMealPrepared)
	meals.Post("/check-availability", c.MealHandler.CheckAvailability)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
