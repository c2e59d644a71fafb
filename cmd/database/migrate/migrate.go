package migration

import (
	"fmt"
	"log"

	"pantryplanner/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.InventoryItem{}); err != nil {
		log.Fatalf("Error migrating inventory item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ShoppingList{}); err != nil {
		log.Fatalf("Error migrating shopping list database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ShoppingListItem{}); err != nil {
		log.Fatalf("Error migrating shopping list item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PlannedMeal{}); err != nil {
		log.Fatalf("Error migrating planned meal database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
