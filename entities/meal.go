package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
)

type PlannedMeal struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Date     time.Time `gorm:"type:date" json:"date"`
	MealType string    `json:"meal_type"` // breakfast, lunch, dinner

	// Raw ingredient lines as entered. Order matters for display only.
	Ingredients StringList `gorm:"type:jsonb" json:"ingredients"`

	// Normalized item name -> quantity this meal has committed to using.
	// Computed at save time, summed by the reservation ledger.
	ReservedQuantities QuantityMap `gorm:"type:jsonb" json:"reserved_quantities"`

	// Soft-claim back-references into the pantry and shopping list.
	ClaimedItemIDs             StringSet `gorm:"type:jsonb" json:"claimed_item_ids"`
	ClaimedShoppingListItemIDs StringSet `gorm:"type:jsonb" json:"claimed_shopping_list_item_ids"`

	Completed bool `json:"completed"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
