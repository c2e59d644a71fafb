package entities

import (
	"github.com/google/uuid"
)

type ShoppingList struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`

	User  *User               `gorm:"foreignKey:UserID"`
	Items []*ShoppingListItem `gorm:"foreignKey:ListID"`
	Timestamp
}

type ShoppingListItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ListID      uuid.UUID `json:"list_id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Quantity    *float64  `json:"quantity,omitempty"`
	UnitMeasure string    `json:"unit_measure,omitempty"`
	CrossedOff  bool      `json:"crossed_off"`

	// Meal that caused this entry to be added, if any. Deleting that meal
	// removes the entry.
	SourceMealID *uuid.UUID `json:"source_meal_id,omitempty"`

	List *ShoppingList `gorm:"foreignKey:ListID"`
	Timestamp
}
