package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateShoppingList   = "shopping list created successfully"
	MessageSuccessGetShoppingLists     = "shopping lists retrieved successfully"
	MessageSuccessAddShoppingListItem  = "shopping list item added successfully"
	MessageSuccessEditShoppingListItem = "shopping list item updated successfully"
	MessageSuccessDeleteShoppingList   = "shopping list deleted successfully"
	MessageSuccessDeleteShoppingItem   = "shopping list item deleted successfully"

	MessageFailedCreateShoppingList   = "failed to create shopping list"
	MessageFailedGetShoppingLists     = "failed to retrieve shopping lists"
	MessageFailedAddShoppingListItem  = "failed to add shopping list item"
	MessageFailedEditShoppingListItem = "failed to update shopping list item"
	MessageFailedDeleteShoppingList   = "failed to delete shopping list"
	MessageFailedDeleteShoppingItem   = "failed to delete shopping list item"

	ErrShoppingListNotFound     = errors.New("shopping list not found")
	ErrShoppingListItemNotFound = errors.New("shopping list item not found")
)

type (
	CreateShoppingListRequest struct {
		Name string `json:"name" validate:"required"`
	}

	AddShoppingListItemRequest struct {
		Name        string   `json:"name" validate:"required"`
		Quantity    *float64 `json:"quantity" validate:"omitempty,min=0"`
		UnitMeasure string   `json:"unit_measure" validate:"omitempty"`
	}

	UpdateShoppingListItemRequest struct {
		Name       string   `json:"name" validate:"omitempty"`
		Quantity   *float64 `json:"quantity" validate:"omitempty,min=0"`
		CrossedOff *bool    `json:"crossed_off" validate:"omitempty"`
	}

	ShoppingListItemResponse struct {
		ID           string    `json:"id"`
		ListID       string    `json:"list_id"`
		Name         string    `json:"name"`
		Quantity     *float64  `json:"quantity,omitempty"`
		UnitMeasure  string    `json:"unit_measure,omitempty"`
		CrossedOff   bool      `json:"crossed_off"`
		SourceMealID string    `json:"source_meal_id,omitempty"`
		CreatedAt    time.Time `json:"created_at"`
	}

	ShoppingListResponse struct {
		ID        string                     `json:"id"`
		Name      string                     `json:"name"`
		Items     []ShoppingListItemResponse `json:"items"`
		CreatedAt time.Time                  `json:"created_at"`
	}
)
