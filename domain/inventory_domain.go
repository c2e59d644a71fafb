package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddInventoryItem    = "inventory item added successfully"
	MessageSuccessUpdateInventoryItem = "inventory item updated successfully"
	MessageSuccessDeleteInventoryItem = "inventory item deleted successfully"
	MessageSuccessGetInventoryItems   = "inventory items retrieved successfully"
	MessageSuccessUploadItemImage     = "item image uploaded successfully"

	MessageFailedAddInventoryItem    = "failed to add inventory item"
	MessageFailedUpdateInventoryItem = "failed to update inventory item"
	MessageFailedDeleteInventoryItem = "failed to delete inventory item"
	MessageFailedGetInventoryItems   = "failed to retrieve inventory items"
	MessageFailedUploadItemImage     = "failed to upload item image"

	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrInvalidExpiryDate     = errors.New("invalid expiry date")
	ErrInvalidQuantity       = errors.New("quantity must not be negative")
	ErrUnauthorizedAccess    = errors.New("unauthorized access to record")
)

type (
	AddInventoryItemRequest struct {
		Name        string   `json:"name" validate:"required"`
		Quantity    *float64 `json:"quantity" validate:"omitempty,min=0"`
		UnitMeasure string   `json:"unit_measure" validate:"omitempty"`
		ExpiryDate  string   `json:"expiry_date" validate:"omitempty"`
	}

	UpdateInventoryItemRequest struct {
		Name        string   `json:"name" validate:"omitempty"`
		Quantity    *float64 `json:"quantity" validate:"omitempty,min=0"`
		UnitMeasure string   `json:"unit_measure" validate:"omitempty"`
		ExpiryDate  string   `json:"expiry_date" validate:"omitempty"`
	}

	UploadItemImageRequest struct {
		ItemID string                `json:"item_id" form:"item_id" validate:"required,uuid"`
		Image  *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	InventoryItemResponse struct {
		ID          string     `json:"id"`
		Name        string     `json:"name"`
		Quantity    *float64   `json:"quantity,omitempty"`
		UnitMeasure string     `json:"unit_measure,omitempty"`
		ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
		Status      string     `json:"status"`
		ImageURL    string     `json:"image_url,omitempty"`
		UsedByMeals []string   `json:"used_by_meals"`
		CreatedAt   time.Time  `json:"created_at"`
	}
)
