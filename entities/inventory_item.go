package entities

import (
	"time"

	"github.com/google/uuid"
)

type InventoryItem struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Name          string     `json:"name"`
	Quantity      *float64   `json:"quantity,omitempty"` // nil means present but untracked
	UnitMeasure   string     `json:"unit_measure,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	Status        string     `json:"status"` // "Safe", "Warning", "Expired"
	ImageURL      string     `json:"image_url,omitempty"`
	AddedManually bool       `json:"added_manually"`

	// Meal ids currently holding a soft claim on this item. Advisory
	// back-reference only; the pantry owns the row.
	UsedByMeals StringSet `gorm:"type:jsonb" json:"used_by_meals"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
