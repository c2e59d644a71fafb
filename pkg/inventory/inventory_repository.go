package inventory

import (
	"context"

	"pantryplanner/entities"

	"gorm.io/gorm"
)

type (
	InventoryRepository interface {
		AddItem(ctx context.Context, item *entities.InventoryItem) error
		GetItemByID(ctx context.Context, id string) (*entities.InventoryItem, error)
		UpdateItem(ctx context.Context, item *entities.InventoryItem) error
		DeleteItem(ctx context.Context, id string) error
		GetItems(ctx context.Context, userID string, status string, page, limit int) ([]*entities.InventoryItem, int64, error)
		GetAllItems(ctx context.Context, userID string) ([]*entities.InventoryItem, error)
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) AddItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepository) GetItemByID(ctx context.Context, id string) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) UpdateItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.InventoryItem{}).Error
}

func (r *inventoryRepository) GetItems(ctx context.Context, userID string, status string, page, limit int) ([]*entities.InventoryItem, int64, error) {
	var items []*entities.InventoryItem
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Model(&entities.InventoryItem{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("expiry_date asc nulls last").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

// GetAllItems returns the full pantry snapshot for a user. The
// availability engine matches against everything, so no pagination.
func (r *inventoryRepository) GetAllItems(ctx context.Context, userID string) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
