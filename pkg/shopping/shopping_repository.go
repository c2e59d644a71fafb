package shopping

import (
	"context"

	"pantryplanner/entities"

	"gorm.io/gorm"
)

type (
	ShoppingRepository interface {
		CreateList(ctx context.Context, list *entities.ShoppingList) error
		GetListByID(ctx context.Context, id string) (*entities.ShoppingList, error)
		GetLists(ctx context.Context, userID string) ([]*entities.ShoppingList, error)
		DeleteList(ctx context.Context, id string) error

		AddItem(ctx context.Context, item *entities.ShoppingListItem) error
		GetItemByID(ctx context.Context, id string) (*entities.ShoppingListItem, error)
		UpdateItem(ctx context.Context, item *entities.ShoppingListItem) error
		DeleteItem(ctx context.Context, id string) error
		GetItems(ctx context.Context, userID string, includeCrossedOff bool) ([]*entities.ShoppingListItem, error)
		GetItemsByList(ctx context.Context, listID string) ([]*entities.ShoppingListItem, error)
		DeleteItemsBySourceMeal(ctx context.Context, mealID string) error
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) CreateList(ctx context.Context, list *entities.ShoppingList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *shoppingRepository) GetListByID(ctx context.Context, id string) (*entities.ShoppingList, error) {
	var list entities.ShoppingList
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *shoppingRepository) GetLists(ctx context.Context, userID string) ([]*entities.ShoppingList, error) {
	var lists []*entities.ShoppingList
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *shoppingRepository) DeleteList(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("list_id = ?", id).Delete(&entities.ShoppingListItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ShoppingList{}).Error
}

func (r *shoppingRepository) AddItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *shoppingRepository) GetItemByID(ctx context.Context, id string) (*entities.ShoppingListItem, error) {
	var item entities.ShoppingListItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shoppingRepository) UpdateItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *shoppingRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ShoppingListItem{}).Error
}

func (r *shoppingRepository) GetItems(ctx context.Context, userID string, includeCrossedOff bool) ([]*entities.ShoppingListItem, error) {
	var items []*entities.ShoppingListItem

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeCrossedOff {
		query = query.Where("crossed_off = ?", false)
	}

	if err := query.Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *shoppingRepository) GetItemsByList(ctx context.Context, listID string) ([]*entities.ShoppingListItem, error) {
	var items []*entities.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *shoppingRepository) DeleteItemsBySourceMeal(ctx context.Context, mealID string) error {
	return r.db.WithContext(ctx).
		Where("source_meal_id = ?", mealID).
		Delete(&entities.ShoppingListItem{}).Error
}
