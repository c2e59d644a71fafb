package meal

import (
	"context"
	"time"

	"pantryplanner/entities"

	"gorm.io/gorm"
)

type (
	MealRepository interface {
		CreateMeal(ctx context.Context, meal *entities.PlannedMeal) error
		GetMealByID(ctx context.Context, id string) (*entities.PlannedMeal, error)
		UpdateMeal(ctx context.Context, meal *entities.PlannedMeal) error
		DeleteMeal(ctx context.Context, id string) error
		GetMealsByDateRange(ctx context.Context, userID string, start, end time.Time) ([]*entities.PlannedMeal, error)
	}

	mealRepository struct {
		db *gorm.DB
	}
)

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) CreateMeal(ctx context.Context, meal *entities.PlannedMeal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *mealRepository) GetMealByID(ctx context.Context, id string) (*entities.PlannedMeal, error) {
	var meal entities.PlannedMeal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) UpdateMeal(ctx context.Context, meal *entities.PlannedMeal) error {
	return r.db.WithContext(ctx).Save(meal).Error
}

func (r *mealRepository) DeleteMeal(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.PlannedMeal{}).Error
}

func (r *mealRepository) GetMealsByDateRange(ctx context.Context, userID string, start, end time.Time) ([]*entities.PlannedMeal, error) {
	var meals []*entities.PlannedMeal
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date asc").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}
