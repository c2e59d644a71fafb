package domain

import (
	"errors"
	"time"

	"pantryplanner/pkg/engine"
)

var (
	MessageSuccessCreateMeal       = "meal planned successfully"
	MessageSuccessUpdateMeal       = "meal updated successfully"
	MessageSuccessDeleteMeal       = "meal deleted successfully"
	MessageSuccessGetMeals         = "meals retrieved successfully"
	MessageSuccessGetAvailability  = "ingredient availability computed successfully"
	MessageSuccessMarkMealPrepared = "meal marked as prepared"

	MessageFailedCreateMeal       = "failed to plan meal"
	MessageFailedUpdateMeal       = "failed to update meal"
	MessageFailedDeleteMeal       = "failed to delete meal"
	MessageFailedGetMeals         = "failed to retrieve meals"
	MessageFailedGetAvailability  = "failed to compute ingredient availability"
	MessageFailedMarkMealPrepared = "failed to mark meal as prepared"

	ErrMealNotFound         = errors.New("meal not found")
	ErrMealAlreadyCompleted = errors.New("meal already marked as prepared")
	ErrInvalidMealType      = errors.New("invalid meal type")
	ErrInvalidMealDate      = errors.New("invalid meal date")
)

type (
	CreateMealRequest struct {
		Name        string   `json:"name" validate:"required"`
		Date        string   `json:"date" validate:"required"`
		MealType    string   `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
		Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`

		// When true, missing ingredients are added to the user's shopping
		// list and linked to this meal.
		AddMissingToShoppingList bool   `json:"add_missing_to_shopping_list"`
		ShoppingListID           string `json:"shopping_list_id" validate:"omitempty,uuid"`
	}

	UpdateMealRequest struct {
		Name        string   `json:"name" validate:"omitempty"`
		Date        string   `json:"date" validate:"omitempty"`
		MealType    string   `json:"meal_type" validate:"omitempty,oneof=breakfast lunch dinner"`
		Ingredients []string `json:"ingredients" validate:"omitempty,min=1,dive,required"`
	}

	MarkMealPreparedRequest struct {
		// Subset of the meal's ingredient lines actually consumed. Empty
		// means all of them.
		Ingredients []string `json:"ingredients" validate:"omitempty,dive,required"`
	}

	MealResponse struct {
		ID                 string             `json:"id"`
		Name               string             `json:"name"`
		Date               time.Time          `json:"date"`
		MealType           string             `json:"meal_type"`
		Ingredients        []string           `json:"ingredients"`
		ReservedQuantities map[string]float64 `json:"reserved_quantities"`
		ClaimedItemIDs     []string           `json:"claimed_item_ids"`
		ClaimedListItemIDs []string           `json:"claimed_shopping_list_item_ids"`
		Completed          bool               `json:"completed"`
		CreatedAt          time.Time          `json:"created_at"`
	}

	IngredientAvailability struct {
		Line           string                `json:"line"`
		Classification engine.Classification `json:"classification"`
	}

	MealAvailabilityResponse struct {
		MealID      string                   `json:"meal_id,omitempty"`
		Ingredients []IngredientAvailability `json:"ingredients"`
	}

	// CheckAvailabilityRequest classifies ad-hoc ingredient lines before a
	// meal is saved, optionally excluding the meal being edited from the
	// reservation ledger.
	CheckAvailabilityRequest struct {
		Ingredients   []string `json:"ingredients" validate:"required,min=1,dive,required"`
		ExcludeMealID string   `json:"exclude_meal_id" validate:"omitempty,uuid"`
	}
)
