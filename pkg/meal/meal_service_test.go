package meal

import (
	"context"
	"testing"
	"time"

	"pantryplanner/domain"
	"pantryplanner/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeMealRepo struct {
	meals map[string]*entities.PlannedMeal
}

func newFakeMealRepo() *fakeMealRepo {
	return &fakeMealRepo{meals: make(map[string]*entities.PlannedMeal)}
}

func (r *fakeMealRepo) CreateMeal(_ context.Context, meal *entities.PlannedMeal) error {
	r.meals[meal.ID.String()] = meal
	return nil
}

func (r *fakeMealRepo) GetMealByID(_ context.Context, id string) (*entities.PlannedMeal, error) {
	meal, ok := r.meals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return meal, nil
}

func (r *fakeMealRepo) UpdateMeal(_ context.Context, meal *entities.PlannedMeal) error {
	r.meals[meal.ID.String()] = meal
	return nil
}

func (r *fakeMealRepo) DeleteMeal(_ context.Context, id string) error {
	delete(r.meals, id)
	return nil
}

func (r *fakeMealRepo) GetMealsByDateRange(_ context.Context, userID string, start, end time.Time) ([]*entities.PlannedMeal, error) {
	var out []*entities.PlannedMeal
	for _, meal := range r.meals {
		if meal.UserID.String() != userID {
			continue
		}
		if meal.Date.Before(start) || !meal.Date.Before(end) {
			continue
		}
		out = append(out, meal)
	}
	return out, nil
}

type fakeInventoryRepo struct {
	order []string
	items map[string]*entities.InventoryItem
}

func newFakeInventoryRepo(items ...*entities.InventoryItem) *fakeInventoryRepo {
	r := &fakeInventoryRepo{items: make(map[string]*entities.InventoryItem)}
	for _, item := range items {
		r.order = append(r.order, item.ID.String())
		r.items[item.ID.String()] = item
	}
	return r
}

func (r *fakeInventoryRepo) AddItem(_ context.Context, item *entities.InventoryItem) error {
	r.order = append(r.order, item.ID.String())
	r.items[item.ID.String()] = item
	return nil
}

func (r *fakeInventoryRepo) GetItemByID(_ context.Context, id string) (*entities.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *fakeInventoryRepo) UpdateItem(_ context.Context, item *entities.InventoryItem) error {
	r.items[item.ID.String()] = item
	return nil
}

func (r *fakeInventoryRepo) DeleteItem(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeInventoryRepo) GetItems(_ context.Context, userID string, _ string, _, _ int) ([]*entities.InventoryItem, int64, error) {
	items, _ := r.GetAllItems(context.Background(), userID)
	return items, int64(len(items)), nil
}

func (r *fakeInventoryRepo) GetAllItems(_ context.Context, userID string) ([]*entities.InventoryItem, error) {
	var out []*entities.InventoryItem
	for _, id := range r.order {
		item, ok := r.items[id]
		if !ok || item.UserID.String() != userID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

type fakeShoppingRepo struct {
	order []string
	items map[string]*entities.ShoppingListItem
	lists map[string]*entities.ShoppingList
}

func newFakeShoppingRepo() *fakeShoppingRepo {
	return &fakeShoppingRepo{
		items: make(map[string]*entities.ShoppingListItem),
		lists: make(map[string]*entities.ShoppingList),
	}
}

func (r *fakeShoppingRepo) CreateList(_ context.Context, list *entities.ShoppingList) error {
	r.lists[list.ID.String()] = list
	return nil
}

func (r *fakeShoppingRepo) GetListByID(_ context.Context, id string) (*entities.ShoppingList, error) {
	list, ok := r.lists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return list, nil
}

func (r *fakeShoppingRepo) GetLists(_ context.Context, userID string) ([]*entities.ShoppingList, error) {
	var out []*entities.ShoppingList
	for _, list := range r.lists {
		if list.UserID.String() == userID {
			out = append(out, list)
		}
	}
	return out, nil
}

func (r *fakeShoppingRepo) DeleteList(_ context.Context, id string) error {
	delete(r.lists, id)
	return nil
}

func (r *fakeShoppingRepo) AddItem(_ context.Context, item *entities.ShoppingListItem) error {
	r.order = append(r.order, item.ID.String())
	r.items[item.ID.String()] = item
	return nil
}

func (r *fakeShoppingRepo) GetItemByID(_ context.Context, id string) (*entities.ShoppingListItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *fakeShoppingRepo) UpdateItem(_ context.Context, item *entities.ShoppingListItem) error {
	r.items[item.ID.String()] = item
	return nil
}

func (r *fakeShoppingRepo) DeleteItem(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeShoppingRepo) GetItems(_ context.Context, userID string, includeCrossedOff bool) ([]*entities.ShoppingListItem, error) {
	var out []*entities.ShoppingListItem
	for _, id := range r.order {
		item, ok := r.items[id]
		if !ok || item.UserID.String() != userID {
			continue
		}
		if item.CrossedOff && !includeCrossedOff {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeShoppingRepo) GetItemsByList(_ context.Context, listID string) ([]*entities.ShoppingListItem, error) {
	var out []*entities.ShoppingListItem
	for _, id := range r.order {
		item, ok := r.items[id]
		if !ok || item.ListID.String() != listID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeShoppingRepo) DeleteItemsBySourceMeal(_ context.Context, mealID string) error {
	for id, item := range r.items {
		if item.SourceMealID != nil && item.SourceMealID.String() == mealID {
			delete(r.items, id)
		}
	}
	return nil
}

func pantryItem(userID uuid.UUID, name string, quantity *float64) *entities.InventoryItem {
	return &entities.InventoryItem{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     name,
		Quantity: quantity,
	}
}

func TestCreateMealClaimsMatchingItems(t *testing.T) {
	userID := uuid.New()
	flour := pantryItem(userID, "Flour", floatPtr(5))
	eggs := pantryItem(userID, "Eggs", floatPtr(12))

	mealRepo := newFakeMealRepo()
	invRepo := newFakeInventoryRepo(flour, eggs)
	shopRepo := newFakeShoppingRepo()
	service := NewMealService(mealRepo, invRepo, shopRepo)

	resp, err := service.CreateMeal(context.Background(), domain.CreateMealRequest{
		Name:        "Pancakes",
		Date:        "2026-03-10",
		MealType:    "breakfast",
		Ingredients: []string{"2 cups flour", "3 eggs"},
	}, userID.String())
	if err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}

	if got := resp.ReservedQuantities["flour"]; got != 2 {
		t.Errorf("reserved flour = %v, want 2", got)
	}
	if got := resp.ReservedQuantities["egg"]; got != 3 {
		t.Errorf("reserved egg = %v, want 3", got)
	}
	if len(resp.ClaimedItemIDs) != 2 {
		t.Fatalf("claimed %d items, want 2", len(resp.ClaimedItemIDs))
	}
	if !flour.UsedByMeals.Contains(resp.ID) {
		t.Error("flour item missing back-reference to meal")
	}
	if !eggs.UsedByMeals.Contains(resp.ID) {
		t.Error("eggs item missing back-reference to meal")
	}
	if *flour.Quantity != 5 {
		t.Errorf("claiming changed flour quantity to %v", *flour.Quantity)
	}
}

func TestClaimItemsForMealIdempotent(t *testing.T) {
	userID := uuid.New()
	flour := pantryItem(userID, "Flour", floatPtr(5))

	service := NewMealService(newFakeMealRepo(), newFakeInventoryRepo(flour), newFakeShoppingRepo())
	mealID := uuid.New().String()
	ingredients := []string{"2 cups flour"}
	reserved := map[string]float64{"flour": 2}

	items := []*entities.InventoryItem{flour}
	first, err := service.ClaimItemsForMeal(context.Background(), userID.String(), mealID, ingredients, items, reserved)
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	second, err := service.ClaimItemsForMeal(context.Background(), userID.String(), mealID, ingredients, items, reserved)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}

	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Errorf("claims diverged: first %v, second %v", first, second)
	}
	if len(flour.UsedByMeals) != 1 {
		t.Errorf("usedByMeals = %v, want a single entry", flour.UsedByMeals)
	}
}

func TestUpdateMealReconcilesClaims(t *testing.T) {
	userID := uuid.New()
	flour := pantryItem(userID, "Flour", floatPtr(5))
	eggs := pantryItem(userID, "Eggs", floatPtr(12))

	mealRepo := newFakeMealRepo()
	service := NewMealService(mealRepo, newFakeInventoryRepo(flour, eggs), newFakeShoppingRepo())

	resp, err := service.CreateMeal(context.Background(), domain.CreateMealRequest{
		Name:        "Pancakes",
		Date:        "2026-03-10",
		MealType:    "breakfast",
		Ingredients: []string{"2 cups flour", "3 eggs"},
	}, userID.String())
	if err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}

	err = service.UpdateMeal(context.Background(), resp.ID, domain.UpdateMealRequest{
		Ingredients: []string{"3 eggs"},
	}, userID.String())
	if err != nil {
		t.Fatalf("UpdateMeal: %v", err)
	}

	if flour.UsedByMeals.Contains(resp.ID) {
		t.Error("flour claim not released after ingredient removal")
	}
	if !eggs.UsedByMeals.Contains(resp.ID) {
		t.Error("eggs claim lost after edit")
	}

	meal := mealRepo.meals[resp.ID]
	if _, ok := meal.ReservedQuantities["flour"]; ok {
		t.Error("flour still reserved after removal")
	}
	if meal.ReservedQuantities["egg"] != 3 {
		t.Errorf("reserved egg = %v, want 3", meal.ReservedQuantities["egg"])
	}
}

func TestDeleteMealReleasesClaimsAndSourcedRows(t *testing.T) {
	userID := uuid.New()
	flour := pantryItem(userID, "Flour", floatPtr(5))

	mealRepo := newFakeMealRepo()
	shopRepo := newFakeShoppingRepo()
	service := NewMealService(mealRepo, newFakeInventoryRepo(flour), shopRepo)

	list := &entities.ShoppingList{ID: uuid.New(), UserID: userID, Name: "Groceries"}
	shopRepo.CreateList(context.Background(), list)

	resp, err := service.CreateMeal(context.Background(), domain.CreateMealRequest{
		Name:                     "Quinoa Bowl",
		Date:                     "2026-03-10",
		MealType:                 "lunch",
		Ingredients:              []string{"2 cups flour", "1 cup quinoa"},
		AddMissingToShoppingList: true,
		ShoppingListID:           list.ID.String(),
	}, userID.String())
	if err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}

	sourced, _ := shopRepo.GetItemsByList(context.Background(), list.ID.String())
	if len(sourced) != 1 || sourced[0].Name != "Quinoa" {
		t.Fatalf("expected a sourced quinoa row, got %v", sourced)
	}

	if err := service.DeleteMeal(context.Background(), resp.ID, userID.String()); err != nil {
		t.Fatalf("DeleteMeal: %v", err)
	}

	if flour.UsedByMeals.Contains(resp.ID) {
		t.Error("flour claim not released on delete")
	}
	if _, err := shopRepo.GetItemByID(context.Background(), sourced[0].ID.String()); err == nil {
		t.Error("sourced shopping row survived meal deletion")
	}
	if _, ok := mealRepo.meals[resp.ID]; ok {
		t.Error("meal row survived deletion")
	}
}

func TestMarkMealPreparedConsumesReserved(t *testing.T) {
	userID := uuid.New()
	flour := pantryItem(userID, "Flour", floatPtr(5))

	mealRepo := newFakeMealRepo()
	service := NewMealService(mealRepo, newFakeInventoryRepo(flour), newFakeShoppingRepo())

	resp, err := service.CreateMeal(context.Background(), domain.CreateMealRequest{
		Name:        "Bread",
		Date:        "2026-03-10",
		MealType:    "dinner",
		Ingredients: []string{"2 cups flour"},
	}, userID.String())
	if err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}

	err = service.MarkMealPrepared(context.Background(), resp.ID, domain.MarkMealPreparedRequest{}, userID.String())
	if err != nil {
		t.Fatalf("MarkMealPrepared: %v", err)
	}

	if *flour.Quantity != 3 {
		t.Errorf("flour quantity = %v, want 3", *flour.Quantity)
	}
	if flour.UsedByMeals.Contains(resp.ID) {
		t.Error("back-reference kept after consumption")
	}
	if !mealRepo.meals[resp.ID].Completed {
		t.Error("meal not marked completed")
	}

	err = service.MarkMealPrepared(context.Background(), resp.ID, domain.MarkMealPreparedRequest{}, userID.String())
	if err != domain.ErrMealAlreadyCompleted {
		t.Errorf("second prepare err = %v, want ErrMealAlreadyCompleted", err)
	}
}

func TestMarkMealPreparedSubset(t *testing.T) {
	userID := uuid.New()
	flour := pantryItem(userID, "Flour", floatPtr(5))
	eggs := pantryItem(userID, "Eggs", floatPtr(12))

	mealRepo := newFakeMealRepo()
	service := NewMealService(mealRepo, newFakeInventoryRepo(flour, eggs), newFakeShoppingRepo())

	resp, err := service.CreateMeal(context.Background(), domain.CreateMealRequest{
		Name:        "Pancakes",
		Date:        "2026-03-10",
		MealType:    "breakfast",
		Ingredients: []string{"2 cups flour", "3 eggs"},
	}, userID.String())
	if err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}

	err = service.MarkMealPrepared(context.Background(), resp.ID, domain.MarkMealPreparedRequest{
		Ingredients: []string{"2 cups flour"},
	}, userID.String())
	if err != nil {
		t.Fatalf("MarkMealPrepared: %v", err)
	}

	if *flour.Quantity != 3 {
		t.Errorf("flour quantity = %v, want 3", *flour.Quantity)
	}
	if *eggs.Quantity != 12 {
		t.Errorf("eggs quantity = %v, want 12 (not in subset)", *eggs.Quantity)
	}
	if !eggs.UsedByMeals.Contains(resp.ID) {
		t.Error("eggs claim released though not consumed")
	}
}

func TestMarkItemsAsUsedUntrackedQuantity(t *testing.T) {
	userID := uuid.New()
	salt := pantryItem(userID, "Salt", nil)
	mealID := uuid.New().String()
	salt.UsedByMeals = salt.UsedByMeals.Add(mealID)

	service := NewMealService(newFakeMealRepo(), newFakeInventoryRepo(salt), newFakeShoppingRepo())

	err := service.MarkItemsAsUsedForMeal(context.Background(), userID.String(), mealID,
		[]string{salt.ID.String()}, map[string]float64{"salt": 1})
	if err != nil {
		t.Fatalf("MarkItemsAsUsedForMeal: %v", err)
	}

	if salt.Quantity != nil {
		t.Errorf("untracked quantity became %v", *salt.Quantity)
	}
	if salt.UsedByMeals.Contains(mealID) {
		t.Error("back-reference kept on untracked item")
	}
}

func TestMarkItemsAsUsedSkipsDanglingIDs(t *testing.T) {
	userID := uuid.New()
	service := NewMealService(newFakeMealRepo(), newFakeInventoryRepo(), newFakeShoppingRepo())

	err := service.MarkItemsAsUsedForMeal(context.Background(), userID.String(), uuid.New().String(),
		[]string{uuid.New().String()}, map[string]float64{"flour": 2})
	if err != nil {
		t.Errorf("dangling item id should be skipped, got %v", err)
	}
}

func TestGetMealAvailabilityExcludesOwnReservations(t *testing.T) {
	userID := uuid.New()
	flour := pantryItem(userID, "Flour", floatPtr(2))

	mealRepo := newFakeMealRepo()
	service := NewMealService(mealRepo, newFakeInventoryRepo(flour), newFakeShoppingRepo())

	resp, err := service.CreateMeal(context.Background(), domain.CreateMealRequest{
		Name:        "Bread",
		Date:        "2026-03-10",
		MealType:    "dinner",
		Ingredients: []string{"2 cups flour"},
	}, userID.String())
	if err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}

	report, err := service.GetMealAvailability(context.Background(), resp.ID, userID.String())
	if err != nil {
		t.Fatalf("GetMealAvailability: %v", err)
	}
	if len(report.Ingredients) != 1 {
		t.Fatalf("got %d ingredient reports, want 1", len(report.Ingredients))
	}
	// The meal's own reservation must not count against itself.
	if got := report.Ingredients[0].Classification.Status; got != "available" {
		t.Errorf("status = %q, want available", got)
	}
}

func TestCheckAvailabilitySeesOtherMealsReservations(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	flour := pantryItem(userID, "Flour", floatPtr(2))

	mealRepo := newFakeMealRepo()
	service := NewMealService(mealRepo, newFakeInventoryRepo(flour), newFakeShoppingRepo())

	_, err := service.CreateMeal(context.Background(), domain.CreateMealRequest{
		Name:        "Bread",
		Date:        now.Format("2006-01-02"),
		MealType:    "dinner",
		Ingredients: []string{"2 cups flour"},
	}, userID.String())
	if err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}

	report, err := service.CheckAvailability(context.Background(), domain.CheckAvailabilityRequest{
		Ingredients: []string{"1 cup flour"},
	}, userID.String())
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if got := report.Ingredients[0].Classification.Status; got != "missing" {
		t.Errorf("status = %q, want missing (all flour reserved)", got)
	}
}

func TestMealOwnershipEnforced(t *testing.T) {
	userID := uuid.New()
	other := uuid.New()

	mealRepo := newFakeMealRepo()
	service := NewMealService(mealRepo, newFakeInventoryRepo(), newFakeShoppingRepo())

	resp, err := service.CreateMeal(context.Background(), domain.CreateMealRequest{
		Name:        "Toast",
		Date:        "2026-03-10",
		MealType:    "breakfast",
		Ingredients: []string{"2 slices bread"},
	}, userID.String())
	if err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}

	if err := service.DeleteMeal(context.Background(), resp.ID, other.String()); err != domain.ErrUnauthorizedAccess {
		t.Errorf("DeleteMeal by stranger err = %v, want ErrUnauthorizedAccess", err)
	}
	if _, err := service.GetMealAvailability(context.Background(), resp.ID, other.String()); err != domain.ErrUnauthorizedAccess {
		t.Errorf("GetMealAvailability by stranger err = %v, want ErrUnauthorizedAccess", err)
	}
}

func floatPtr(f float64) *float64 { return &f }
