package meal

import (
	"context"
	"errors"
	"sort"
	"time"

	"pantryplanner/domain"
	"pantryplanner/entities"
	"pantryplanner/pkg/engine"
	"pantryplanner/pkg/inventory"
	"pantryplanner/pkg/shopping"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MealService interface {
		CreateMeal(ctx context.Context, req domain.CreateMealRequest, userID string) (domain.MealResponse, error)
		UpdateMeal(ctx context.Context, id string, req domain.UpdateMealRequest, userID string) error
		DeleteMeal(ctx context.Context, id string, userID string) error
		GetMeals(ctx context.Context, userID string, start, end time.Time) ([]domain.MealResponse, error)
		GetMealAvailability(ctx context.Context, mealID string, userID string) (domain.MealAvailabilityResponse, error)
		CheckAvailability(ctx context.Context, req domain.CheckAvailabilityRequest, userID string) (domain.MealAvailabilityResponse, error)
		MarkMealPrepared(ctx context.Context, mealID string, req domain.MarkMealPreparedRequest, userID string) error

		// Claim transaction surface, also used by the meal-editing flow.
		ClaimItemsForMeal(ctx context.Context, userID, mealID string, ingredients []string, items []*entities.InventoryItem, reservedQuantities map[string]float64) ([]string, error)
		ClaimShoppingListItemsForMeal(ctx context.Context, userID, mealID string, ingredients []string, listItems []*entities.ShoppingListItem) ([]string, error)
		MarkItemsAsUsedForMeal(ctx context.Context, userID, mealID string, itemIDs []string, reservedQuantities map[string]float64) error
	}

	mealService struct {
		mealRepository      MealRepository
		inventoryRepository inventory.InventoryRepository
		shoppingRepository  shopping.ShoppingRepository
	}
)

func NewMealService(mealRepository MealRepository, inventoryRepository inventory.InventoryRepository, shoppingRepository shopping.ShoppingRepository) MealService {
	return &mealService{
		mealRepository:      mealRepository,
		inventoryRepository: inventoryRepository,
		shoppingRepository:  shoppingRepository,
	}
}

func (s *mealService) CreateMeal(ctx context.Context, req domain.CreateMealRequest, userID string) (domain.MealResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MealResponse{}, domain.ErrParseUUID
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return domain.MealResponse{}, domain.ErrInvalidMealDate
	}

	items, err := s.inventoryRepository.GetAllItems(ctx, userID)
	if err != nil {
		return domain.MealResponse{}, err
	}

	reserved := engine.MealReservedQuantities(req.Ingredients, pantryView(items))

	meal := &entities.PlannedMeal{
		ID:                         uuid.New(),
		UserID:                     userUUID,
		Name:                       req.Name,
		Date:                       date,
		MealType:                   req.MealType,
		Ingredients:                entities.StringList(req.Ingredients),
		ReservedQuantities:         entities.QuantityMap(reserved),
		ClaimedItemIDs:             entities.StringSet{},
		ClaimedShoppingListItemIDs: entities.StringSet{},
	}

	if err := s.mealRepository.CreateMeal(ctx, meal); err != nil {
		return domain.MealResponse{}, err
	}

	claimedItemIDs, err := s.ClaimItemsForMeal(ctx, userID, meal.ID.String(), req.Ingredients, items, reserved)
	if err != nil {
		return domain.MealResponse{}, err
	}

	listItems, err := s.shoppingRepository.GetItems(ctx, userID, false)
	if err != nil {
		return domain.MealResponse{}, err
	}

	claimedListIDs, err := s.ClaimShoppingListItemsForMeal(ctx, userID, meal.ID.String(), req.Ingredients, listItems)
	if err != nil {
		return domain.MealResponse{}, err
	}

	if req.AddMissingToShoppingList && req.ShoppingListID != "" {
		addedIDs, err := s.addMissingToShoppingList(ctx, userID, meal, req.Ingredients, items, listItems, req.ShoppingListID)
		if err != nil {
			return domain.MealResponse{}, err
		}
		claimedListIDs = append(claimedListIDs, addedIDs...)
	}

	meal.ClaimedItemIDs = entities.StringSet(claimedItemIDs)
	meal.ClaimedShoppingListItemIDs = entities.StringSet(claimedListIDs)
	if err := s.mealRepository.UpdateMeal(ctx, meal); err != nil {
		return domain.MealResponse{}, err
	}

	return toMealResponse(meal), nil
}

// addMissingToShoppingList creates shopping-list entries for ingredients
// with no pantry match, tagged with this meal as their source.
func (s *mealService) addMissingToShoppingList(ctx context.Context, userID string, meal *entities.PlannedMeal, ingredients []string, items []*entities.InventoryItem, listItems []*entities.ShoppingListItem, listID string) ([]string, error) {
	list, err := s.shoppingRepository.GetListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShoppingListNotFound
		}
		return nil, err
	}
	if list.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}

	ledger, err := s.buildMonthLedger(ctx, userID, meal.Date, meal.ID.String())
	if err != nil {
		return nil, err
	}

	var added []string
	for _, line := range ingredients {
		classification := engine.Classify(line, pantryView(items), listView(listItems), ledger)
		if classification.Status != engine.StatusMissing {
			continue
		}
		if len(classification.ShoppingMatches) > 0 {
			// Already on the list; the claim link covers it.
			continue
		}

		parsed := engine.Parse(line)
		mealID := meal.ID
		item := &entities.ShoppingListItem{
			ID:           uuid.New(),
			ListID:       list.ID,
			UserID:       list.UserID,
			Name:         engine.CleanItemName(parsed.ItemName),
			Quantity:     parsed.Quantity,
			UnitMeasure:  parsed.Unit,
			SourceMealID: &mealID,
		}
		if err := s.shoppingRepository.AddItem(ctx, item); err != nil {
			return added, err
		}
		added = append(added, item.ID.String())
	}
	return added, nil
}

func (s *mealService) UpdateMeal(ctx context.Context, id string, req domain.UpdateMealRequest, userID string) error {
	meal, err := s.mealRepository.GetMealByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMealNotFound
		}
		return err
	}

	if meal.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if req.Name != "" {
		meal.Name = req.Name
	}
	if req.MealType != "" {
		meal.MealType = req.MealType
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return domain.ErrInvalidMealDate
		}
		meal.Date = date
	}

	if len(req.Ingredients) > 0 {
		if err := s.reconcileClaims(ctx, userID, meal, req.Ingredients); err != nil {
			return err
		}
	}

	return s.mealRepository.UpdateMeal(ctx, meal)
}

// reconcileClaims recomputes a meal's reservations and claims from its
// new ingredient list. Claims are diffed against current state, so
// removed ingredients release their holds and added ones acquire new
// ones; re-running after a partial failure converges to the same end
// state.
func (s *mealService) reconcileClaims(ctx context.Context, userID string, meal *entities.PlannedMeal, ingredients []string) error {
	items, err := s.inventoryRepository.GetAllItems(ctx, userID)
	if err != nil {
		return err
	}

	reserved := engine.MealReservedQuantities(ingredients, pantryView(items))

	claimedItemIDs, err := s.ClaimItemsForMeal(ctx, userID, meal.ID.String(), ingredients, items, reserved)
	if err != nil {
		return err
	}

	listItems, err := s.shoppingRepository.GetItems(ctx, userID, true)
	if err != nil {
		return err
	}

	// Shopping-list rows this meal created that no longer match any
	// remaining ingredient are removed.
	for _, item := range listItems {
		if item.SourceMealID == nil || item.SourceMealID.String() != meal.ID.String() {
			continue
		}
		if matchesAnyIngredient(item.Name, ingredients) {
			continue
		}
		if err := s.shoppingRepository.DeleteItem(ctx, item.ID.String()); err != nil {
			return err
		}
	}

	activeItems, err := s.shoppingRepository.GetItems(ctx, userID, false)
	if err != nil {
		return err
	}

	claimedListIDs, err := s.ClaimShoppingListItemsForMeal(ctx, userID, meal.ID.String(), ingredients, activeItems)
	if err != nil {
		return err
	}

	meal.Ingredients = entities.StringList(ingredients)
	meal.ReservedQuantities = entities.QuantityMap(reserved)
	meal.ClaimedItemIDs = entities.StringSet(claimedItemIDs)
	meal.ClaimedShoppingListItemIDs = entities.StringSet(claimedListIDs)
	return nil
}

func (s *mealService) DeleteMeal(ctx context.Context, id string, userID string) error {
	meal, err := s.mealRepository.GetMealByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMealNotFound
		}
		return err
	}

	if meal.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	// Release every pantry claim this meal held. Claims that no longer
	// resolve are dropped silently.
	for _, itemID := range meal.ClaimedItemIDs {
		item, err := s.inventoryRepository.GetItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if !item.UsedByMeals.Contains(meal.ID.String()) {
			continue
		}
		item.UsedByMeals = item.UsedByMeals.Remove(meal.ID.String())
		if err := s.inventoryRepository.UpdateItem(ctx, item); err != nil {
			return err
		}
	}

	if err := s.shoppingRepository.DeleteItemsBySourceMeal(ctx, meal.ID.String()); err != nil {
		return err
	}

	return s.mealRepository.DeleteMeal(ctx, id)
}

func (s *mealService) GetMeals(ctx context.Context, userID string, start, end time.Time) ([]domain.MealResponse, error) {
	meals, err := s.mealRepository.GetMealsByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	response := make([]domain.MealResponse, 0, len(meals))
	for _, meal := range meals {
		response = append(response, toMealResponse(meal))
	}
	return response, nil
}

func (s *mealService) GetMealAvailability(ctx context.Context, mealID string, userID string) (domain.MealAvailabilityResponse, error) {
	meal, err := s.mealRepository.GetMealByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MealAvailabilityResponse{}, domain.ErrMealNotFound
		}
		return domain.MealAvailabilityResponse{}, err
	}

	if meal.UserID.String() != userID {
		return domain.MealAvailabilityResponse{}, domain.ErrUnauthorizedAccess
	}

	report, err := s.classifyLines(ctx, userID, meal.Ingredients, meal.Date, meal.ID.String())
	if err != nil {
		return domain.MealAvailabilityResponse{}, err
	}
	report.MealID = meal.ID.String()
	return report, nil
}

func (s *mealService) CheckAvailability(ctx context.Context, req domain.CheckAvailabilityRequest, userID string) (domain.MealAvailabilityResponse, error) {
	return s.classifyLines(ctx, userID, req.Ingredients, time.Now(), req.ExcludeMealID)
}

// classifyLines runs the availability engine over a set of ingredient
// lines against the user's current pantry, shopping list, and the
// reservation ledger for the calendar month around scopeDate.
func (s *mealService) classifyLines(ctx context.Context, userID string, lines []string, scopeDate time.Time, excludeMealID string) (domain.MealAvailabilityResponse, error) {
	items, err := s.inventoryRepository.GetAllItems(ctx, userID)
	if err != nil {
		return domain.MealAvailabilityResponse{}, err
	}

	listItems, err := s.shoppingRepository.GetItems(ctx, userID, true)
	if err != nil {
		return domain.MealAvailabilityResponse{}, err
	}

	ledger, err := s.buildMonthLedger(ctx, userID, scopeDate, excludeMealID)
	if err != nil {
		return domain.MealAvailabilityResponse{}, err
	}

	report := domain.MealAvailabilityResponse{
		Ingredients: make([]domain.IngredientAvailability, 0, len(lines)),
	}
	for _, line := range lines {
		report.Ingredients = append(report.Ingredients, domain.IngredientAvailability{
			Line:           line,
			Classification: engine.Classify(line, pantryView(items), listView(listItems), ledger),
		})
	}
	return report, nil
}

// buildMonthLedger recomputes the reservation ledger from the meals
// stored in scopeDate's calendar month. Derived on demand, never
// persisted.
func (s *mealService) buildMonthLedger(ctx context.Context, userID string, scopeDate time.Time, excludeMealID string) (engine.Ledger, error) {
	start := time.Date(scopeDate.Year(), scopeDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	meals, err := s.mealRepository.GetMealsByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	reservations := make([]engine.MealReservation, 0, len(meals))
	for _, m := range meals {
		reservations = append(reservations, engine.MealReservation{
			MealID:    m.ID.String(),
			Completed: m.Completed,
			Reserved:  m.ReservedQuantities,
		})
	}

	return engine.BuildLedger(reservations, excludeMealID), nil
}

// ClaimItemsForMeal reconciles the meal's soft holds on pantry items
// against the desired state derived from its ingredients: items that
// should be claimed gain the meal id in usedByMeals, items that should
// not lose it. Pantry quantity is never touched here; a claim is a
// hold, not a consumption. Each write is independent, so a partial
// failure is repaired by re-running.
func (s *mealService) ClaimItemsForMeal(ctx context.Context, userID, mealID string, ingredients []string, items []*entities.InventoryItem, reservedQuantities map[string]float64) ([]string, error) {
	desired := make(map[string]bool)
	for _, line := range ingredients {
		parsed := engine.Parse(line)
		if reservedQuantities[engine.Normalize(parsed.ItemName)] <= 0 {
			continue
		}
		for _, item := range items {
			if engine.Matches(parsed.ItemName, item.Name) {
				desired[item.ID.String()] = true
			}
		}
	}

	claimed := make([]string, 0, len(desired))
	for _, item := range items {
		id := item.ID.String()
		has := item.UsedByMeals.Contains(mealID)

		switch {
		case desired[id] && !has:
			item.UsedByMeals = item.UsedByMeals.Add(mealID)
			if err := s.inventoryRepository.UpdateItem(ctx, item); err != nil {
				return claimed, err
			}
		case !desired[id] && has:
			item.UsedByMeals = item.UsedByMeals.Remove(mealID)
			if err := s.inventoryRepository.UpdateItem(ctx, item); err != nil {
				return claimed, err
			}
		}

		if desired[id] {
			claimed = append(claimed, id)
		}
	}

	return claimed, nil
}

// ClaimShoppingListItemsForMeal links existing list entries that match
// one of the meal's ingredients instead of creating duplicates. The
// linkage lives on the meal, so this is a pure resolution step.
func (s *mealService) ClaimShoppingListItemsForMeal(ctx context.Context, userID, mealID string, ingredients []string, listItems []*entities.ShoppingListItem) ([]string, error) {
	claimed := make([]string, 0)
	for _, item := range listItems {
		if item.CrossedOff {
			continue
		}
		if matchesAnyIngredient(item.Name, ingredients) {
			claimed = append(claimed, item.ID.String())
		}
	}
	return claimed, nil
}

// MarkItemsAsUsedForMeal performs the actual consumption when a meal is
// confirmed prepared: tracked quantities drop by the reserved amount
// (floored at zero), untracked items only lose the back-reference. Item
// ids that no longer resolve are skipped.
func (s *mealService) MarkItemsAsUsedForMeal(ctx context.Context, userID, mealID string, itemIDs []string, reservedQuantities map[string]float64) error {
	names := make([]string, 0, len(reservedQuantities))
	for name := range reservedQuantities {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, itemID := range itemIDs {
		item, err := s.inventoryRepository.GetItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if item.UserID.String() != userID {
			continue
		}

		if item.Quantity != nil {
			for _, name := range names {
				if !engine.Matches(name, item.Name) {
					continue
				}
				remaining := *item.Quantity - reservedQuantities[name]
				if remaining < 0 {
					remaining = 0
				}
				item.Quantity = &remaining
				break
			}
		}

		item.UsedByMeals = item.UsedByMeals.Remove(mealID)
		if err := s.inventoryRepository.UpdateItem(ctx, item); err != nil {
			return err
		}
	}

	return nil
}

func (s *mealService) MarkMealPrepared(ctx context.Context, mealID string, req domain.MarkMealPreparedRequest, userID string) error {
	meal, err := s.mealRepository.GetMealByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMealNotFound
		}
		return err
	}

	if meal.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}
	if meal.Completed {
		return domain.ErrMealAlreadyCompleted
	}

	lines := req.Ingredients
	if len(lines) == 0 {
		lines = meal.Ingredients
	}

	// Re-resolve the selected ingredients against current inventory; the
	// claim set stored at save time may be stale.
	items, err := s.inventoryRepository.GetAllItems(ctx, userID)
	if err != nil {
		return err
	}

	reserved := engine.MealReservedQuantities(lines, pantryView(items))

	selected := make([]string, 0, len(meal.ClaimedItemIDs))
	for _, item := range items {
		if !meal.ClaimedItemIDs.Contains(item.ID.String()) {
			continue
		}
		if matchesAnyIngredient(item.Name, lines) {
			selected = append(selected, item.ID.String())
		}
	}

	if err := s.MarkItemsAsUsedForMeal(ctx, userID, meal.ID.String(), selected, reserved); err != nil {
		return err
	}

	meal.Completed = true
	return s.mealRepository.UpdateMeal(ctx, meal)
}

func matchesAnyIngredient(name string, ingredients []string) bool {
	for _, line := range ingredients {
		parsed := engine.Parse(line)
		if engine.Matches(parsed.ItemName, name) {
			return true
		}
	}
	return false
}

func pantryView(items []*entities.InventoryItem) []engine.PantryItem {
	view := make([]engine.PantryItem, 0, len(items))
	for _, item := range items {
		view = append(view, engine.PantryItem{
			ID:       item.ID.String(),
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}
	return view
}

func listView(items []*entities.ShoppingListItem) []engine.ListItem {
	view := make([]engine.ListItem, 0, len(items))
	for _, item := range items {
		view = append(view, engine.ListItem{
			ID:         item.ID.String(),
			Name:       item.Name,
			CrossedOff: item.CrossedOff,
		})
	}
	return view
}

func toMealResponse(meal *entities.PlannedMeal) domain.MealResponse {
	return domain.MealResponse{
		ID:                 meal.ID.String(),
		Name:               meal.Name,
		Date:               meal.Date,
		MealType:           meal.MealType,
		Ingredients:        meal.Ingredients,
		ReservedQuantities: meal.ReservedQuantities,
		ClaimedItemIDs:     meal.ClaimedItemIDs,
		ClaimedListItemIDs: meal.ClaimedShoppingListItemIDs,
		Completed:          meal.Completed,
		CreatedAt:          meal.CreatedAt,
	}
}
