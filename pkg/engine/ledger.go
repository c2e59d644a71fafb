package engine

// Ledger maps a normalized item name to the total quantity already
// committed by the meals in scope. It is derived and read-only:
// recomputed fresh from stored meals rather than maintained
// incrementally, which keeps it self-healing after data edits at an
// O(meals x ingredients) recomputation cost. Callers bound that cost by
// scoping the input (the app passes one calendar month of meals).
type Ledger map[string]float64

// MealReservation is the slice of a stored meal the ledger needs.
// Reserved keys are normalized names, written once at meal-save time by
// MealReservedQuantities.
type MealReservation struct {
	MealID    string
	Completed bool
	Reserved  map[string]float64
}

// BuildLedger sums reserved quantities across the given meals, skipping
// completed meals and the meal whose id equals excludeMealID (so a meal
// being edited does not count against itself). Pure aggregation: no
// matching logic of its own.
func BuildLedger(meals []MealReservation, excludeMealID string) Ledger {
	ledger := make(Ledger)
	for _, meal := range meals {
		if meal.Completed {
			continue
		}
		if excludeMealID != "" && meal.MealID == excludeMealID {
			continue
		}
		for name, qty := range meal.Reserved {
			ledger[name] += qty
		}
	}
	return ledger
}

// MealReservedQuantities computes what a single meal commits to using:
// per normalized name, min(neededQuantity, totalPantryQuantity). A meal
// only reserves what it could plausibly consume, never more than
// exists. Lines with no parseable quantity or no pantry match reserve
// nothing.
func MealReservedQuantities(ingredients []string, pantryItems []PantryItem) map[string]float64 {
	reserved := make(map[string]float64)
	for _, line := range ingredients {
		parsed := Parse(line)
		if parsed.Quantity == nil {
			continue
		}

		matches := BestMatches(parsed.ItemName, pantryItems)
		if len(matches) == 0 {
			continue
		}

		total := 0.0
		for _, m := range matches {
			if m.Quantity != nil {
				total += *m.Quantity
			}
		}
		if total <= 0 {
			continue
		}

		name := Normalize(parsed.ItemName)
		want := reserved[name] + *parsed.Quantity
		if want > total {
			want = total
		}
		reserved[name] = want
	}
	return reserved
}
