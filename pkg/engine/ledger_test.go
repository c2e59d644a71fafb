package engine

import "testing"

func TestBuildLedgerSumLaw(t *testing.T) {
	meals := []MealReservation{
		{MealID: "a", Reserved: map[string]float64{"flour": 2, "egg": 3}},
		{MealID: "b", Reserved: map[string]float64{"flour": 1}},
		{MealID: "c", Reserved: map[string]float64{"milk": 0.5}},
	}

	ledger := BuildLedger(meals, "")
	if ledger["flour"] != 3 {
		t.Errorf("ledger[flour] = %v, want 3", ledger["flour"])
	}
	if ledger["egg"] != 3 {
		t.Errorf("ledger[egg] = %v, want 3", ledger["egg"])
	}
	if ledger["milk"] != 0.5 {
		t.Errorf("ledger[milk] = %v, want 0.5", ledger["milk"])
	}
}

func TestBuildLedgerExcludesMeal(t *testing.T) {
	meals := []MealReservation{
		{MealID: "a", Reserved: map[string]float64{"flour": 2}},
		{MealID: "b", Reserved: map[string]float64{"flour": 1}},
	}

	ledger := BuildLedger(meals, "a")
	if ledger["flour"] != 1 {
		t.Errorf("ledger[flour] = %v, want 1 with meal a excluded", ledger["flour"])
	}
}

func TestBuildLedgerSkipsCompletedMeals(t *testing.T) {
	meals := []MealReservation{
		{MealID: "a", Completed: true, Reserved: map[string]float64{"flour": 2}},
		{MealID: "b", Reserved: map[string]float64{"flour": 1}},
	}

	ledger := BuildLedger(meals, "")
	if ledger["flour"] != 1 {
		t.Errorf("ledger[flour] = %v, want 1 with completed meal skipped", ledger["flour"])
	}
}

func TestMealReservedQuantities(t *testing.T) {
	pantry := []PantryItem{
		{ID: "i1", Name: "Flour", Quantity: floatPtr(5)},
		{ID: "i2", Name: "Chicken Breast", Quantity: floatPtr(2)},
		{ID: "i3", Name: "Salt", Quantity: nil},
	}

	reserved := MealReservedQuantities([]string{
		"2 cups flour",
		"4 chicken breasts", // only 2 exist; reservation is capped
		"salt",              // no parseable quantity, reserves nothing
		"1 cup saffron",     // no pantry match, reserves nothing
	}, pantry)

	if reserved["flour"] != 2 {
		t.Errorf("reserved[flour] = %v, want 2", reserved["flour"])
	}
	if reserved["chicken breast"] != 2 {
		t.Errorf("reserved[chicken breast] = %v, want 2 (capped at pantry total)", reserved["chicken breast"])
	}
	if _, ok := reserved["salt"]; ok {
		t.Errorf("reserved[salt] present, want absent for quantity-less line")
	}
	if _, ok := reserved["saffron"]; ok {
		t.Errorf("reserved[saffron] present, want absent without pantry match")
	}
}

func TestMealReservedQuantitiesRepeatedLinesCapped(t *testing.T) {
	pantry := []PantryItem{{ID: "i1", Name: "Egg", Quantity: floatPtr(6)}}

	reserved := MealReservedQuantities([]string{"4 eggs", "4 eggs"}, pantry)
	if reserved["egg"] != 6 {
		t.Errorf("reserved[egg] = %v, want 6 (sum capped at pantry total)", reserved["egg"])
	}
}
