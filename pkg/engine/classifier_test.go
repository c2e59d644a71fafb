package engine

import "testing"

func TestClassifyAvailable(t *testing.T) {
	pantry := []PantryItem{{ID: "i1", Name: "Flour", Quantity: floatPtr(5)}}

	got := Classify("2 cups flour", pantry, nil, Ledger{})
	if got.Status != StatusAvailable {
		t.Fatalf("status = %q, want %q", got.Status, StatusAvailable)
	}
	if got.Count != 1 || len(got.MatchingItems) != 1 {
		t.Errorf("count = %d, matches = %d, want 1 and 1", got.Count, len(got.MatchingItems))
	}
	if got.AvailableQuantity == nil || *got.AvailableQuantity != 5 {
		t.Errorf("availableQuantity = %v, want 5", got.AvailableQuantity)
	}
	if got.NeededQuantity == nil || *got.NeededQuantity != 2 {
		t.Errorf("neededQuantity = %v, want 2", got.NeededQuantity)
	}
}

func TestClassifyPartialAfterReservation(t *testing.T) {
	// Pantry holds 2 chicken breasts; another meal already reserved 1.
	pantry := []PantryItem{{ID: "i1", Name: "Chicken Breast", Quantity: floatPtr(2)}}
	ledger := Ledger{"chicken breast": 1}

	got := Classify("2 chicken breasts", pantry, nil, ledger)
	if got.Status != StatusPartial {
		t.Fatalf("status = %q, want %q", got.Status, StatusPartial)
	}
	if got.AvailableQuantity == nil || *got.AvailableQuantity != 1 {
		t.Errorf("availableQuantity = %v, want 1", got.AvailableQuantity)
	}

	// The same line needing only the single free unit is available.
	got = Classify("1 chicken breast", pantry, nil, ledger)
	if got.Status != StatusAvailable {
		t.Errorf("status = %q, want %q", got.Status, StatusAvailable)
	}
}

func TestClassifyMissing(t *testing.T) {
	pantry := []PantryItem{{ID: "i1", Name: "Chicken Breast", Quantity: floatPtr(2)}}

	// No pantry match at all.
	got := Classify("2 cups flour", pantry, nil, Ledger{})
	if got.Status != StatusMissing {
		t.Errorf("status = %q, want %q", got.Status, StatusMissing)
	}
	if len(got.MatchingItems) != 0 {
		t.Errorf("matchingItems = %d, want 0", len(got.MatchingItems))
	}

	// Match exists but is fully committed elsewhere and the ingredient
	// needs a numeric amount.
	got = Classify("2 chicken breasts", pantry, nil, Ledger{"chicken breast": 2})
	if got.Status != StatusMissing {
		t.Errorf("status = %q, want %q", got.Status, StatusMissing)
	}
}

func TestClassifyReserved(t *testing.T) {
	// Fully allocated to other meals and no quantity on the ingredient:
	// someone else is using the only one.
	pantry := []PantryItem{{ID: "i1", Name: "Lasagna Sheets", Quantity: floatPtr(1)}}
	ledger := Ledger{"lasagna sheet": 1}

	got := Classify("lasagna sheets", pantry, nil, ledger)
	if got.Status != StatusReserved {
		t.Fatalf("status = %q, want %q", got.Status, StatusReserved)
	}
}

func TestClassifyUntrackedQuantity(t *testing.T) {
	// Untracked quantity counts toward availability but not toward the
	// numeric comparison.
	pantry := []PantryItem{{ID: "i1", Name: "Salt", Quantity: nil}}

	got := Classify("salt", pantry, nil, Ledger{})
	if got.Status != StatusAvailable {
		t.Errorf("status = %q, want %q", got.Status, StatusAvailable)
	}

	got = Classify("2 tsp salt", pantry, nil, Ledger{})
	if got.Status != StatusAvailable {
		t.Errorf("status = %q, want %q", got.Status, StatusAvailable)
	}
}

func TestClassifyShoppingContext(t *testing.T) {
	shopping := []ListItem{
		{ID: "s1", Name: "flour"},
		{ID: "s2", Name: "flour", CrossedOff: true},
		{ID: "s3", Name: "butter"},
	}

	got := Classify("2 cups flour", nil, shopping, Ledger{})
	if got.Status != StatusMissing {
		t.Fatalf("status = %q, want %q", got.Status, StatusMissing)
	}
	if len(got.ShoppingMatches) != 1 || got.ShoppingMatches[0].ID != "s1" {
		t.Errorf("shoppingMatches = %v, want the single non-crossed-off flour entry", got.ShoppingMatches)
	}
}

func TestClassifyIsPure(t *testing.T) {
	pantry := []PantryItem{{ID: "i1", Name: "Chicken Breast", Quantity: floatPtr(2)}}
	ledger := Ledger{"chicken breast": 1}

	first := Classify("2 chicken breasts", pantry, nil, ledger)
	second := Classify("2 chicken breasts", pantry, nil, ledger)

	if first.Status != second.Status || *first.AvailableQuantity != *second.AvailableQuantity {
		t.Errorf("Classify is not deterministic: %+v vs %+v", first, second)
	}
}

func TestClassifyMalformedInput(t *testing.T) {
	got := Classify("   ", nil, nil, nil)
	if got.Status != StatusMissing {
		t.Errorf("status = %q, want %q", got.Status, StatusMissing)
	}
	if got.MatchingItems == nil || len(got.MatchingItems) != 0 {
		t.Errorf("matchingItems = %v, want empty non-nil slice", got.MatchingItems)
	}
}
