package engine

import "strings"

// Status classifies one ingredient's availability against the pantry.
type Status string

const (
	// StatusAvailable means the pantry covers the needed quantity (or the
	// ingredient has no parseable quantity and a match with stock exists).
	StatusAvailable Status = "available"
	// StatusPartial means some, but not all, of the needed quantity is free.
	StatusPartial Status = "partial"
	// StatusMissing means no pantry match exists, or every matched unit is
	// already committed elsewhere.
	StatusMissing Status = "missing"
	// StatusReserved means a match exists but other meals hold all of it,
	// and the ingredient itself carries no quantity to compare against.
	StatusReserved Status = "reserved"
)

// PantryItem is the engine's read-only view of an inventory record.
// A nil Quantity means the item is present but its amount is untracked.
type PantryItem struct {
	ID       string
	Name     string
	Quantity *float64
}

func (p PantryItem) MatchName() string { return p.Name }

// ListItem is the engine's read-only view of a shopping-list entry.
type ListItem struct {
	ID         string
	Name       string
	CrossedOff bool
}

func (l ListItem) MatchName() string { return l.Name }

// Classification is the result of classifying one ingredient line.
// ShoppingMatches is informational context (the ingredient is already on
// the shopping list), not a replacement for the pantry status.
type Classification struct {
	Status            Status       `json:"status"`
	MatchingItems     []PantryItem `json:"matching_items"`
	ShoppingMatches   []ListItem   `json:"shopping_matches,omitempty"`
	Count             int          `json:"count"`
	AvailableQuantity *float64     `json:"available_quantity,omitempty"`
	NeededQuantity    *float64     `json:"needed_quantity,omitempty"`
}

// Classify labels one raw ingredient line against the pantry, the
// shopping list, and the reservation ledger. It is a pure read: absent
// or malformed input degrades to StatusMissing with no matches rather
// than failing.
func Classify(ingredientLine string, pantryItems []PantryItem, shoppingListItems []ListItem, ledger Ledger) Classification {
	parsed := Parse(ingredientLine)
	if strings.TrimSpace(parsed.ItemName) == "" {
		return Classification{Status: StatusMissing, MatchingItems: []PantryItem{}}
	}

	matches := BestMatches(parsed.ItemName, pantryItems)

	shoppingMatches := classifyShopping(parsed.ItemName, shoppingListItems)

	if len(matches) == 0 {
		return Classification{
			Status:          StatusMissing,
			MatchingItems:   []PantryItem{},
			ShoppingMatches: shoppingMatches,
			NeededQuantity:  parsed.Quantity,
		}
	}

	total := 0.0
	hasUntracked := false
	for _, m := range matches {
		if m.Quantity == nil {
			hasUntracked = true
			continue
		}
		total += *m.Quantity
	}

	reserved := ledger[Normalize(parsed.ItemName)]
	net := total - reserved
	if net < 0 {
		net = 0
	}

	status := classifyNet(net, reserved, parsed.Quantity, hasUntracked)

	return Classification{
		Status:            status,
		MatchingItems:     matches,
		ShoppingMatches:   shoppingMatches,
		Count:             len(matches),
		AvailableQuantity: &net,
		NeededQuantity:    parsed.Quantity,
	}
}

// classifyNet applies the status priority order: missing, reserved,
// available, partial.
func classifyNet(net, reserved float64, needed *float64, hasUntracked bool) Status {
	if needed == nil {
		if net > 0 || hasUntracked {
			return StatusAvailable
		}
		if reserved > 0 {
			// Someone else is using the only one.
			return StatusReserved
		}
		return StatusMissing
	}

	switch {
	case net >= *needed && net > 0:
		return StatusAvailable
	case net > 0:
		return StatusPartial
	case hasUntracked:
		// Present but uncountable: counts toward availability, never
		// toward the numeric comparison.
		return StatusAvailable
	default:
		return StatusMissing
	}
}

func classifyShopping(itemName string, items []ListItem) []ListItem {
	active := make([]ListItem, 0, len(items))
	for _, it := range items {
		if !it.CrossedOff {
			active = append(active, it)
		}
	}
	return BestMatches(itemName, active)
}
