package engine

import "testing"

func floatPtr(v float64) *float64 { return &v }

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		quantity *float64
		unit     string
		itemName string
	}{
		{"quantity unit and descriptor", "2 cups flour, diced", floatPtr(2), "cup", "flour"},
		{"bare item", "salt", nil, "", "salt"},
		{"simple fraction", "1/2 cup sugar", floatPtr(0.5), "cup", "sugar"},
		{"mixed number", "1 1/2 cups milk", floatPtr(1.5), "cup", "milk"},
		{"range takes lower bound", "2-3 apples", floatPtr(2), "", "apples"},
		{"decimal quantity", "0.5 kg rice", floatPtr(0.5), "kg", "rice"},
		{"unit long form", "2 tablespoons olive oil", floatPtr(2), "tbsp", "olive oil"},
		{"unrecognized unit stays in name", "2 cloves garlic, minced", floatPtr(2), "", "cloves garlic"},
		{"parenthetical stripped", "1 onion (about 150g), chopped", floatPtr(1), "", "onion"},
		{"to taste stripped", "pepper to taste", nil, "", "pepper"},
		{"hyphenated word is not a range", "low-sodium soy sauce", nil, "", "low-sodium soy sauce"},
		{"empty line", "", nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.line)
			if (got.Quantity == nil) != (tt.quantity == nil) {
				t.Fatalf("Parse(%q) quantity = %v, want %v", tt.line, got.Quantity, tt.quantity)
			}
			if got.Quantity != nil && *got.Quantity != *tt.quantity {
				t.Errorf("Parse(%q) quantity = %v, want %v", tt.line, *got.Quantity, *tt.quantity)
			}
			if got.Unit != tt.unit {
				t.Errorf("Parse(%q) unit = %q, want %q", tt.line, got.Unit, tt.unit)
			}
			if got.ItemName != tt.itemName {
				t.Errorf("Parse(%q) itemName = %q, want %q", tt.line, got.ItemName, tt.itemName)
			}
		})
	}
}

func TestParseNeverFails(t *testing.T) {
	// Garbage in, best-effort structured value out. Never a panic, never
	// an empty result for non-empty input.
	lines := []string{"!!!", "   ", "1/0 cup chaos", "((((", "3- x"}
	for _, line := range lines {
		got := Parse(line)
		_ = got.ItemName
	}
}

func TestParseUnitVocabulary(t *testing.T) {
	tests := []struct {
		line string
		unit string
	}{
		{"1 cup water", "cup"},
		{"1 tbsp butter", "tbsp"},
		{"1 teaspoon vanilla", "tsp"},
		{"4 oz cheese", "oz"},
		{"2 lbs potatoes", "lb"},
		{"500 g beef", "g"},
		{"1 kilogram flour", "kg"},
		{"250 ml cream", "ml"},
		{"1 litre stock", "l"},
	}
	for _, tt := range tests {
		if got := Parse(tt.line); got.Unit != tt.unit {
			t.Errorf("Parse(%q) unit = %q, want %q", tt.line, got.Unit, tt.unit)
		}
	}
}

func TestCleanItemName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chicken chicken breast", "Chicken Breast"},
		{"FLOUR", "Flour"},
		{"olive  oil", "Olive Oil"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanItemName(tt.in); got != tt.want {
			t.Errorf("CleanItemName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
