package engine

import (
	"strconv"
	"strings"
)

// ParsedIngredient is the structured form of one raw ingredient line.
// Quantity is nil when no leading number could be read; Unit is empty
// unless the token after the quantity belongs to the known vocabulary.
type ParsedIngredient struct {
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	ItemName string   `json:"item_name"`
}

// canonicalUnits maps every accepted spelling to its canonical abbreviation.
var canonicalUnits = map[string]string{
	"cup": "cup", "cups": "cup",
	"tbsp": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"tsp": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"g": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kilogram": "kg", "kilograms": "kg",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
}

// descriptorStopList holds preparation/quality words stripped from item names.
var descriptorStopList = map[string]bool{
	"chopped": true, "diced": true, "minced": true, "sliced": true,
	"grated": true, "shredded": true, "melted": true, "softened": true,
	"peeled": true, "crushed": true, "ground": true, "beaten": true,
	"fresh": true, "frozen": true, "dried": true, "organic": true,
	"ripe": true, "raw": true, "cooked": true, "optional": true,
	"finely": true, "coarsely": true, "thinly": true, "roughly": true,
	"to": true, "taste": true,
}

// Parse turns a raw ingredient line into a quantity/unit/name triple.
// It never fails: the worst case is the whole line coming back as the
// item name with no quantity or unit.
func Parse(line string) ParsedIngredient {
	stripped := stripParentheticals(line)
	tokens := strings.Fields(stripped)
	if len(tokens) == 0 {
		return ParsedIngredient{ItemName: strings.TrimSpace(line)}
	}

	quantity, consumed := parseLeadingQuantity(tokens)

	unit := ""
	if quantity != nil && consumed < len(tokens) {
		candidate := strings.ToLower(strings.Trim(tokens[consumed], ",."))
		if canonical, ok := canonicalUnits[candidate]; ok {
			unit = canonical
			consumed++
		}
	}

	name := cleanNameTokens(tokens[consumed:])
	if name == "" {
		// Everything got consumed or stripped; fall back to the raw line.
		name = strings.TrimSpace(line)
		if name == "" {
			name = stripped
		}
	}

	return ParsedIngredient{Quantity: quantity, Unit: unit, ItemName: name}
}

// parseLeadingQuantity reads a number from the front of the token list.
// Supported forms: integers and decimals ("2", "1.5"), simple fractions
// ("1/2"), mixed numbers ("1 1/2"), and ranges ("2-3", taking the lower
// bound as a conservative estimate). Returns nil and zero consumed
// tokens when the first token is not numeric.
func parseLeadingQuantity(tokens []string) (*float64, int) {
	first := strings.Trim(tokens[0], ",")

	if low, ok := parseRange(first); ok {
		return &low, 1
	}

	value, ok := parseNumeric(first)
	if !ok {
		return nil, 0
	}

	// Mixed number: "1 1/2" means 1.5.
	if len(tokens) > 1 {
		if frac, ok := parseFraction(strings.Trim(tokens[1], ",")); ok {
			total := value + frac
			return &total, 2
		}
	}

	return &value, 1
}

func parseNumeric(tok string) (float64, bool) {
	if frac, ok := parseFraction(tok); ok {
		return frac, true
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFraction(tok string) (float64, bool) {
	num, den, found := strings.Cut(tok, "/")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

func parseRange(tok string) (float64, bool) {
	low, high, found := strings.Cut(tok, "-")
	if !found || low == "" || high == "" {
		return 0, false
	}
	l, err := strconv.ParseFloat(low, 64)
	if err != nil {
		return 0, false
	}
	if _, err := strconv.ParseFloat(high, 64); err != nil {
		return 0, false
	}
	return l, true
}

func stripParentheticals(line string) string {
	var b strings.Builder
	depth := 0
	for _, r := range line {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// cleanNameTokens drops descriptor words and trailing punctuation from
// the remainder of an ingredient line.
func cleanNameTokens(tokens []string) string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		word := strings.Trim(tok, ",.;:")
		if word == "" {
			continue
		}
		if descriptorStopList[strings.ToLower(word)] {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

// CleanItemName collapses duplicate words and title-cases an item name
// for display. It has no parsing responsibility.
func CleanItemName(name string) string {
	tokens := strings.Fields(name)
	seen := make(map[string]bool, len(tokens))
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		key := strings.ToLower(tok)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, titleCase(tok))
	}
	return strings.Join(kept, " ")
}

func titleCase(word string) string {
	lower := strings.ToLower(word)
	r := []rune(lower)
	if len(r) == 0 {
		return word
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
