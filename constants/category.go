package constants

import "strings"

type Category string

const (
	Coffee    Category = "coffee"
	Dairy     Category = "dairy"
	Meat      Category = "meat"
	Produce   Category = "produce"
	Beverages Category = "beverages"
	Snacks    Category = "snacks"
	Cleaning  Category = "cleaning"
	Pantry    Category = "pantry"
	Other     Category = "other"
)

var allCategories = []Category{
	Coffee,
	Dairy,
	Meat,
	Produce,
	Beverages,
	Snacks,
	Cleaning,
	Pantry,
	Other,
}

// categoryKeywords maps each category to the substrings that identify it.
// Order of allCategories decides ties: the first category with a match wins.
var categoryKeywords = map[Category][]string{
	Coffee:    {"folgers", "maxwell", "nescafe", "coffee"},
	Dairy:     {"milk", "cheese", "yogurt", "cream", "butter", "eggs"},
	Meat:      {"chicken", "chkn", "beef", "pork", "turkey", "fish", "salmon"},
	Produce:   {"apple", "banana", "orange", "lettuce", "tomato", "potato", "lemon"},
	Beverages: {"juice", "soda", "water", "tea"},
	Snacks:    {"chips", "cookies", "crackers", "nuts"},
	Cleaning:  {"soap", "detergent", "cleaner", "wipes", "nitril"},
	Pantry:    {"pasta", "rice", "flour", "sugar", "salt", "bread", "pnt buttr", "peanut butter", "butter"},
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// IdentifyCategory resolves an item name to a grocery category by keyword
// containment. Substring matching is intentional: receipt abbreviations
// ("CHKN BRST") rarely survive tokenization.
func IdentifyCategory(itemName string) Category {
	name := strings.ToLower(itemName)
	for _, cat := range allCategories {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(name, kw) {
				return cat
			}
		}
	}
	return Other
}
