package recipe

import (
	"strconv"
	"strings"
)

// Unit spellings as they should read in prose, keyed by the short forms
// stored in inventory.
var unitNames = map[string]string{
	"pcs":    "piece",
	"pc":     "piece",
	"pieces": "piece",
	"g":      "grams",
	"ml":     "milliliters",
	"l":      "liters",
	"oz":     "ounces",
	"lb":     "pounds",
	"tsp":    "teaspoon",
	"tbsp":   "tablespoon",
	"cup":    "cups",
}

// FormatQuantity renders a (quantity, unit) pair for a prompt or display:
// "1 piece", "2 pieces", "500 grams". Unknown units pass through.
func FormatQuantity(quantity float64, unit string) string {
	qty := strconv.FormatFloat(quantity, 'f', -1, 64)

	base, known := unitNames[strings.ToLower(strings.TrimSpace(unit))]
	if !known {
		return qty + " " + unit
	}
	if quantity == 1 {
		return qty + " " + base
	}
	if base == "piece" {
		return qty + " pieces"
	}
	if strings.HasSuffix(base, "s") {
		return qty + " " + base
	}
	return qty + " " + base + "s"
}

// CleanUnit normalizes a bare unit string to its prose spelling.
// Empty input defaults to "piece".
func CleanUnit(unit string) string {
	unit = strings.ToLower(strings.TrimSpace(unit))
	if unit == "" {
		return "piece"
	}
	if name, ok := unitNames[unit]; ok {
		return name
	}
	return unit
}
