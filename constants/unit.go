package constants

import (
	"strings"
	"unicode"
)

type Unit string

const (
	Kilogram   Unit = "kg"
	Gram       Unit = "g"
	Liter      Unit = "l"
	Milliliter Unit = "ml"
	Piece      Unit = "pcs"
	Ounce      Unit = "oz"
	Pound      Unit = "lb"
)

var allUnits = []Unit{Kilogram, Gram, Liter, Milliliter, Piece, Ounce, Pound}

// unitPatterns maps each canonical unit to its spelling variants as they
// appear on receipts.
var unitPatterns = map[Unit][]string{
	Kilogram:   {"kg", "kilo", "kilos", "kilogram"},
	Gram:       {"g", "gram", "grams"},
	Liter:      {"l", "liter", "liters"},
	Milliliter: {"ml", "milliliter"},
	Piece:      {"pc", "pcs", "piece", "pieces", "count", "ct", "pack", "pkg"},
	Ounce:      {"oz", "ounce", "ounces"},
	Pound:      {"lb", "lbs", "pound", "pounds"},
}

// IdentifyUnit resolves a unit from free text. Letter runs are compared
// whole against the synonym lists, so the "l" in "lb" cannot match liter.
func IdentifyUnit(text string) Unit {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, tok := range tokens {
		for _, unit := range allUnits {
			for _, pattern := range unitPatterns[unit] {
				if tok == pattern {
					return unit
				}
			}
		}
	}
	return Piece
}
