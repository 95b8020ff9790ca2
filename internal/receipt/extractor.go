package receipt

import (
	"regexp"
	"strconv"
	"strings"

	"pantrychef/constants"
)

var (
	reProductCode = regexp.MustCompile(`(\d{12})`)
	reLongDigits  = regexp.MustCompile(`\d{12,}`)
	rePrice       = regexp.MustCompile(`\$?(\d+\.\d{2})`)

	quantityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:x|X|\*)`),
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:pc|pcs|piece|pieces|count|ct)`),
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:kg|g|l|ml|oz|lb|lbs)`),
		regexp.MustCompile(`^(\d+(?:\.\d+)?)\s`),
	}

	// OCR artifacts stripped from item names. Order matters: product codes
	// before bare digits, prices before the flag letters.
	nameArtifacts = []*regexp.Regexp{
		reLongDigits,
		regexp.MustCompile(`(?i)\d+\s*[xX]\s*`),
		regexp.MustCompile(`\$?\d+\.\d{2}`),
		regexp.MustCompile(`(?i)\b(?:F|N)\b`),
		regexp.MustCompile(`(?i)\b(?:pc|pcs|piece|pieces|count|ct)\b`),
		regexp.MustCompile(`(?i)\b(?:kg|g|l|ml|oz|lb|lbs)\b`),
	}

	reDigitsOnly = regexp.MustCompile(`^\d+$`)
)

// ExtractQuantity pulls a quantity out of a receipt line. Product codes are
// removed first so the bare-leading-number pattern cannot read one as a
// quantity. Defaults to 1.
func ExtractQuantity(text string) float64 {
	text = strings.TrimSpace(reLongDigits.ReplaceAllString(text, ""))
	for _, p := range quantityPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if q, err := strconv.ParseFloat(m[1], 64); err == nil {
				return q
			}
		}
	}
	return 1.0
}

// ExtractPrice pulls a price out of a receipt line. Defaults to 0.
func ExtractPrice(text string) float64 {
	if m := rePrice.FindStringSubmatch(text); m != nil {
		if p, err := strconv.ParseFloat(m[1], 64); err == nil {
			return p
		}
	}
	return 0.0
}

// CleanItemName normalizes a raw receipt line into a product name. A known
// 12-digit product code wins outright; otherwise receipt artifacts are
// stripped and whitespace collapsed.
func CleanItemName(text string) string {
	if m := reProductCode.FindStringSubmatch(text); m != nil {
		if name := constants.LookupProductCode(m[1]); name != "" {
			return name
		}
	}

	cleaned := text
	for _, p := range nameArtifacts {
		cleaned = p.ReplaceAllString(cleaned, "")
	}
	return strings.Join(strings.Fields(cleaned), " ")
}

// ExtractItem turns one receipt line into an Item, or (zero, false) when the
// line does not look like a purchasable product.
func ExtractItem(line string) (Item, bool) {
	if ShouldIgnoreLine(line) {
		return Item{}, false
	}

	name := CleanItemName(line)
	if len(name) < 3 || reDigitsOnly.MatchString(name) {
		return Item{}, false
	}

	item := Item{
		Name:     titleCase(name),
		Quantity: ExtractQuantity(line),
		Unit:     constants.IdentifyUnit(line),
		Price:    ExtractPrice(line),
		Category: constants.IdentifyCategory(name),
	}
	return item, true
}

// CleanQuantity coerces a model-reported quantity: strings parse as floats,
// non-positive or unparseable values fall back to 1.
func CleanQuantity(v any) float64 {
	var q float64
	switch t := v.(type) {
	case float64:
		q = t
	case int:
		q = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 1.0
		}
		q = parsed
	default:
		return 1.0
	}
	if q <= 0 {
		return 1.0
	}
	return q
}

// CleanPrice coerces a model-reported price: negative or unparseable
// values fall back to 0.
func CleanPrice(v any) float64 {
	var p float64
	switch t := v.(type) {
	case float64:
		p = t
	case int:
		p = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0.0
		}
		p = parsed
	default:
		return 0.0
	}
	if p < 0 {
		return 0.0
	}
	return p
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
			words[i] = string(r)
		}
	}
	return strings.Join(words, " ")
}
