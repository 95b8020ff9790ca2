package receipt

import (
	"regexp"
	"strings"
)

// Noise lines that show up on grocery receipts around the actual items:
// payment details, totals, store boilerplate, addresses.
var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^tel:?\s*\+?\d[\d\-\(\) ]+$`),
	regexp.MustCompile(`(?i)^st#.*te#.*tr#`),
	regexp.MustCompile(`(?i)^[\d\-]+$`),
	regexp.MustCompile(`(?i)^\d{2}/\d{2}/\d{2}`),
	regexp.MustCompile(`(?i)^total\b`),
	regexp.MustCompile(`(?i)^subtotal\b`),
	regexp.MustCompile(`(?i)^tax\b`),
	regexp.MustCompile(`(?i)^change\b`),
	regexp.MustCompile(`(?i)^\$?\d+\.\d{2}$`),
	regexp.MustCompile(`(?i)^ref #`),
	regexp.MustCompile(`(?i)^account\s*:`),
	regexp.MustCompile(`(?i)^debit\b`),
	regexp.MustCompile(`(?i)^credit\b`),
	regexp.MustCompile(`(?i)^card\b`),
	regexp.MustCompile(`(?i)^auth\b`),
	regexp.MustCompile(`(?i)^approved\b`),
	regexp.MustCompile(`(?i)^network\b`),
	regexp.MustCompile(`(?i)^manager\b`),
	regexp.MustCompile(`(?i)^store\b`),
	regexp.MustCompile(`(?i)^save money`),
	regexp.MustCompile(`(?i)^live better`),
	regexp.MustCompile(`(?i)^\d+ [NSEW]\.?\s+\w+\s+(?:st|ave|road|rd|drive|dr|lane|ln|circle|cir|boulevard|blvd)`),
	regexp.MustCompile(`(?i)^[a-z\s]+,\s*[a-z]{2}\s+\d{5}`),
	regexp.MustCompile(`©`),
	regexp.MustCompile(`(?i)^items\s+sold`),
	regexp.MustCompile(`(?i)^tender`),
	regexp.MustCompile(`(?i)^balance`),
	regexp.MustCompile(`(?i)^payment`),
	regexp.MustCompile(`(?i)^appr code`),
	regexp.MustCompile(`(?i)^eft\b`),
}

// ShouldIgnoreLine reports whether a receipt line is noise rather than an item.
func ShouldIgnoreLine(line string) bool {
	line = strings.ToLower(strings.TrimSpace(line))
	for _, p := range ignorePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
