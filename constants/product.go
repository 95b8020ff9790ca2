package constants

// productNames maps known 12-digit UPC codes to proper item names. A code
// hit overrides whatever mangled text OCR produced for the line.
var productNames = map[string]string{
	"007225003712": "Bread",
	"007874237003": "Great Value Peanut Butter",
	"007874201510": "Parmesan Cheese",
	"007874206784": "Great Value Chunk Chicken",
	"073191913822": "Nitrile Gloves",
	"002550000377": "Folgers Coffee",
	"007874222682": "Twist Up Soda",
	"060538871459": "Eggs",
}

// LookupProductCode returns the proper name for a known 12-digit product
// code, or "" when the code is unknown.
func LookupProductCode(code string) string {
	return productNames[code]
}
