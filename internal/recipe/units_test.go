package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "1 piece", FormatQuantity(1, "pc"))
	assert.Equal(t, "2 pieces", FormatQuantity(2, "pc"))
	assert.Equal(t, "3 pieces", FormatQuantity(3, "pcs"))
	assert.Equal(t, "500 grams", FormatQuantity(500, "g"))
	assert.Equal(t, "1 grams", FormatQuantity(1, "g"))
	assert.Equal(t, "2 pounds", FormatQuantity(2, "lb"))
	assert.Equal(t, "2 teaspoons", FormatQuantity(2, "tsp"))
	assert.Equal(t, "0.5 liters", FormatQuantity(0.5, "l"))
	// Unknown units pass through untouched.
	assert.Equal(t, "5 cloves", FormatQuantity(5, "cloves"))
}

func TestCleanUnit(t *testing.T) {
	assert.Equal(t, "piece", CleanUnit("pcs"))
	assert.Equal(t, "piece", CleanUnit(" PC "))
	assert.Equal(t, "piece", CleanUnit(""))
	assert.Equal(t, "grams", CleanUnit("g"))
	assert.Equal(t, "gallon", CleanUnit("gallon"))
}
