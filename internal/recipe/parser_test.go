package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleRecipeResponse = `Recipe: Chicken Fried Rice

Required Ingredients:
- 2 pieces of Chicken Breast
- 500 grams of Rice
- 2 Pieces of chicken breast

Additional Ingredients:
- 2 tablespoons of soy sauce
- 1 piece of egg
- none

Preparation Time: 25 minutes

Instructions:
1. Cook the rice according to package directions.
2. Dice the chicken and fry until golden.
3. Combine everything in the pan with soy sauce.
`

func TestParseSuggestionsSingleRecipe(t *testing.T) {
	recipes := ParseSuggestions(singleRecipeResponse)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, "Chicken Fried Rice", r.Name)
	assert.Equal(t, "25 minutes", r.PreparationTime)

	// Case-insensitive dedup keeps first occurrence and its casing.
	assert.Equal(t, []string{"2 pieces of Chicken Breast", "500 grams of Rice"}, r.RequiredIngredients)

	// "none" is dropped from ingredient lists.
	assert.Equal(t, []string{"2 tablespoons of soy sauce", "1 piece of egg"}, r.AdditionalIngredients)

	assert.Equal(t, []string{
		"1. Cook the rice according to package directions.",
		"2. Dice the chicken and fry until golden.",
		"3. Combine everything in the pan with soy sauce.",
	}, r.Instructions)
}

func TestParseSuggestionsTwoRecipes(t *testing.T) {
	text := `Recipe: Tomato Soup
Instructions:
- Simmer tomatoes.
- Blend until smooth.

Recipe: Garlic Bread
Instructions:
- Butter the bread.
- Toast with garlic.
`
	recipes := ParseSuggestions(text)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Tomato Soup", recipes[0].Name)
	assert.Equal(t, "Garlic Bread", recipes[1].Name)
	assert.Equal(t, []string{"1. Simmer tomatoes.", "2. Blend until smooth."}, recipes[0].Instructions)
}

func TestParseSuggestionsDropsRecipeWithoutInstructions(t *testing.T) {
	text := `Recipe: Empty Recipe
Required Ingredients:
- 1 piece of egg

Recipe: Real Recipe
Instructions:
- Do the thing.
`
	recipes := ParseSuggestions(text)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Real Recipe", recipes[0].Name)
}

func TestParseSuggestionsDefaultPrepTime(t *testing.T) {
	text := `Recipe: Quick Thing
Instructions:
- Stir and serve.
`
	recipes := ParseSuggestions(text)
	require.Len(t, recipes, 1)
	assert.Equal(t, "30-40 minutes", recipes[0].PreparationTime)
}

func TestParseSuggestionsProseInstructions(t *testing.T) {
	text := `Recipe: Loose Format
Instructions:
Heat the oil in a pan.
Add the onions and cook slowly.
`
	recipes := ParseSuggestions(text)
	require.Len(t, recipes, 1)
	assert.Equal(t, []string{
		"1. Heat the oil in a pan.",
		"2. Add the onions and cook slowly.",
	}, recipes[0].Instructions)
}

func TestParseSuggestionsAlternateHeaders(t *testing.T) {
	text := `Recipe: Header Variants
Ingredients from Inventory:
- 1 piece of onion
Extra Ingredients:
- olive oil
Total Time: 15 minutes
Steps:
1. Chop.
2. Fry.
`
	recipes := ParseSuggestions(text)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, []string{"1 piece of onion"}, r.RequiredIngredients)
	assert.Equal(t, []string{"olive oil"}, r.AdditionalIngredients)
	assert.Equal(t, "15 minutes", r.PreparationTime)
	assert.Equal(t, []string{"1. Chop.", "2. Fry."}, r.Instructions)
}

func TestParseSuggestionsEmptyInput(t *testing.T) {
	assert.Empty(t, ParseSuggestions(""))
	assert.Empty(t, ParseSuggestions("Just some chatter, no recipes here."))
}
