package recipe

import (
	"fmt"
	"strings"

	"pantrychef/constants"
	"pantrychef/internal/repository"
)

const suggestionCount = 10

const suggestionSystemPrompt = `You are a helpful cooking assistant. When suggesting recipes:
1. Format each recipe clearly with sections for name, ingredients, and instructions
2. Start each recipe with 'Recipe: ' followed by the name
3. List ingredients with quantities and units (e.g., '2 cups of flour' not '2 cup flour')
4. Provide clear, step-by-step instructions
5. Include preparation time
6. Consider the user's available cooking methods and tools
7. Separate required ingredients (from the list) and additional ingredients needed
8. Never list 'none' or empty ingredients
9. Use proper units (e.g., 'piece' instead of 'pcs', '1 piece' vs '2 pieces')
10. Each recipe must use at least 2 ingredients from the available inventory
11. Suggest creative but practical recipes based on the available ingredients
12. Make sure each recipe is unique and different from the others`

const chatSystemPrompt = `You are a helpful cooking assistant. When suggesting recipes:
1. Format each recipe clearly with sections for name, ingredients, and instructions
2. Start each recipe with 'Recipe: ' followed by the name
3. List ingredients with bullet points (-)
4. Provide clear, step-by-step instructions
5. Include preparation time
6. Consider the user's available ingredients when suggesting recipes
7. Be conversational and friendly`

// Filters constrain recipe suggestions.
type Filters struct {
	TimeConstraint     int      `json:"timeConstraint" form:"timeConstraint"`
	PreferredMethod    string   `json:"preferredMethod" form:"preferredMethod"`
	Dietary            []string `json:"dietary" form:"dietary"`
	MustUseIngredients []string `json:"mustUseIngredients" form:"mustUseIngredients"`
}

// ingredientLines renders inventory as prompt bullet lines plus a flat
// summary list.
func ingredientLines(items []repository.InventoryItem) (string, []string) {
	lines := make([]string, 0, len(items))
	summary := make([]string, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 && item.Unit != "" {
			amount := FormatQuantity(item.Quantity, item.Unit)
			lines = append(lines, "- "+amount+" of "+item.Name)
			summary = append(summary, amount+" of "+item.Name)
		} else {
			lines = append(lines, "- "+item.Name)
			summary = append(summary, item.Name)
		}
	}
	return strings.Join(lines, "\n"), summary
}

// constraintLines renders active filters as prompt bullets.
func constraintLines(filters Filters, items []repository.InventoryItem) string {
	var constraints []string
	if filters.TimeConstraint > 0 {
		constraints = append(constraints, fmt.Sprintf("- Must take less than %d minutes to prepare", filters.TimeConstraint))
	}
	if filters.PreferredMethod != "" {
		if names := constants.CookingMethodNames([]string{filters.PreferredMethod}); len(names) > 0 {
			constraints = append(constraints, "- Must use "+names[0]+" as the primary cooking method")
		}
	}
	for _, pref := range filters.Dietary {
		constraints = append(constraints, "- Must be "+pref)
	}
	if len(filters.MustUseIngredients) > 0 {
		wanted := make(map[string]bool, len(filters.MustUseIngredients))
		for _, id := range filters.MustUseIngredients {
			wanted[id] = true
		}
		var mustUse []string
		for _, item := range items {
			if wanted[item.ID.String()] {
				mustUse = append(mustUse, item.Name)
			}
		}
		if len(mustUse) > 0 {
			constraints = append(constraints, "- Must use these ingredients: "+strings.Join(mustUse, ", "))
		}
	}
	if len(constraints) == 0 {
		return "No specific constraints"
	}
	return strings.Join(constraints, "\n")
}

func buildSuggestionPrompt(items []repository.InventoryItem, filters Filters, cookingMethods, kitchenTools []string) string {
	ingredientsText, summary := ingredientLines(items)

	methods := "Any"
	if len(cookingMethods) > 0 {
		methods = strings.Join(cookingMethods, ", ")
	}
	tools := "Basic kitchen tools"
	if len(kitchenTools) > 0 {
		tools = strings.Join(kitchenTools, ", ")
	}

	return fmt.Sprintf(`Based on these available ingredients:
%s

Using these cooking methods and tools:
Cooking Methods: %s
Kitchen Tools: %s

With these constraints:
%s

Please suggest %d unique and different recipes that can be made using some or all of these ingredients.
Each recipe must use at least 2 ingredients from my inventory and should be distinctly different from the others.
For each recipe, include:
1. Recipe name (start with 'Recipe: ')
2. Required ingredients from my inventory (with quantities)
3. Additional ingredients needed (with quantities)
4. Preparation time
5. Clear cooking instructions that utilize the available cooking methods and tools

Available ingredients summary: %s`,
		ingredientsText, methods, tools,
		constraintLines(filters, items),
		suggestionCount,
		strings.Join(summary, ", "))
}

func buildRefreshPrompt(items []repository.InventoryItem, recipeName string) string {
	ingredientsText, _ := ingredientLines(items)
	return fmt.Sprintf(`Based on these available ingredients:
%s

Please provide a new variation of the recipe '%s'. Include:
1. Recipe name (keep it similar but with a twist)
2. Required ingredients from the list (with bullet points)
3. Additional ingredients needed (with bullet points)
4. Preparation time
5. Clear cooking instructions`, ingredientsText, recipeName)
}

func buildChatPrompt(items []repository.InventoryItem, userMessage string) string {
	ingredientsText, _ := ingredientLines(items)
	return fmt.Sprintf(`Available ingredients:
%s

User request: %s

Please provide recipe suggestions based on the request and available ingredients. If specific ingredients are missing, suggest alternatives or additional items needed.`,
		ingredientsText, userMessage)
}
