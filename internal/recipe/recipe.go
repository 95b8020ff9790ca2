package recipe

// Recipe is one parsed suggestion as shown to the user.
type Recipe struct {
	Name                  string   `json:"name"`
	RequiredIngredients   []string `json:"required_ingredients"`
	AdditionalIngredients []string `json:"additional_ingredients"`
	PreparationTime       string   `json:"preparation_time"`
	Instructions          []string `json:"instructions"`
}
