package engine

import "github.com/chrisdamba/menusight/internal/models"

// CostPerServing computes the true ingredient cost of one serving of a recipe
// given the ingredient master list. Lines referencing a missing ingredient
// contribute zero; an empty recipe costs zero. Rounded to 2 decimals.
func CostPerServing(recipe models.Recipe, ingredients []models.Ingredient) float64 {
	byID := make(map[string]models.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}
	var total float64
	for _, line := range recipe.Lines {
		if ing, ok := byID[line.IngredientID]; ok {
			total += ing.CostPerUnit * line.Quantity
		}
	}
	return round2(total)
}

// LineCost returns the cost of a single recipe line, zero when the referenced
// ingredient no longer exists.
func LineCost(line models.RecipeLine, ingredients []models.Ingredient) float64 {
	for _, ing := range ingredients {
		if ing.ID == line.IngredientID {
			return round2(ing.CostPerUnit * line.Quantity)
		}
	}
	return 0
}

// BuildItemCostMap resolves every recipe to its per-serving cost, keyed by
// menu item name.
func BuildItemCostMap(recipes []models.Recipe, ingredients []models.Ingredient) map[string]float64 {
	costs := make(map[string]float64, len(recipes))
	for _, recipe := range recipes {
		costs[recipe.MenuItemName] = CostPerServing(recipe, ingredients)
	}
	return costs
}
