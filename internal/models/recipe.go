package models

import (
	"encoding/json"
	"os"
)

// RecipeLine is one ingredient line in a recipe: quantity of that ingredient
// per serving. IngredientID is a weak reference; a dangling line costs zero.
type RecipeLine struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// Recipe maps a menu item to its ingredients and quantities. MenuItemName is
// the key; one recipe per menu item, and a recipe with no lines counts as
// nonexistent (cost zero).
type Recipe struct {
	MenuItemName string       `json:"menu_item_name"`
	Lines        []RecipeLine `json:"lines"`
}

// LoadRecipes reads recipe definitions from a JSON file.
func LoadRecipes(filePath string) ([]Recipe, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var recipes []Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}
