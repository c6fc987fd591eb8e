package engine

import (
	"testing"

	"github.com/chrisdamba/menusight/internal/models"
	"github.com/stretchr/testify/assert"
)

func testIngredients() []models.Ingredient {
	return []models.Ingredient{
		{ID: "beef", Name: "ground beef (raw)", UnitType: models.UnitOz, CostPerUnit: 0.42},
		{ID: "bun", Name: "bun", UnitType: models.UnitEach, CostPerUnit: 0.28},
		{ID: "cheese", Name: "american cheese", UnitType: models.UnitOz, CostPerUnit: 0.14},
	}
}

func TestCostPerServing(t *testing.T) {
	recipe := models.Recipe{
		MenuItemName: "Smash Burger",
		Lines: []models.RecipeLine{
			{IngredientID: "beef", Quantity: 6},
			{IngredientID: "bun", Quantity: 1},
			{IngredientID: "cheese", Quantity: 1.5},
		},
	}

	// 6*0.42 + 1*0.28 + 1.5*0.14 = 3.01
	assert.Equal(t, 3.01, CostPerServing(recipe, testIngredients()))
}

func TestCostPerServingEmptyRecipe(t *testing.T) {
	recipe := models.Recipe{MenuItemName: "Water"}
	assert.Equal(t, 0.0, CostPerServing(recipe, testIngredients()))
}

func TestCostPerServingDanglingReference(t *testing.T) {
	recipe := models.Recipe{
		MenuItemName: "Smash Burger",
		Lines: []models.RecipeLine{
			{IngredientID: "beef", Quantity: 6},
			{IngredientID: "deleted-ingredient", Quantity: 99},
		},
	}

	// the dangling line contributes nothing, no error
	assert.Equal(t, 2.52, CostPerServing(recipe, testIngredients()))
}

func TestLineCost(t *testing.T) {
	line := models.RecipeLine{IngredientID: "cheese", Quantity: 1.5}
	assert.Equal(t, 0.21, LineCost(line, testIngredients()))

	dangling := models.RecipeLine{IngredientID: "gone", Quantity: 2}
	assert.Equal(t, 0.0, LineCost(dangling, testIngredients()))
}

func TestBuildItemCostMap(t *testing.T) {
	recipes := []models.Recipe{
		{MenuItemName: "Smash Burger", Lines: []models.RecipeLine{{IngredientID: "beef", Quantity: 6}}},
		{MenuItemName: "Empty Plate"},
	}

	costs := BuildItemCostMap(recipes, testIngredients())

	assert.Equal(t, 2.52, costs["Smash Burger"])
	assert.Equal(t, 0.0, costs["Empty Plate"])
	_, ok := costs["Unknown Item"]
	assert.False(t, ok)
}
