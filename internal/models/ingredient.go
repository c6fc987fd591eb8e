package models

import (
	"encoding/json"
	"os"
)

const (
	UnitOz    = "oz"
	UnitMl    = "ml"
	UnitGrams = "grams"
	UnitCount = "count"
	UnitLb    = "lb"
	UnitEach  = "each"
)

// Ingredient is a priced stock item. Identity is ID; Name is display only.
type Ingredient struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	UnitType    string  `json:"unit_type"`
	CostPerUnit float64 `json:"cost_per_unit"`
	// Optional waste factor (0-1), reserved for yield-adjusted costing.
	WasteFactor float64 `json:"waste_factor,omitempty"`
}

// LoadIngredients reads an ingredient master list from a JSON file.
func LoadIngredients(filePath string) ([]Ingredient, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var ingredients []Ingredient
	if err := json.Unmarshal(data, &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}
