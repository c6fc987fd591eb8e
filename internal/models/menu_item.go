package models

import (
	"encoding/json"
	"os"
)

// MenuItem carries the menu-level attributes of a sellable item: its listed
// price and optional category. Cost comes from the recipe, volume from sales.
type MenuItem struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price,omitempty"`
	CostPerServing float64 `json:"cost_per_serving,omitempty"`
	Category       string  `json:"category,omitempty"`
}

// LoadMenuItems reads a menu definition from a JSON file.
func LoadMenuItems(filePath string) ([]MenuItem, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var items []MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
