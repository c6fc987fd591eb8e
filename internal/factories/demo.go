// Package factories generates demo fixture data: a priced ingredient master
// list, per-item recipes and a month of synthetic sales, so the analyzer can
// run without a POS export.
package factories

import (
	"math/rand"
	"sort"
	"time"

	"github.com/chrisdamba/menusight/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
)

type DemoFactory struct {
	fake          faker.Faker
	ingredientIDs map[string]string
}

func NewDemoFactory(seed int) *DemoFactory {
	return &DemoFactory{
		fake:          faker.NewWithSeed(rand.NewSource(int64(seed))),
		ingredientIDs: make(map[string]string),
	}
}

// US market-relevant foodservice costs. Buns and tortillas are priced per
// each; everything else per ounce.
var demoIngredientCosts = []struct {
	name     string
	unitType string
	cost     float64
}{
	{"white fish (raw)", models.UnitOz, 0.32},
	{"ground beef (raw)", models.UnitOz, 0.42},
	{"chicken breast (raw)", models.UnitOz, 0.32},
	{"chicken wings (raw)", models.UnitOz, 0.28},
	{"tortilla chips", models.UnitOz, 0.055},
	{"pasta (dry)", models.UnitOz, 0.04},
	{"american cheese", models.UnitOz, 0.14},
	{"shredded cheese", models.UnitOz, 0.12},
	{"nacho cheese", models.UnitOz, 0.08},
	{"mozzarella sticks", models.UnitOz, 0.16},
	{"burger sauce", models.UnitOz, 0.06},
	{"mayo/aioli", models.UnitOz, 0.055},
	{"chipotle crema", models.UnitOz, 0.07},
	{"bbq sauce", models.UnitOz, 0.05},
	{"wing sauce", models.UnitOz, 0.06},
	{"marinara", models.UnitOz, 0.045},
	{"salsa", models.UnitOz, 0.05},
	{"taco slaw", models.UnitOz, 0.06},
	{"pico de gallo", models.UnitOz, 0.08},
	{"pickles", models.UnitOz, 0.05},
	{"onion", models.UnitOz, 0.04},
	{"lettuce", models.UnitOz, 0.05},
	{"tomato", models.UnitOz, 0.06},
	{"cilantro", models.UnitOz, 0.25},
	{"fries", models.UnitOz, 0.045},
	{"truffle oil", models.UnitOz, 0.9},
	{"parmesan", models.UnitOz, 0.28},
	{"breading", models.UnitOz, 0.04},
	{"bun", models.UnitEach, 0.28},
	{"tortillas", models.UnitEach, 0.06},
	{"ipa keg pour", models.UnitOz, 0.04},
	{"pilsner keg pour", models.UnitOz, 0.035},
	{"tequila", models.UnitOz, 0.55},
	{"lime juice", models.UnitOz, 0.12},
	{"agave syrup", models.UnitOz, 0.2},
	{"soda syrup", models.UnitOz, 0.02},
}

// demoRecipes gives each demo menu item its per-serving ingredient lines,
// quantities in the ingredient's unit.
var demoRecipes = map[string][]struct {
	name string
	qty  float64
}{
	"Fish Tacos": {
		{"white fish (raw)", 6.0}, {"tortillas", 2}, {"taco slaw", 3.0},
		{"chipotle crema", 2.0}, {"pico de gallo", 2.0}, {"cilantro", 0.1},
	},
	"Smash Burger": {
		{"bun", 1}, {"ground beef (raw)", 6.0}, {"american cheese", 1.5},
		{"burger sauce", 1.5}, {"pickles", 1.0}, {"onion", 0.75},
		{"lettuce", 0.5}, {"tomato", 1.5},
	},
	"Chicken Sandwich": {
		{"bun", 1}, {"chicken breast (raw)", 7.0}, {"breading", 2.0},
		{"mayo/aioli", 1.0}, {"lettuce", 0.75}, {"tomato", 2.0}, {"pickles", 1.0},
	},
	"Wings": {
		{"chicken wings (raw)", 10.0}, {"wing sauce", 2.0},
	},
	"Nachos": {
		{"tortilla chips", 5.0}, {"nacho cheese", 4.0}, {"pico de gallo", 2.0},
		{"salsa", 2.0},
	},
	"Truffle Fries": {
		{"fries", 8.0}, {"truffle oil", 0.3}, {"parmesan", 0.75},
	},
	"Mozz Sticks": {
		{"mozzarella sticks", 6.0}, {"marinara", 2.0},
	},
	"Chips & Salsa": {
		{"tortilla chips", 4.0}, {"salsa", 3.0},
	},
	"Chicken Alfredo": {
		{"pasta (dry)", 4.0}, {"chicken breast (raw)", 5.0}, {"parmesan", 1.5},
	},
	"IPA Draft": {
		{"ipa keg pour", 16.0},
	},
	"Pilsner Draft": {
		{"pilsner keg pour", 16.0},
	},
	"House Margarita": {
		{"tequila", 2.0}, {"lime juice", 1.0}, {"agave syrup", 0.5},
	},
	"Soda": {
		{"soda syrup", 2.0},
	},
}

// demoMenuPrices holds casual dining/bar price points for the demo menu.
var demoMenuPrices = map[string]float64{
	"Fish Tacos":       17,
	"Smash Burger":     16,
	"Chicken Sandwich": 15,
	"Wings":            11,
	"Nachos":           13,
	"Truffle Fries":    9,
	"Mozz Sticks":      10,
	"Chips & Salsa":    8,
	"Chicken Alfredo":  22,
	"IPA Draft":        7,
	"Pilsner Draft":    6.5,
	"House Margarita":  12,
	"Soda":             3.5,
}

var demoCategories = map[string]string{
	"Fish Tacos":       "Mains",
	"Smash Burger":     "Mains",
	"Chicken Sandwich": "Mains",
	"Chicken Alfredo":  "Mains",
	"Wings":            "Appetizers",
	"Nachos":           "Appetizers",
	"Truffle Fries":    "Appetizers",
	"Mozz Sticks":      "Appetizers",
	"Chips & Salsa":    "Appetizers",
	"IPA Draft":        "Bar",
	"Pilsner Draft":    "Bar",
	"House Margarita":  "Bar",
	"Soda":             "Beverages",
}

// CreateIngredients builds the ingredient master list with generated IDs.
func (df *DemoFactory) CreateIngredients() []models.Ingredient {
	ingredients := make([]models.Ingredient, 0, len(demoIngredientCosts))
	for _, ic := range demoIngredientCosts {
		id := cuid.New()
		df.ingredientIDs[ic.name] = id
		ingredients = append(ingredients, models.Ingredient{
			ID:          id,
			Name:        ic.name,
			UnitType:    ic.unitType,
			CostPerUnit: ic.cost,
		})
	}
	return ingredients
}

// CreateRecipes builds recipes referencing the generated ingredient IDs.
// CreateIngredients must run first so the name-to-ID map is populated.
func (df *DemoFactory) CreateRecipes(ingredients []models.Ingredient) []models.Recipe {
	// Sorted item order keeps faker consumption stable so a seed reproduces
	// the same dataset.
	itemNames := make([]string, 0, len(demoRecipes))
	for itemName := range demoRecipes {
		itemNames = append(itemNames, itemName)
	}
	sort.Strings(itemNames)

	recipes := make([]models.Recipe, 0, len(demoRecipes))
	for _, itemName := range itemNames {
		recipe := models.Recipe{MenuItemName: itemName}
		for _, l := range demoRecipes[itemName] {
			id, ok := df.ingredientIDs[l.name]
			if !ok {
				continue
			}
			recipe.Lines = append(recipe.Lines, models.RecipeLine{
				IngredientID: id,
				Quantity:     l.qty,
			})
		}
		recipes = append(recipes, recipe)
	}
	return recipes
}

// CreateSalesRecords generates one line per item per day over the given
// span, with popularity-weighted volumes and small per-line discount noise.
func (df *DemoFactory) CreateSalesRecords(recipes []models.Recipe, days int) []models.SalesRecord {
	if days <= 0 {
		days = 30
	}

	bar := progressbar.Default(int64(days), "generating demo sales")
	start := time.Now().AddDate(0, 0, -days)
	var records []models.SalesRecord
	for day := 0; day < days; day++ {
		date := start.AddDate(0, 0, day).Format("2006-01-02")
		for _, recipe := range recipes {
			price, ok := demoMenuPrices[recipe.MenuItemName]
			if !ok {
				continue
			}
			units := float64(df.fake.IntBetween(2, 40))
			// weekend-ish bump on some days
			if day%7 >= 5 {
				units *= 1.4
			}
			discount := df.fake.Float64(2, 0, 10) / 100
			records = append(records, models.SalesRecord{
				ItemName:  recipe.MenuItemName,
				UnitsSold: units,
				Revenue:   units * price * (1 - discount),
				Timestamp: date,
			})
		}
		bar.Add(1)
	}
	return records
}

// MenuPrices returns a copy of the demo menu price list.
func (df *DemoFactory) MenuPrices() map[string]float64 {
	prices := make(map[string]float64, len(demoMenuPrices))
	for name, price := range demoMenuPrices {
		prices[name] = price
	}
	return prices
}

// ItemCategories returns a copy of the demo category mapping.
func (df *DemoFactory) ItemCategories() map[string]string {
	categories := make(map[string]string, len(demoCategories))
	for name, category := range demoCategories {
		categories[name] = category
	}
	return categories
}
