package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/chrisdamba/menusight/internal/adapters"
	"github.com/chrisdamba/menusight/internal/factories"
	"github.com/chrisdamba/menusight/internal/models"
	"github.com/chrisdamba/menusight/internal/repositories"
	"github.com/chrisdamba/menusight/internal/repositories/postgres"
)

// Topics keying each result set on its way to an output destination.
const (
	TopicItemMargins      = "item_margins"
	TopicCategoryMargins  = "category_margins"
	TopicQuadrants        = "quadrants"
	TopicPriceSuggestions = "price_suggestions"
	TopicProfitLeakItems  = "profit_leak_items"
	TopicProfitLeakReport = "profit_leak_report"
)

// AnalysisResult is one full analysis run over a batch of sales records.
// Every field is a fresh snapshot; re-running with the same inputs produces
// identical output apart from the report's generated_at timestamp.
type AnalysisResult struct {
	Margins     []models.ItemMarginRow       `json:"margins"`
	Categories  []models.CategoryMargin      `json:"categories,omitempty"`
	Quadrants   []models.QuadrantItem        `json:"quadrants"`
	Suggestions []models.ItemPriceSuggestion `json:"suggestions"`
	LeakReport  models.ProfitLeakReport      `json:"leak_report"`
}

// Analyzer wires inputs, the analytics pipeline and output destinations
// together for one run.
type Analyzer struct {
	Config      *models.Config
	Records     []models.SalesRecord
	Ingredients []models.Ingredient
	Recipes     []models.Recipe
}

func NewAnalyzer(config *models.Config) *Analyzer {
	return &Analyzer{Config: config}
}

// LoadInputs populates sales records, ingredients and recipes from the
// configured source: a POS CSV export, a Postgres mirror, or generated demo
// fixtures.
func (a *Analyzer) LoadInputs(ctx context.Context) error {
	cfg := a.Config

	switch cfg.InputSource {
	case "demo":
		factory := factories.NewDemoFactory(cfg.Seed)
		a.Ingredients = factory.CreateIngredients()
		a.Recipes = factory.CreateRecipes(a.Ingredients)
		a.Records = factory.CreateSalesRecords(a.Recipes, cfg.DemoDays)
		if cfg.MenuPrices == nil {
			cfg.MenuPrices = factory.MenuPrices()
		}
		if cfg.ItemCategories == nil {
			cfg.ItemCategories = factory.ItemCategories()
		}
		return nil

	case "postgres":
		pool, err := postgres.NewPool(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer pool.Close()
		var repo repositories.SalesRepository = postgres.NewSalesRepository(pool)
		records, err := repo.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to load sales records: %w", err)
		}
		a.Records = records

	default: // csv
		records, parseErrors, err := adapters.ParseSalesFile(cfg.SalesFile)
		if err != nil {
			return fmt.Errorf("failed to read sales file: %w", err)
		}
		for _, msg := range parseErrors {
			log.Printf("sales csv: %s", msg)
		}
		a.Records = records
	}

	if cfg.IngredientsFile != "" {
		ingredients, err := models.LoadIngredients(cfg.IngredientsFile)
		if err != nil {
			return fmt.Errorf("failed to load ingredients: %w", err)
		}
		a.Ingredients = ingredients
	}
	if cfg.RecipesFile != "" {
		recipes, err := models.LoadRecipes(cfg.RecipesFile)
		if err != nil {
			return fmt.Errorf("failed to load recipes: %w", err)
		}
		a.Recipes = recipes
	}
	if cfg.MenuFile != "" {
		menuItems, err := models.LoadMenuItems(cfg.MenuFile)
		if err != nil {
			return fmt.Errorf("failed to load menu: %w", err)
		}
		cfg.ApplyMenu(menuItems)
	}
	return nil
}

// Run executes the full pipeline: cost resolution, margin aggregation,
// quadrant classification, per-item price suggestions and the profit leak
// report. Pure with respect to the loaded inputs.
func (a *Analyzer) Run() *AnalysisResult {
	params := a.Config.AnalysisParams()
	if params.DefaultTargetMargin <= 0 || params.DefaultTargetMargin >= 1 {
		params.DefaultTargetMargin = DefaultTargetMargin
	}

	itemCosts := BuildItemCostMap(a.Recipes, a.Ingredients)
	rows := ComputeMargins(a.Records, itemCosts)
	rows = ApplyMenuPrices(rows, params.MenuPriceOverrides)

	var categories []models.CategoryMargin
	if len(a.Config.ItemCategories) > 0 {
		categories = CategoryMargins(rows, a.Config.ItemCategories)
	}

	suggestions := make([]models.ItemPriceSuggestion, 0, len(rows))
	for _, r := range rows {
		if r.Price == nil {
			continue
		}
		suggestions = append(suggestions, models.ItemPriceSuggestion{
			ItemName:        r.ItemName,
			PriceSuggestion: SuggestPrice(r.CostPerServing, *r.Price, params.TargetMarginFor(r.ItemName)),
		})
	}

	return &AnalysisResult{
		Margins:     rows,
		Categories:  categories,
		Quadrants:   RunQuadrantAnalysis(rows),
		Suggestions: suggestions,
		LeakReport:  BuildProfitLeakReport(rows, params),
	}
}

// WriteResults sends each result set to the configured destination and logs
// the leak summary.
func (a *Analyzer) WriteResults(ctx context.Context, result *AnalysisResult) error {
	log.Printf("%s", result.LeakReport.Summary.Message)

	if a.Config.OutputDestination == "postgres" {
		return a.writeToPostgres(ctx, result)
	}

	dest, err := a.determineOutputDestination()
	if err != nil {
		return err
	}
	defer func() {
		if err := dest.Close(); err != nil {
			log.Printf("Error closing output destination: %v", err)
		}
	}()

	if err := writeRows(dest, TopicItemMargins, result.Margins); err != nil {
		return err
	}
	if err := writeRows(dest, TopicCategoryMargins, result.Categories); err != nil {
		return err
	}
	if err := writeRows(dest, TopicQuadrants, result.Quadrants); err != nil {
		return err
	}
	if err := writeRows(dest, TopicPriceSuggestions, result.Suggestions); err != nil {
		return err
	}
	if err := writeRows(dest, TopicProfitLeakItems, result.LeakReport.Items); err != nil {
		return err
	}
	report, err := json.Marshal(result.LeakReport)
	if err != nil {
		return err
	}
	return dest.WriteMessage(TopicProfitLeakReport, report)
}

func (a *Analyzer) writeToPostgres(ctx context.Context, result *AnalysisResult) error {
	pool, err := postgres.NewPool(ctx, &a.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer pool.Close()

	var repo repositories.AnalysisRepository = postgres.NewAnalysisRepository(pool)
	if err := repo.InsertMarginRows(ctx, result.Margins); err != nil {
		return fmt.Errorf("failed to insert margin rows: %w", err)
	}
	if err := repo.InsertQuadrantItems(ctx, result.Quadrants); err != nil {
		return fmt.Errorf("failed to insert quadrant items: %w", err)
	}
	if err := repo.InsertLeakItems(ctx, result.LeakReport.Items); err != nil {
		return fmt.Errorf("failed to insert leak items: %w", err)
	}
	return nil
}

// LoadSalesMirror appends (or, with replace, rewrites) a batch of normalized
// sales records in the Postgres mirror and returns the resulting row count.
func LoadSalesMirror(ctx context.Context, repo repositories.SalesRepository, records []models.SalesRecord, replace bool) (int, error) {
	if replace {
		if err := repo.DeleteAll(ctx); err != nil {
			return 0, fmt.Errorf("failed to clear sales mirror: %w", err)
		}
	}
	if err := repo.BulkCreate(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to insert sales records: %w", err)
	}
	return repo.Count(ctx)
}

func writeRows[T any](dest OutputDestination, topic string, rows []T) error {
	for _, row := range rows {
		msg, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if err := dest.WriteMessage(topic, msg); err != nil {
			return fmt.Errorf("failed to write %s: %w", topic, err)
		}
	}
	return nil
}
