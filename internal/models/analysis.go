package models

import "time"

const (
	QuadrantHighVolumeHighMargin = "high_volume_high_margin"
	QuadrantHighVolumeLowMargin  = "high_volume_low_margin"
	QuadrantLowVolumeHighMargin  = "low_volume_high_margin"
	QuadrantLowVolumeLowMargin   = "low_volume_low_margin"

	LeakRoleToFix     = "to_fix"
	LeakRoleStrategic = "strategic_candidate"
)

// ItemMarginRow is the per-item financial row every downstream analysis
// consumes. Rows are rebuilt from scratch on each run and never mutated.
type ItemMarginRow struct {
	ItemName           string   `json:"item_name"`
	UnitsSold          float64  `json:"units_sold"`
	Revenue            float64  `json:"revenue"`
	CostPerServing     float64  `json:"cost_per_serving"`
	TotalCost          float64  `json:"total_cost"`
	GrossMarginPct     Margin   `json:"gross_margin_pct"`
	ContributionMargin float64  `json:"contribution_margin"`
	// Average realized price, or a menu price override. Nil when units_sold
	// is zero and no override exists.
	Price *float64 `json:"price,omitempty"`
}

// CategoryMargin is a revenue/contribution roll-up over a menu category.
type CategoryMargin struct {
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	Contribution float64 `json:"contribution"`
	MarginPct    float64 `json:"margin_pct"`
}

// QuadrantItem is an ItemMarginRow tagged with its volume/margin quadrant
// relative to the medians of the analyzed row set.
type QuadrantItem struct {
	ItemName           string  `json:"item_name"`
	Quadrant           string  `json:"quadrant"`
	UnitsSold          float64 `json:"units_sold"`
	Revenue            float64 `json:"revenue"`
	GrossMarginPct     Margin  `json:"gross_margin_pct"`
	ContributionMargin float64 `json:"contribution_margin"`
}

// PriceSuggestion is the pricing engine's output for one (cost, price,
// target margin) triple. Pure value, no identity.
type PriceSuggestion struct {
	CurrentPrice       float64 `json:"current_price"`
	Cost               float64 `json:"cost"`
	CurrentMarginPct   float64 `json:"current_margin_pct"`
	TargetMarginPct    float64 `json:"target_margin_pct"`
	SuggestedPrice     float64 `json:"suggested_price"`
	SuggestedMarginPct float64 `json:"suggested_margin_pct"`
	IncreasePct        float64 `json:"increase_pct"`
	Capped             bool    `json:"capped"`
	Caution            bool    `json:"caution"`
}

// ItemPriceSuggestion pairs a suggestion with the menu item it applies to.
type ItemPriceSuggestion struct {
	ItemName string `json:"item_name"`
	PriceSuggestion
}

// ProfitLeakItem is one bottom-margin-tier item with its estimated forgone
// profit. Role separates genuine pricing problems from likely loss leaders.
type ProfitLeakItem struct {
	ItemName                    string  `json:"item_name"`
	CurrentMarginPct            float64 `json:"current_margin_pct"`
	UnitsSold                   float64 `json:"units_sold"`
	Revenue                     float64 `json:"revenue"`
	CostPerServing              float64 `json:"cost_per_serving"`
	CurrentContribution         float64 `json:"current_contribution"`
	SuggestedPrice              float64 `json:"suggested_price"`
	PotentialContribution       float64 `json:"potential_contribution"`
	EstimatedLostProfitPerMonth float64 `json:"estimated_lost_profit_per_month"`
	Role                        string  `json:"role"`
}

// ProfitLeakSummary aggregates the leak items, split by role.
type ProfitLeakSummary struct {
	BottomMarginSKUs            int     `json:"bottom_margin_skus"`
	EstimatedLostProfitPerMonth float64 `json:"estimated_lost_profit_per_month"`
	LostFromItemsToFix          float64 `json:"lost_from_items_to_fix"`
	LostFromStrategicCandidates float64 `json:"lost_from_strategic_candidates"`
	ItemsToFixCount             int     `json:"items_to_fix_count"`
	StrategicCandidateCount     int     `json:"strategic_candidate_count"`
	Message                     string  `json:"message"`
}

// ProfitLeakReport is the full leak analysis. GeneratedAt is wall clock and
// excluded from equality comparisons.
type ProfitLeakReport struct {
	Summary     ProfitLeakSummary `json:"summary"`
	Items       []ProfitLeakItem  `json:"items"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// AnalysisParams is the caller-held, pass-by-value configuration for an
// analysis run. The engine never reads ambient state; everything adjustable
// arrives here.
type AnalysisParams struct {
	// Target gross margin as a decimal in [0,1), e.g. 0.75 for 75%.
	DefaultTargetMargin float64
	// Per-item target margin overrides, keyed by item name.
	PerItemTargetMargin map[string]float64
	// Menu price overrides, keyed by item name. Takes precedence over the
	// average realized price from sales.
	MenuPriceOverrides map[string]float64
	// Items the operator has marked as intentional loss leaders.
	StrategicItems map[string]struct{}
}

// TargetMarginFor resolves the effective target margin for an item.
func (p AnalysisParams) TargetMarginFor(itemName string) float64 {
	if t, ok := p.PerItemTargetMargin[itemName]; ok {
		return t
	}
	return p.DefaultTargetMargin
}
