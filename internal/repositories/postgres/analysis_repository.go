package postgres

import (
	"context"

	"github.com/chrisdamba/menusight/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalysisRepository persists analysis snapshots. Each run appends a fresh
// set of rows; the tables carry an insert timestamp default for versioning.
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

func (r *AnalysisRepository) InsertMarginRows(ctx context.Context, rows []models.ItemMarginRow) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"item_margins"},
		[]string{
			"item_name", "units_sold", "revenue", "cost_per_serving",
			"total_cost", "gross_margin_pct", "contribution_margin", "price",
		},
		pgx.CopyFromSlice(len(rows), func(i int) ([]interface{}, error) {
			var marginPct interface{}
			if rows[i].GrossMarginPct.Valid {
				marginPct = rows[i].GrossMarginPct.Pct
			}
			var price interface{}
			if rows[i].Price != nil {
				price = *rows[i].Price
			}
			return []interface{}{
				rows[i].ItemName,
				rows[i].UnitsSold,
				rows[i].Revenue,
				rows[i].CostPerServing,
				rows[i].TotalCost,
				marginPct,
				rows[i].ContributionMargin,
				price,
			}, nil
		}),
	)
	return err
}

func (r *AnalysisRepository) InsertQuadrantItems(ctx context.Context, items []models.QuadrantItem) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"quadrant_items"},
		[]string{
			"item_name", "quadrant", "units_sold", "revenue",
			"gross_margin_pct", "contribution_margin",
		},
		pgx.CopyFromSlice(len(items), func(i int) ([]interface{}, error) {
			var marginPct interface{}
			if items[i].GrossMarginPct.Valid {
				marginPct = items[i].GrossMarginPct.Pct
			}
			return []interface{}{
				items[i].ItemName,
				items[i].Quadrant,
				items[i].UnitsSold,
				items[i].Revenue,
				marginPct,
				items[i].ContributionMargin,
			}, nil
		}),
	)
	return err
}

func (r *AnalysisRepository) InsertLeakItems(ctx context.Context, items []models.ProfitLeakItem) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"profit_leak_items"},
		[]string{
			"item_name", "current_margin_pct", "units_sold", "revenue",
			"cost_per_serving", "current_contribution", "suggested_price",
			"potential_contribution", "estimated_lost_profit_per_month", "role",
		},
		pgx.CopyFromSlice(len(items), func(i int) ([]interface{}, error) {
			return []interface{}{
				items[i].ItemName,
				items[i].CurrentMarginPct,
				items[i].UnitsSold,
				items[i].Revenue,
				items[i].CostPerServing,
				items[i].CurrentContribution,
				items[i].SuggestedPrice,
				items[i].PotentialContribution,
				items[i].EstimatedLostProfitPerMonth,
				items[i].Role,
			}, nil
		}),
	)
	return err
}
