package repositories

import (
	"context"

	"github.com/chrisdamba/menusight/internal/models"
)

type SalesRepository interface {
	BulkCreate(ctx context.Context, records []models.SalesRecord) error
	GetAll(ctx context.Context) ([]models.SalesRecord, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type AnalysisRepository interface {
	InsertMarginRows(ctx context.Context, rows []models.ItemMarginRow) error
	InsertQuadrantItems(ctx context.Context, items []models.QuadrantItem) error
	InsertLeakItems(ctx context.Context, items []models.ProfitLeakItem) error
}
