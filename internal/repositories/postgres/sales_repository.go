package postgres

import (
	"context"

	"github.com/chrisdamba/menusight/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SalesRepository reads and writes the sales_records mirror of POS line data.
type SalesRepository struct {
	pool *pgxpool.Pool
}

func NewSalesRepository(pool *pgxpool.Pool) *SalesRepository {
	return &SalesRepository{pool: pool}
}

func (r *SalesRepository) BulkCreate(ctx context.Context, records []models.SalesRecord) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"sales_records"},
		[]string{"item_name", "units_sold", "revenue", "sold_at"},
		pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
			return []interface{}{
				records[i].ItemName,
				records[i].UnitsSold,
				records[i].Revenue,
				records[i].Timestamp,
			}, nil
		}),
	)
	return err
}

func (r *SalesRepository) GetAll(ctx context.Context) ([]models.SalesRecord, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT item_name, units_sold, revenue, COALESCE(sold_at, '')
        FROM sales_records
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.SalesRecord
	for rows.Next() {
		var record models.SalesRecord
		if err := rows.Scan(&record.ItemName, &record.UnitsSold, &record.Revenue, &record.Timestamp); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *SalesRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM sales_records").Scan(&count)
	return count, err
}

func (r *SalesRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM sales_records")
	return err
}
