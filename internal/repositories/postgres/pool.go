package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/menusight/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool opens a pgx connection pool from the database configuration.
func NewPool(ctx context.Context, config *models.DatabaseConfig) (*pgxpool.Pool, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return pool, nil
}
