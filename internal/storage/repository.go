package storage

import (
	"context"
	"database/sql"
	"fmt"

	pq "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

// PricesRepository defines contract for DB operations on price history.
type PricesRepository interface {
	InsertPricesBatch(ctx context.Context, symbol string, points []models.PricePoint) error
	FetchHistory(ctx context.Context, symbol string) ([]models.PricePoint, error)
	ListSymbols(ctx context.Context) ([]string, error)
	HasIngestionForSymbol(ctx context.Context, symbol string) (bool, error)
	UpsertIngestionLog(ctx context.Context, symbol, filename string, rowCount int) error
	DeletePricesBySymbol(ctx context.Context, symbol string) error
}

type pricesRepository struct {
	db *sql.DB
}

func NewPricesRepository(db *sql.DB) PricesRepository {
	return &pricesRepository{db: db}
}

// InsertPricesBatch inserts multiple price points for one symbol in a single transaction.
func (r *pricesRepository) InsertPricesBatch(ctx context.Context, symbol string, points []models.PricePoint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("prices", "symbol", "ts_millis", "price"))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, symbol, p.Timestamp, p.Price); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// FetchHistory returns every stored price point of a symbol, oldest first.
func (r *pricesRepository) FetchHistory(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT ts_millis, price FROM prices WHERE symbol = $1 ORDER BY ts_millis`, symbol)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.PricePoint
	for rows.Next() {
		var ts int64
		var price decimal.Decimal
		if err := rows.Scan(&ts, &price); err != nil {
			return nil, err
		}
		p, err := models.NewPricePoint(ts, price)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(out)+1, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSymbols returns the distinct symbols present in the prices table.
func (r *pricesRepository) ListSymbols(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM prices ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// HasIngestionForSymbol checks if a file was already imported for a symbol.
func (r *pricesRepository) HasIngestionForSymbol(ctx context.Context, symbol string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE symbol = $1)`, symbol).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) the ingestion entry of a symbol.
func (r *pricesRepository) UpsertIngestionLog(ctx context.Context, symbol, filename string, rowCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingestion_log (symbol, filename, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol)
		DO UPDATE SET filename = EXCLUDED.filename,
					  row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, symbol, filename, rowCount)
	return err
}

// DeletePricesBySymbol removes all price points of a symbol.
func (r *pricesRepository) DeletePricesBySymbol(ctx context.Context, symbol string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM prices WHERE symbol = $1`, symbol)
	return err
}
