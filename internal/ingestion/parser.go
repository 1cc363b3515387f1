package ingestion

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/guttosm/cryptopulse/internal/source"
	"github.com/guttosm/cryptopulse/internal/storage"
)

// parseAndPersistFile opens, validates, parses, and persists one price file in batches.
// It fails on:
//   - a header without timestamp and price columns
//   - any malformed row (the whole file is rejected before anything is written)
//   - unrecoverable I/O or database errors
//
// Parameters:
//   - ctx:    context for cancellation/timeouts.
//   - path:   file path.
//   - symbol: normalized symbol the rows are stored under.
//   - repo:   repository for DB insertion.
//   - batch:  batch size for inserts (e.g., 5000).
func parseAndPersistFile(ctx context.Context, path, symbol string, repo storage.PricesRepository, batch int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	points, err := source.ReadPrices(f)
	if err != nil {
		return 0, err
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })

	if batch <= 0 {
		batch = defaultBatchSize
	}
	for start := 0; start < len(points); start += batch {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		end := min(start+batch, len(points))
		if err := repo.InsertPricesBatch(ctx, symbol, points[start:end]); err != nil {
			return 0, fmt.Errorf("flush batch ending row %d: %w", end, err)
		}
	}

	return len(points), nil
}
