package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/logger"
	"github.com/guttosm/cryptopulse/internal/source"
	"github.com/guttosm/cryptopulse/internal/storage"
)

const (
	defaultBatchSize = 5000
	maxParallelFiles = 8
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.PricesRepository {
	return storage.NewPricesRepository(db)
}

// ProcessDirectory imports "<SYMBOL>_values.csv" files from dir into PostgreSQL.
//
// Parameters:
//   - dir: directory containing the price files.
//   - db:  open *sql.DB (PostgreSQL).
//   - symbols: symbols to import; empty means every *_values.csv file in dir.
//   - parallel: max files processed at once (0 = min(8, NumCPU)).
//   - force: re-import symbols already recorded in ingestion_log.
//
// Behavior:
//   - Validates that every requested file exists before touching the database.
//   - Skips symbols already present in ingestion_log unless force is set; with
//     force their rows are deleted and imported again.
//   - Parses each file fully, then inserts in batches via the repository.
//   - If any file returns error, cancels the rest and returns that error.
//
// Returns:
//   - error: first error encountered (if any).
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, symbols []string, parallel int, force bool) error {
	// use indirection to allow tests to swap repository constructor
	repo := repoCtor(db)
	csvSrc := source.NewCSV(dir)

	if len(symbols) == 0 {
		listed, err := csvSrc.ListSymbols(ctx)
		if err != nil {
			return fmt.Errorf("list price files in %s: %w", dir, err)
		}
		if len(listed) == 0 {
			return fmt.Errorf("no *%s files found in %s", source.FileSuffix, dir)
		}
		symbols = listed
	}

	// Build expected filenames & validate presence upfront.
	var missing []string
	normalized := make([]string, 0, len(symbols))
	for _, s := range symbols {
		normalized = append(normalized, models.NormalizeSymbol(s))
		full := csvSrc.Path(s)
		if _, err := os.Stat(full); err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, filepath.Base(full))
			} else {
				return fmt.Errorf("stat failed for %s: %w", full, err)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required files: %s", strings.Join(missing, ", "))
	}
	symbols = normalized

	logger.L().Info().Int("files", len(symbols)).Str("dir", dir).Msg("ingestion start")

	// Concurrency: default to min(8, NumCPU), or use provided clamp(1..8)
	maxParallel := maxParallelFiles
	if parallel > 0 {
		maxParallel = min(parallel, maxParallelFiles)
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	logger.L().Info().Int("max_parallel", maxParallel).Msg("ingestion configured")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, sym := range symbols {
		g.Go(func() error {
			start := time.Now()
			path := csvSrc.Path(sym)
			base := filepath.Base(path)
			logger.L().Info().Int("idx", i+1).Int("total", len(symbols)).Str("file", base).Msg("file start")

			// Idempotency: skip if already ingested, unless force
			exists, err := repo.HasIngestionForSymbol(gctx, sym)
			if err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("check ingestion log failed")
				return fmt.Errorf("file %s: check ingestion log: %w", base, err)
			}
			if exists && !force {
				logger.L().Info().Int("idx", i+1).Int("total", len(symbols)).Str("file", base).Bool("skipped", true).Msg("already ingested")
				return nil
			}
			if exists && force {
				// Delete existing data for that symbol and reprocess
				if err := repo.DeletePricesBySymbol(gctx, sym); err != nil {
					logger.L().Error().Str("file", base).Err(err).Msg("delete existing failed")
					return fmt.Errorf("file %s: delete existing: %w", base, err)
				}
			}

			total, err := parseAndPersistFile(gctx, path, sym, repo, defaultBatchSize)
			if err != nil {
				logger.L().Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", base, err)
			}
			if err := repo.UpsertIngestionLog(gctx, sym, base, total); err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("update ingestion log failed")
				return fmt.Errorf("file %s: upsert ingestion log: %w", base, err)
			}
			logger.L().Info().Int("idx", i+1).Int("total", len(symbols)).Str("file", base).Int("rows", total).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}
