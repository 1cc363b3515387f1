package ingestion

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/logger"
	"github.com/guttosm/cryptopulse/internal/source"
)

// PriceWriter stores the history of a symbol. Implemented by source.Redis.
type PriceWriter interface {
	Store(ctx context.Context, symbol string, points []models.PricePoint) error
}

// CopyPrices reads every symbol from src and writes it to dst, at most
// parallel symbols at a time. An empty symbols list copies whatever src lists.
//
// Returns the number of points written, or the first error encountered.
func CopyPrices(ctx context.Context, src source.Source, dst PriceWriter, symbols []string, parallel int) (int, error) {
	if len(symbols) == 0 {
		lister, ok := src.(source.Lister)
		if !ok {
			return 0, fmt.Errorf("source %s cannot list symbols", src.Name())
		}
		listed, err := lister.ListSymbols(ctx)
		if err != nil {
			return 0, fmt.Errorf("list symbols: %w", err)
		}
		symbols = listed
	}
	if parallel <= 0 {
		parallel = 1
	}

	counts := make([]int, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, sym := range symbols {
		sym = models.NormalizeSymbol(sym)
		g.Go(func() error {
			start := time.Now()
			points, err := src.FetchHistory(gctx, sym)
			if err != nil {
				return fmt.Errorf("%s: read: %w", sym, err)
			}
			if err := dst.Store(gctx, sym, points); err != nil {
				return fmt.Errorf("%s: store: %w", sym, err)
			}
			counts[i] = len(points)
			logger.L().Info().Str("symbol", sym).Int("rows", len(points)).Dur("elapsed", time.Since(start)).Msg("symbol copied")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}
