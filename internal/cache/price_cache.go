// Package cache holds the in-memory price series every query is served from.
package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/logger"
	"github.com/guttosm/cryptopulse/internal/source"
	"github.com/guttosm/cryptopulse/internal/timeframe"
)

// DefaultParallel bounds concurrent source reads when no limit is configured.
const DefaultParallel = 4

// ErrNotLoaded is returned by Ready before a successful load.
var ErrNotLoaded = errors.New("price cache not loaded")

// PriceCache loads every configured symbol from a Source once and serves
// read-only copies afterwards.
type PriceCache struct {
	src      source.Source
	symbols  []string
	parallel int

	once    sync.Once
	loaded  atomic.Bool
	loadErr error
	series  map[string][]models.PricePoint
	catalog []string
}

// NewPriceCache creates an unloaded cache. An empty symbols list means
// "whatever the source can list". parallel <= 0 falls back to DefaultParallel.
func NewPriceCache(src source.Source, symbols []string, parallel int) *PriceCache {
	if parallel <= 0 {
		parallel = DefaultParallel
	}
	norm := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		s = models.NormalizeSymbol(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		norm = append(norm, s)
	}
	return &PriceCache{src: src, symbols: norm, parallel: parallel}
}

// Load reads all histories from the source. Only the first call does any work;
// later and concurrent calls wait for it and return the same result.
//
// A symbol whose history cannot be read is logged and left out of the catalog.
// Load only fails when the symbol list itself cannot be determined.
func (c *PriceCache) Load(ctx context.Context) error {
	c.once.Do(func() {
		c.loadErr = c.load(ctx)
		c.loaded.Store(true)
	})
	return c.loadErr
}

func (c *PriceCache) load(ctx context.Context) error {
	symbols := c.symbols
	if len(symbols) == 0 {
		lister, ok := c.src.(source.Lister)
		if !ok {
			return fmt.Errorf("no symbols configured and source %s cannot list them", c.src.Name())
		}
		listed, err := lister.ListSymbols(ctx)
		if err != nil {
			return fmt.Errorf("%w: list symbols: %v", models.ErrSourceUnavailable, err)
		}
		for _, s := range listed {
			if s = models.NormalizeSymbol(s); s != "" && !slices.Contains(symbols, s) {
				symbols = append(symbols, s)
			}
		}
	}

	start := time.Now()
	results := make([][]models.PricePoint, len(symbols))
	failed := make([]error, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for i, sym := range symbols {
		g.Go(func() error {
			points, err := c.src.FetchHistory(gctx, sym)
			if err != nil {
				failed[i] = fmt.Errorf("%w: %s: %v", models.ErrSourceUnavailable, sym, err)
				return nil
			}
			sort.SliceStable(points, func(a, b int) bool { return points[a].Timestamp < points[b].Timestamp })
			results[i] = points
			return nil
		})
	}
	_ = g.Wait()

	series := make(map[string][]models.PricePoint, len(symbols))
	catalog := make([]string, 0, len(symbols))
	for i, sym := range symbols {
		if failed[i] != nil {
			logger.L().Warn().Err(failed[i]).Str("source", c.src.Name()).Str("symbol", sym).Msg("skipping symbol")
			continue
		}
		series[sym] = results[i]
		catalog = append(catalog, sym)
	}
	c.series = series
	c.catalog = catalog

	logger.L().Info().
		Str("source", c.src.Name()).
		Int("symbols", len(catalog)).
		Int("failed", len(symbols)-len(catalog)).
		Dur("elapsed", time.Since(start)).
		Msg("price cache loaded")
	return nil
}

// Symbols returns the catalog in load order. Empty before Load.
func (c *PriceCache) Symbols() []string {
	if !c.loaded.Load() {
		return []string{}
	}
	return slices.Clone(c.catalog)
}

func (c *PriceCache) lookup(symbol string) ([]models.PricePoint, error) {
	if c.loaded.Load() {
		if points, ok := c.series[models.NormalizeSymbol(symbol)]; ok {
			return points, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrNotFound, symbol)
}

// GetAll returns the whole history of a symbol, oldest first.
func (c *PriceCache) GetAll(symbol string) ([]models.PricePoint, error) {
	points, err := c.lookup(symbol)
	if err != nil {
		return nil, err
	}
	return slices.Clone(points), nil
}

// GetInRange returns the points of a symbol from the start of from's day up to
// the last millisecond of to's day, both in UTC. The result may be empty.
func (c *PriceCache) GetInRange(symbol string, from, to time.Time) ([]models.PricePoint, error) {
	points, err := c.lookup(symbol)
	if err != nil {
		return nil, err
	}
	lo := timeframe.TruncateToDate(from).UnixMilli()
	hi := timeframe.TruncateToDate(to).AddDate(0, 0, 1).UnixMilli() - 1
	if lo > hi {
		return []models.PricePoint{}, nil
	}

	i := sort.Search(len(points), func(k int) bool { return points[k].Timestamp >= lo })
	j := sort.Search(len(points), func(k int) bool { return points[k].Timestamp > hi })
	return slices.Clone(points[i:j:j]), nil
}

// Ready reports whether the cache loaded at least one symbol.
func (c *PriceCache) Ready() error {
	if !c.loaded.Load() {
		return ErrNotLoaded
	}
	if c.loadErr != nil {
		return c.loadErr
	}
	if len(c.catalog) == 0 {
		return fmt.Errorf("%w: empty catalog", models.ErrNoData)
	}
	return nil
}
