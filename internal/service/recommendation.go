package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/guttosm/cryptopulse/internal/calculator"
	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/logger"
	"github.com/guttosm/cryptopulse/internal/timeframe"
)

// PriceReader is the read side of the price cache.
type PriceReader interface {
	Symbols() []string
	GetInRange(symbol string, from, to time.Time) ([]models.PricePoint, error)
}

// RecommendationService ranks cryptocurrencies by normalized price range.
type RecommendationService interface {
	Recommendations(ctx context.Context, page, size int, sortBy string, q models.TimeframeQuery) (*models.Page, error)
	StatsFor(ctx context.Context, symbol string, q models.TimeframeQuery) (*models.Stats, error)
	TopRecommendation(ctx context.Context, q models.TimeframeQuery) (*models.Stats, error)
	Symbols(ctx context.Context) []string
}

type recommendationService struct {
	prices PriceReader
	now    func() time.Time
}

// Option customizes the service.
type Option func(*recommendationService)

// WithClock replaces the clock used to resolve "today".
func WithClock(now func() time.Time) Option {
	return func(s *recommendationService) {
		s.now = now
	}
}

func NewRecommendationService(prices PriceReader, opts ...Option) RecommendationService {
	s := &recommendationService{prices: prices, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *recommendationService) resolve(q models.TimeframeQuery) (models.Timeframe, error) {
	return timeframe.Resolve(q, timeframe.TruncateToDate(s.now()))
}

func (s *recommendationService) statsFor(symbol string, tf models.Timeframe) (models.Stats, error) {
	points, err := s.prices.GetInRange(symbol, tf.From, tf.To)
	if err != nil {
		return models.Stats{}, err
	}
	return calculator.Calculate(models.NormalizeSymbol(symbol), points, tf)
}

// collect computes stats for every catalog symbol. Symbols without usable
// data in the timeframe are logged and skipped.
func (s *recommendationService) collect(ctx context.Context, tf models.Timeframe) ([]models.Stats, error) {
	symbols := s.prices.Symbols()
	out := make([]models.Stats, 0, len(symbols))
	for _, sym := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st, err := s.statsFor(sym, tf)
		if err != nil {
			logger.L().Warn().Err(err).Str("symbol", sym).
				Time("from", tf.From).Time("to", tf.To).
				Msg("skipping symbol")
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

// Recommendations returns one page of stats for all symbols, ordered by sortBy.
func (s *recommendationService) Recommendations(ctx context.Context, page, size int, sortBy string, q models.TimeframeQuery) (*models.Page, error) {
	if page < 0 || size < 0 {
		return nil, fmt.Errorf("%w: page=%d size=%d", models.ErrInvalidPagination, page, size)
	}
	tf, err := s.resolve(q)
	if err != nil {
		return nil, err
	}
	spec, err := ParseSort(sortBy)
	if err != nil {
		return nil, err
	}

	all, err := s.collect(ctx, tf)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return spec.Less(all[i], all[j]) })

	total := len(all)
	start := total
	// page*size would overflow for pages far past the end
	if size > 0 && page <= total/size {
		start = min(page*size, total)
	}
	end := start + min(size, total-start)
	totalPages := 0
	if size > 0 {
		totalPages = total / size
		if total%size != 0 {
			totalPages++
		}
	}

	return &models.Page{
		Items:         all[start:end],
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// StatsFor returns the stats of a single symbol.
func (s *recommendationService) StatsFor(_ context.Context, symbol string, q models.TimeframeQuery) (*models.Stats, error) {
	tf, err := s.resolve(q)
	if err != nil {
		return nil, err
	}
	st, err := s.statsFor(symbol, tf)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// TopRecommendation returns the symbol with the highest normalized range.
// Ties keep the first symbol in catalog order.
func (s *recommendationService) TopRecommendation(ctx context.Context, q models.TimeframeQuery) (*models.Stats, error) {
	tf, err := s.resolve(q)
	if err != nil {
		return nil, err
	}
	all, err := s.collect(ctx, tf)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: no symbol has prices between %s and %s",
			models.ErrNoData, tf.From.Format(time.DateOnly), tf.To.Format(time.DateOnly))
	}

	best := all[0]
	for _, st := range all[1:] {
		if st.NormalizedRange.GreaterThan(best.NormalizedRange) {
			best = st
		}
	}
	return &best, nil
}

func (s *recommendationService) Symbols(_ context.Context) []string {
	return s.prices.Symbols()
}
