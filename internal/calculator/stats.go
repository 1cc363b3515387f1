// Package calculator reduces a price series into volatility statistics.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

// usdScale is the number of fractional digits kept for USD ratios.
const usdScale = 2

// Calculate builds the statistics of one symbol over a timeframe.
//
// points must already be sorted ascending by timestamp: Oldest is the first
// element and Newest the last. Min and Max keep the first occurrence on ties.
// An empty series, a zero minimum or a negative price all wrap models.ErrNoData.
func Calculate(symbol string, points []models.PricePoint, tf models.Timeframe) (models.Stats, error) {
	if len(points) == 0 {
		return models.Stats{}, fmt.Errorf("%w: no price data available for %s in the specified timeframe", models.ErrNoData, symbol)
	}

	minPoint := FindMin(points)
	maxPoint := FindMax(points)

	nr, err := NormalizedRange(minPoint.Price, maxPoint.Price)
	if err != nil {
		return models.Stats{}, fmt.Errorf("%s: %w", symbol, err)
	}

	return models.Stats{
		Symbol:          symbol,
		NormalizedRange: nr,
		Min:             minPoint,
		Max:             maxPoint,
		Oldest:          points[0],
		Newest:          points[len(points)-1],
		From:            tf.From,
		To:              tf.To,
	}, nil
}

// NormalizedRange returns (max - min) / min rounded half-up to two decimals.
func NormalizedRange(min, max decimal.Decimal) (decimal.Decimal, error) {
	if min.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: minimum price cannot be zero", models.ErrNoData)
	}
	if min.IsNegative() || max.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: prices must be non-negative", models.ErrNoData)
	}
	// DivRound rounds exactly from the remainder; for non-negative ratios
	// "half away from zero" is half-up.
	return max.Sub(min).DivRound(min, usdScale), nil
}

// FindMin returns the point with the lowest price. Panics on an empty slice.
func FindMin(points []models.PricePoint) models.PricePoint {
	best := points[0]
	for _, p := range points[1:] {
		if p.Price.LessThan(best.Price) {
			best = p
		}
	}
	return best
}

// FindMax returns the point with the highest price. Panics on an empty slice.
func FindMax(points []models.PricePoint) models.PricePoint {
	best := points[0]
	for _, p := range points[1:] {
		if p.Price.GreaterThan(best.Price) {
			best = p
		}
	}
	return best
}
