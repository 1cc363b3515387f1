package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is the only quote currency handled by the service.
const Currency = "USD"

// PricePoint is a single USD price observation.
//
// Fields:
//   - Timestamp: milliseconds since the Unix epoch (UTC).
//   - Price: price in USD, never negative.
type PricePoint struct {
	Timestamp int64           `json:"timestamp" example:"1641009600000"`
	Price     decimal.Decimal `json:"price" swaggertype:"number" example:"46813.21"`
}

// NewPricePoint validates the invariants of a price point.
func NewPricePoint(timestamp int64, price decimal.Decimal) (PricePoint, error) {
	if timestamp < 0 {
		return PricePoint{}, fmt.Errorf("timestamp must be non-negative, got %d", timestamp)
	}
	if price.IsNegative() {
		return PricePoint{}, fmt.Errorf("price must be non-negative, got %s", price)
	}
	return PricePoint{Timestamp: timestamp, Price: price}, nil
}

// PriceSeries is the chronologically ordered price history of one symbol.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// NormalizeSymbol returns the canonical (trimmed, upper-case) form of a symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
