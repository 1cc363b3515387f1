// Package source provides the interchangeable backends the price cache loads
// its history from: CSV files, PostgreSQL, a remote HTTP API or Redis.
package source

import (
	"context"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

// Source reads the full USD price history of a symbol.
// Implementations must be safe for concurrent use.
type Source interface {
	// Name identifies the backend in logs.
	Name() string
	// FetchHistory returns every known price point of the symbol. Order is not guaranteed.
	FetchHistory(ctx context.Context, symbol string) ([]models.PricePoint, error)
}

// Lister is implemented by sources that can enumerate the symbols they hold.
type Lister interface {
	ListSymbols(ctx context.Context) ([]string, error)
}
