package source

import (
	"context"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/storage"
)

// Postgres reads price histories from the prices table.
type Postgres struct {
	repo storage.PricesRepository
}

// NewPostgres wraps a prices repository as a Source.
func NewPostgres(repo storage.PricesRepository) *Postgres {
	return &Postgres{repo: repo}
}

func (s *Postgres) Name() string { return "postgres" }

func (s *Postgres) FetchHistory(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	return s.repo.FetchHistory(ctx, models.NormalizeSymbol(symbol))
}

func (s *Postgres) ListSymbols(ctx context.Context) ([]string, error) {
	return s.repo.ListSymbols(ctx)
}
