package dto

import (
	"time"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

const dateLayout = "2006-01-02"

// PricePointResponse is the API representation of a single price observation.
type PricePointResponse struct {
	Timestamp int64   `json:"timestamp" example:"1641009600000"` // Epoch milliseconds (UTC)
	Currency  string  `json:"currency" example:"USD"`            // Always USD
	Price     float64 `json:"price" example:"46813.21"`          // Price in USD
}

// StatsResponse represents the JSON structure returned for a single cryptocurrency.
//
// Fields match the API contract and may differ from internal domain models.
type StatsResponse struct {
	Name            string             `json:"name" example:"BTC"`
	NormalizedRange float64            `json:"normalizedRange" example:"0.43"`
	Min             PricePointResponse `json:"min"`
	Max             PricePointResponse `json:"max"`
	Oldest          PricePointResponse `json:"oldest"`
	Newest          PricePointResponse `json:"newest"`
	TimeframeFrom   string             `json:"timeframeFrom" example:"2022-01-01"`
	TimeframeTo     string             `json:"timeframeTo" example:"2022-01-31"`
}

// RecommendationsResponse is returned by GET /crypto/api/v1/recommendations.
type RecommendationsResponse struct {
	Recommendations []StatsResponse `json:"recommendations"`
	Page            int             `json:"page" example:"0"`
	Size            int             `json:"size" example:"50"`
	TotalElements   int             `json:"totalElements" example:"5"`
	TotalPages      int             `json:"totalPages" example:"1"`
}

// SymbolsResponse lists the symbols currently served.
type SymbolsResponse struct {
	Symbols []string `json:"symbols" example:"BTC,ETH"`
}

// NewPricePointResponse maps a domain price point to its API shape.
func NewPricePointResponse(p models.PricePoint) PricePointResponse {
	return PricePointResponse{
		Timestamp: p.Timestamp,
		Currency:  models.Currency,
		Price:     p.Price.InexactFloat64(),
	}
}

// NewStatsResponse maps domain stats to the API shape.
func NewStatsResponse(s models.Stats) StatsResponse {
	return StatsResponse{
		Name:            s.Symbol,
		NormalizedRange: s.NormalizedRange.InexactFloat64(),
		Min:             NewPricePointResponse(s.Min),
		Max:             NewPricePointResponse(s.Max),
		Oldest:          NewPricePointResponse(s.Oldest),
		Newest:          NewPricePointResponse(s.Newest),
		TimeframeFrom:   formatDate(s.From),
		TimeframeTo:     formatDate(s.To),
	}
}

// NewRecommendationsResponse maps a domain page to the API shape.
// Recommendations is never nil so the JSON always carries an array.
func NewRecommendationsResponse(p models.Page) RecommendationsResponse {
	items := make([]StatsResponse, 0, len(p.Items))
	for _, s := range p.Items {
		items = append(items, NewStatsResponse(s))
	}
	return RecommendationsResponse{
		Recommendations: items,
		Page:            p.Page,
		Size:            p.Size,
		TotalElements:   p.TotalElements,
		TotalPages:      p.TotalPages,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
