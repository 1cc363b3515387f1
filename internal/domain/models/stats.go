package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Timeframe is an inclusive [From, To] date interval. Both ends are UTC midnights.
type Timeframe struct {
	From time.Time
	To   time.Time
}

// TimeframeQuery carries the optional timeframe parameters of a request.
// A nil field means the caller did not supply it.
type TimeframeQuery struct {
	From         *time.Time
	To           *time.Time
	PeriodMonths *int
}

// Stats aggregates the price series of one symbol over a timeframe.
//
// NormalizedRange is (Max.Price - Min.Price) / Min.Price rounded half-up to
// two decimal places. All four points come from the same filtered series.
type Stats struct {
	Symbol          string
	NormalizedRange decimal.Decimal
	Min             PricePoint
	Max             PricePoint
	Oldest          PricePoint
	Newest          PricePoint
	From            time.Time
	To              time.Time
}

// Page is one slice of a sorted result set plus pagination metadata.
type Page struct {
	Items         []Stats
	Page          int
	Size          int
	TotalElements int
	TotalPages    int
}
