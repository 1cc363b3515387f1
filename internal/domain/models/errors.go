package models

import "errors"

// Error kinds surfaced by the core. Callers wrap them with context and
// match with errors.Is.
var (
	// ErrNotFound means the requested symbol is not in the catalog.
	ErrNotFound = errors.New("cryptocurrency not found")
	// ErrInvalidTimeframe covers ambiguous, malformed or out-of-bound date/period parameters.
	ErrInvalidTimeframe = errors.New("invalid timeframe")
	// ErrInvalidSort means the sort field or direction is not recognised.
	ErrInvalidSort = errors.New("invalid sort")
	// ErrInvalidPagination means page or size is negative.
	ErrInvalidPagination = errors.New("invalid pagination")
	// ErrNoData means no usable price points exist for the resolved timeframe.
	ErrNoData = errors.New("no price data")
	// ErrSourceUnavailable means the price source could not be read for a symbol.
	ErrSourceUnavailable = errors.New("price source unavailable")
)
