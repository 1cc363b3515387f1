package service

import (
	"fmt"
	"strings"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

// SortField is the Stats attribute recommendations are ordered by.
type SortField int

const (
	SortByNormalizedRange SortField = iota
	SortBySymbol
	SortByMin
	SortByMax
)

// SortDirection orders ascending or descending.
type SortDirection int

const (
	Asc SortDirection = iota
	Desc
)

// DefaultSort is applied when no sort expression is given.
const DefaultSort = "normalizedRange_desc"

// SortSpec is a parsed "<field>_<direction>" expression.
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

var sortFields = map[string]SortField{
	"normalizedrange": SortByNormalizedRange,
	"symbol":          SortBySymbol,
	"min":             SortByMin,
	"max":             SortByMax,
}

// ParseSort parses expressions like "normalizedRange_desc" or "symbol_asc".
// Field and direction are case-insensitive; an empty string yields DefaultSort.
func ParseSort(expr string) (SortSpec, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		expr = DefaultSort
	}
	parts := strings.Split(expr, "_")
	if len(parts) != 2 {
		return SortSpec{}, fmt.Errorf("%w: %q, expected <field>_<asc|desc>", models.ErrInvalidSort, expr)
	}

	field, ok := sortFields[strings.ToLower(parts[0])]
	if !ok {
		return SortSpec{}, fmt.Errorf("%w: unknown field %q", models.ErrInvalidSort, parts[0])
	}

	var dir SortDirection
	switch strings.ToLower(parts[1]) {
	case "asc":
		dir = Asc
	case "desc":
		dir = Desc
	default:
		return SortSpec{}, fmt.Errorf("%w: unknown direction %q", models.ErrInvalidSort, parts[1])
	}
	return SortSpec{Field: field, Direction: dir}, nil
}

// Less reports whether a sorts before b under the spec.
func (s SortSpec) Less(a, b models.Stats) bool {
	if s.Direction == Desc {
		a, b = b, a
	}
	switch s.Field {
	case SortBySymbol:
		return a.Symbol < b.Symbol
	case SortByMin:
		return a.Min.Price.LessThan(b.Min.Price)
	case SortByMax:
		return a.Max.Price.LessThan(b.Max.Price)
	default:
		return a.NormalizedRange.LessThan(b.NormalizedRange)
	}
}
