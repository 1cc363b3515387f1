// Package timeframe turns optional request date parameters into a concrete,
// validated date interval.
package timeframe

import (
	"fmt"
	"time"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

const (
	// DefaultPeriodMonths is used when no timeframe parameter is supplied.
	DefaultPeriodMonths = 1
	// MinPeriodMonths and MaxPeriodMonths bound periodMonths (inclusive).
	MinPeriodMonths = 1
	MaxPeriodMonths = 60
)

// Today returns the current UTC date at midnight.
func Today() time.Time {
	return TruncateToDate(time.Now())
}

// TruncateToDate drops the clock part of t after converting it to UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Resolve applies the timeframe rules against the given current date:
//
//  1. periodMonths combined with fromDate or toDate is ambiguous.
//  2. With explicit dates, fromDate is mandatory, toDate defaults to today and
//     fromDate must not be after toDate.
//  3. Otherwise periodMonths (default 1, range 1..60) looks back from today.
//
// Every failure wraps models.ErrInvalidTimeframe.
func Resolve(q models.TimeframeQuery, today time.Time) (models.Timeframe, error) {
	today = TruncateToDate(today)

	if q.PeriodMonths != nil && (q.From != nil || q.To != nil) {
		return models.Timeframe{}, fmt.Errorf("%w: cannot use periodMonths together with explicit fromDate/toDate", models.ErrInvalidTimeframe)
	}

	if q.From != nil || q.To != nil {
		if q.From == nil {
			return models.Timeframe{}, fmt.Errorf("%w: fromDate must be provided if toDate is specified without periodMonths", models.ErrInvalidTimeframe)
		}
		from := TruncateToDate(*q.From)
		to := today
		if q.To != nil {
			to = TruncateToDate(*q.To)
		}
		if from.After(to) {
			return models.Timeframe{}, fmt.Errorf("%w: fromDate cannot be after toDate", models.ErrInvalidTimeframe)
		}
		return models.Timeframe{From: from, To: to}, nil
	}

	months := DefaultPeriodMonths
	if q.PeriodMonths != nil {
		months = *q.PeriodMonths
	}
	if months < MinPeriodMonths || months > MaxPeriodMonths {
		return models.Timeframe{}, fmt.Errorf("%w: periodMonths must be between %d and %d", models.ErrInvalidTimeframe, MinPeriodMonths, MaxPeriodMonths)
	}

	return models.Timeframe{From: MinusMonths(today, months), To: today}, nil
}

// MinusMonths subtracts n calendar months from a date, clamping the day to the
// last day of the target month (2024-03-31 minus 1 month is 2024-02-29).
func MinusMonths(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	target := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, d.Location())
	if last := daysIn(target.Year(), target.Month(), d.Location()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, d.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
