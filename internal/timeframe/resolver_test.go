package timeframe

import (
	"errors"
	"testing"
	"time"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrInt(i int) *int              { return &i }

func TestResolve_TableDriven(t *testing.T) {
	today := date(2024, 3, 15)

	cases := []struct {
		name     string
		q        models.TimeframeQuery
		wantFrom time.Time
		wantTo   time.Time
		wantErr  bool
	}{
		{
			name:     "explicit range",
			q:        models.TimeframeQuery{From: ptrTime(date(2022, 1, 1)), To: ptrTime(date(2022, 1, 31))},
			wantFrom: date(2022, 1, 1),
			wantTo:   date(2022, 1, 31),
		},
		{
			name:     "defaults to one month",
			q:        models.TimeframeQuery{},
			wantFrom: date(2024, 2, 15),
			wantTo:   today,
		},
		{
			name:     "period six months",
			q:        models.TimeframeQuery{PeriodMonths: ptrInt(6)},
			wantFrom: date(2023, 9, 15),
			wantTo:   today,
		},
		{
			name:     "from only defaults to today",
			q:        models.TimeframeQuery{From: ptrTime(date(2024, 1, 1))},
			wantFrom: date(2024, 1, 1),
			wantTo:   today,
		},
		{
			name:     "same day",
			q:        models.TimeframeQuery{From: ptrTime(date(2022, 1, 1)), To: ptrTime(date(2022, 1, 1))},
			wantFrom: date(2022, 1, 1),
			wantTo:   date(2022, 1, 1),
		},
		{
			name:     "period bounds inclusive",
			q:        models.TimeframeQuery{PeriodMonths: ptrInt(60)},
			wantFrom: date(2019, 3, 15),
			wantTo:   today,
		},
		{name: "ambiguous from and period", q: models.TimeframeQuery{From: ptrTime(date(2022, 1, 1)), PeriodMonths: ptrInt(6)}, wantErr: true},
		{name: "ambiguous to and period", q: models.TimeframeQuery{To: ptrTime(date(2022, 1, 1)), PeriodMonths: ptrInt(6)}, wantErr: true},
		{name: "to without from", q: models.TimeframeQuery{To: ptrTime(date(2022, 1, 31))}, wantErr: true},
		{name: "from after to", q: models.TimeframeQuery{From: ptrTime(date(2022, 2, 1)), To: ptrTime(date(2022, 1, 31))}, wantErr: true},
		{name: "from in the future", q: models.TimeframeQuery{From: ptrTime(date(2024, 3, 16))}, wantErr: true},
		{name: "period zero", q: models.TimeframeQuery{PeriodMonths: ptrInt(0)}, wantErr: true},
		{name: "period sixty one", q: models.TimeframeQuery{PeriodMonths: ptrInt(61)}, wantErr: true},
		{name: "period negative", q: models.TimeframeQuery{PeriodMonths: ptrInt(-3)}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tf, err := Resolve(tc.q, today)
			if tc.wantErr {
				if !errors.Is(err, models.ErrInvalidTimeframe) {
					t.Fatalf("expected ErrInvalidTimeframe, got tf=%+v err=%v", tf, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tf.From.Equal(tc.wantFrom) || !tf.To.Equal(tc.wantTo) {
				t.Fatalf("got [%s, %s], want [%s, %s]", tf.From, tf.To, tc.wantFrom, tc.wantTo)
			}
			if tf.From.After(tf.To) {
				t.Fatalf("from after to: %+v", tf)
			}
		})
	}
}

func TestResolve_StripsClockAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	from := time.Date(2022, 1, 1, 2, 30, 0, 0, loc) // 2021-12-31 23:30 UTC
	tf, err := Resolve(models.TimeframeQuery{From: &from}, date(2022, 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tf.From.Equal(date(2021, 12, 31)) {
		t.Fatalf("from=%s, want 2021-12-31", tf.From)
	}
}

func TestMinusMonths(t *testing.T) {
	cases := []struct {
		in   time.Time
		n    int
		want time.Time
	}{
		{date(2024, 3, 31), 1, date(2024, 2, 29)},
		{date(2023, 3, 31), 1, date(2023, 2, 28)},
		{date(2024, 1, 15), 1, date(2023, 12, 15)},
		{date(2024, 5, 31), 3, date(2024, 2, 29)},
		{date(2024, 7, 31), 1, date(2024, 6, 30)},
		{date(2024, 3, 15), 60, date(2019, 3, 15)},
	}
	for _, c := range cases {
		if got := MinusMonths(c.in, c.n); !got.Equal(c.want) {
			t.Fatalf("MinusMonths(%s, %d)=%s, want %s", c.in.Format("2006-01-02"), c.n, got.Format("2006-01-02"), c.want.Format("2006-01-02"))
		}
	}
}

func TestToday_IsUTCMidnight(t *testing.T) {
	d := Today()
	if d.Location() != time.UTC || d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 || d.Nanosecond() != 0 {
		t.Fatalf("Today() not a UTC midnight: %s", d)
	}
}
