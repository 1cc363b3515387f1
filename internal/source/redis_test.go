package source

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

func TestParseMember(t *testing.T) {
	cases := []struct {
		in      string
		wantTs  int64
		wantPx  string
		wantErr bool
	}{
		{in: "1641009600000:46813.21", wantTs: 1641009600000, wantPx: "46813.21"},
		{in: "5:0", wantTs: 5, wantPx: "0"},
		{in: "no-separator", wantErr: true},
		{in: "abc:1", wantErr: true},
		{in: "1:abc", wantErr: true},
		{in: "1:-3", wantErr: true},
		{in: "-1:3", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			p, err := parseMember(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Timestamp != tc.wantTs || p.Price.String() != tc.wantPx {
				t.Fatalf("got %+v", p)
			}
		})
	}
}

func TestFormatMember_RoundTrip(t *testing.T) {
	in := models.PricePoint{Timestamp: 1641009600000, Price: decimal.RequireFromString("0.1702")}
	out, err := parseMember(formatMember(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Timestamp != in.Timestamp || !out.Price.Equal(in.Price) {
		t.Fatalf("got %+v want %+v", out, in)
	}
}

func TestRedisKey(t *testing.T) {
	if got := redisKey(" btc "); got != "prices:BTC" {
		t.Fatalf("unexpected key %s", got)
	}
}
