package source

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

// redisKeyPrefix namespaces the per-symbol sorted sets: prices:BTC.
const redisKeyPrefix = "prices:"

// Redis reads price histories from sorted sets keyed "prices:<SYMBOL>".
// The score is the timestamp in milliseconds and the member is "<ts>:<price>",
// so identical prices at different times stay distinct.
type Redis struct {
	rdb redis.Cmdable
}

// NewRedis wraps a Redis client as a Source.
func NewRedis(rdb redis.Cmdable) *Redis {
	return &Redis{rdb: rdb}
}

func (s *Redis) Name() string { return "redis" }

func redisKey(symbol string) string { return redisKeyPrefix + models.NormalizeSymbol(symbol) }

// FetchHistory reads the whole sorted set of a symbol. A missing key is an error.
func (s *Redis) FetchHistory(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	key := redisKey(symbol)
	members, err := s.rdb.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("zrange %s: %w", key, err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("key %s is missing or empty", key)
	}

	out := make([]models.PricePoint, 0, len(members))
	for _, m := range members {
		p, err := parseMember(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// ListSymbols scans for prices:* keys.
func (s *Redis) ListSymbols(ctx context.Context) ([]string, error) {
	var out []string
	iter := s.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		out = append(out, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

// Store writes price points of a symbol. Used to seed Redis from other sources.
func (s *Redis) Store(ctx context.Context, symbol string, points []models.PricePoint) error {
	if len(points) == 0 {
		return nil
	}
	zs := make([]redis.Z, 0, len(points))
	for _, p := range points {
		zs = append(zs, redis.Z{Score: float64(p.Timestamp), Member: formatMember(p)})
	}
	return s.rdb.ZAdd(ctx, redisKey(symbol), zs...).Err()
}

func formatMember(p models.PricePoint) string {
	return strconv.FormatInt(p.Timestamp, 10) + ":" + p.Price.String()
}

func parseMember(m string) (models.PricePoint, error) {
	tsPart, pricePart, ok := strings.Cut(m, ":")
	if !ok {
		return models.PricePoint{}, fmt.Errorf("malformed member %q", m)
	}
	ts, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil {
		return models.PricePoint{}, fmt.Errorf("member %q: invalid timestamp: %w", m, err)
	}
	price, err := decimal.NewFromString(pricePart)
	if err != nil {
		return models.PricePoint{}, fmt.Errorf("member %q: invalid price: %w", m, err)
	}
	return models.NewPricePoint(ts, price)
}
