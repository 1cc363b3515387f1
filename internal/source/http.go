package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/logger"
)

const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultRateLimit   = 5 // requests per second
)

// HTTP reads price histories from a remote JSON API:
//
//	GET {base}/prices/{SYMBOL} -> [{"timestamp": 1641009600000, "price": "46813.21"}, ...]
//	GET {base}/symbols         -> ["BTC", "ETH", ...]
//
// Prices may be JSON numbers or strings; both are parsed as exact decimals.
type HTTP struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// HTTPOption configures the HTTP source.
type HTTPOption func(*HTTP)

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTP) {
		s.httpClient = c
	}
}

// WithRateLimit sets the number of requests per second sent to the API.
func WithRateLimit(requestsPerSecond int) HTTPOption {
	return func(s *HTTP) {
		if requestsPerSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTP) {
		s.httpClient.Timeout = timeout
	}
}

// NewHTTP creates a remote API source.
func NewHTTP(baseURL string, opts ...HTTPOption) *HTTP {
	s := &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultHTTPTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTP) Name() string { return "http" }

type apiPricePoint struct {
	Timestamp int64           `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
}

// FetchHistory downloads the full history of a symbol.
func (s *HTTP) FetchHistory(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	sym := models.NormalizeSymbol(symbol)
	var body []apiPricePoint
	if err := s.getJSON(ctx, "/prices/"+url.PathEscape(sym), &body); err != nil {
		return nil, err
	}

	out := make([]models.PricePoint, 0, len(body))
	for i, p := range body {
		pp, err := models.NewPricePoint(p.Timestamp, p.Price)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, pp)
	}
	return out, nil
}

// ListSymbols asks the API for the symbols it serves.
func (s *HTTP) ListSymbols(ctx context.Context) ([]string, error) {
	var body []string
	if err := s.getJSON(ctx, "/symbols", &body); err != nil {
		return nil, err
	}
	return body, nil
}

func (s *HTTP) getJSON(ctx context.Context, path string, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		logger.L().Error().Err(err).Str("path", path).Dur("elapsed", elapsed).Msg("price API request failed")
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		logger.L().Warn().Str("path", path).Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("price API non-OK response")
		return fmt.Errorf("price API error: status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	logger.L().Debug().Str("path", path).Dur("elapsed", elapsed).Msg("price API request")
	return nil
}
