package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptopulse/internal/domain/dto"
	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/middleware"
	"github.com/guttosm/cryptopulse/internal/service"
)

type mockRecService struct {
	page  *models.Page
	stats *models.Stats
	err   error

	gotPage, gotSize int
	gotSort          string
	gotSymbol        string
	gotQuery         models.TimeframeQuery
}

func (m *mockRecService) Recommendations(_ context.Context, page, size int, sortBy string, q models.TimeframeQuery) (*models.Page, error) {
	m.gotPage, m.gotSize, m.gotSort, m.gotQuery = page, size, sortBy, q
	return m.page, m.err
}

func (m *mockRecService) StatsFor(_ context.Context, symbol string, q models.TimeframeQuery) (*models.Stats, error) {
	m.gotSymbol, m.gotQuery = symbol, q
	return m.stats, m.err
}

func (m *mockRecService) TopRecommendation(_ context.Context, q models.TimeframeQuery) (*models.Stats, error) {
	m.gotQuery = q
	return m.stats, m.err
}

func (m *mockRecService) Symbols(_ context.Context) []string { return []string{"BTC", "ETH"} }

var _ service.RecommendationService = (*mockRecService)(nil)

func btcStats() *models.Stats {
	from := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	p := func(ts int64, s string) models.PricePoint {
		return models.PricePoint{Timestamp: ts, Price: decimal.RequireFromString(s)}
	}
	return &models.Stats{
		Symbol:          "BTC",
		NormalizedRange: decimal.RequireFromString("0.43"),
		Min:             p(1641009600000, "33920.11"),
		Max:             p(1641020400000, "48717.74"),
		Oldest:          p(1641009600000, "46813.21"),
		Newest:          p(1643659200000, "38415.79"),
		From:            from,
		To:              from.AddDate(0, 0, 30),
	}
}

func setupRouterWithMock(s service.RecommendationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	r.Use(middleware.ErrorHandler)
	v1 := r.Group(BasePath)
	v1.GET("/recommendations", h.GetRecommendations)
	v1.GET("/recommendations/top", h.GetTopRecommendation)
	v1.GET("/recommendations/symbols", h.GetSymbols)
	v1.GET("/recommendations/:symbol", h.GetSymbolStats)
	return r
}

func TestGetRecommendations_TableDriven(t *testing.T) {
	okPage := &models.Page{Items: []models.Stats{*btcStats()}, Page: 0, Size: 50, TotalElements: 1, TotalPages: 1}

	cases := []struct {
		name   string
		svc    *mockRecService
		query  string
		status int
		assert func(t *testing.T, m *mockRecService, body []byte)
	}{
		{
			name:   "defaults",
			svc:    &mockRecService{page: okPage},
			query:  "/recommendations",
			status: http.StatusOK,
			assert: func(t *testing.T, m *mockRecService, body []byte) {
				if m.gotPage != 0 || m.gotSize != DefaultPageSize || m.gotSort != "" {
					t.Fatalf("unexpected args page=%d size=%d sort=%q", m.gotPage, m.gotSize, m.gotSort)
				}
				var out dto.RecommendationsResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(out.Recommendations) != 1 || out.Recommendations[0].Name != "BTC" || out.TotalElements != 1 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "all params forwarded",
			svc:    &mockRecService{page: okPage},
			query:  "/recommendations?page=2&size=10&sortBy=symbol_asc&fromDate=2022-01-01&toDate=2022-01-31",
			status: http.StatusOK,
			assert: func(t *testing.T, m *mockRecService, _ []byte) {
				if m.gotPage != 2 || m.gotSize != 10 || m.gotSort != "symbol_asc" {
					t.Fatalf("unexpected args page=%d size=%d sort=%q", m.gotPage, m.gotSize, m.gotSort)
				}
				if m.gotQuery.From == nil || m.gotQuery.To == nil || m.gotQuery.PeriodMonths != nil {
					t.Fatalf("unexpected query %+v", m.gotQuery)
				}
				if m.gotQuery.From.Format(dateLayout) != "2022-01-01" {
					t.Fatalf("unexpected from %s", m.gotQuery.From)
				}
			},
		},
		{
			name:   "period months forwarded",
			svc:    &mockRecService{page: okPage},
			query:  "/recommendations?periodMonths=6",
			status: http.StatusOK,
			assert: func(t *testing.T, m *mockRecService, _ []byte) {
				if m.gotQuery.PeriodMonths == nil || *m.gotQuery.PeriodMonths != 6 {
					t.Fatalf("unexpected query %+v", m.gotQuery)
				}
			},
		},
		{name: "size over max", svc: &mockRecService{}, query: "/recommendations?size=101", status: http.StatusBadRequest},
		{name: "page not a number", svc: &mockRecService{}, query: "/recommendations?page=abc", status: http.StatusBadRequest},
		{name: "bad date", svc: &mockRecService{}, query: "/recommendations?fromDate=2022/01/01", status: http.StatusBadRequest},
		{name: "bad period", svc: &mockRecService{}, query: "/recommendations?periodMonths=x", status: http.StatusBadRequest},
		{name: "service validation error", svc: &mockRecService{err: models.ErrInvalidSort}, query: "/recommendations?sortBy=x", status: http.StatusBadRequest},
		{name: "service failure", svc: &mockRecService{err: errors.New("boom")}, query: "/recommendations", status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			req := httptest.NewRequest(http.MethodGet, BasePath+tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestGetSymbolStats_TableDriven(t *testing.T) {
	cases := []struct {
		name    string
		svc     *mockRecService
		path    string
		status  int
		message string
	}{
		{name: "success lower case", svc: &mockRecService{stats: btcStats()}, path: "/recommendations/btc", status: http.StatusOK},
		{name: "not found", svc: &mockRecService{err: fmt.Errorf("%w: DOGE2", models.ErrNotFound)}, path: "/recommendations/DOGE2", status: http.StatusNotFound, message: "Cryptocurrency not found"},
		{name: "no data", svc: &mockRecService{err: models.ErrNoData}, path: "/recommendations/BTC?fromDate=2020-01-01&toDate=2020-01-31", status: http.StatusBadRequest, message: "Validation failed"},
		{name: "ambiguous timeframe", svc: &mockRecService{err: models.ErrInvalidTimeframe}, path: "/recommendations/BTC?fromDate=2022-01-01&periodMonths=1", status: http.StatusBadRequest, message: "Invalid timeframe parameters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, BasePath+tc.path, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.status == http.StatusOK {
				if tc.svc.gotSymbol != "BTC" {
					t.Fatalf("symbol not normalized: %q", tc.svc.gotSymbol)
				}
				var out dto.StatsResponse
				if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Name != "BTC" || out.NormalizedRange != 0.43 || out.Min.Currency != "USD" || out.TimeframeFrom != "2022-01-01" {
					t.Fatalf("unexpected body %+v", out)
				}
				return
			}
			var e dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if e.Message != tc.message {
				t.Fatalf("message=%q want %q", e.Message, tc.message)
			}
		})
	}
}

func TestGetTopRecommendation(t *testing.T) {
	r := setupRouterWithMock(&mockRecService{stats: btcStats()})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, BasePath+"/recommendations/top", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var out dto.StatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.Name != "BTC" {
		t.Fatalf("unexpected body %s err=%v", w.Body.String(), err)
	}

	r = setupRouterWithMock(&mockRecService{err: models.ErrNoData})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, BasePath+"/recommendations/top", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetSymbols(t *testing.T) {
	r := setupRouterWithMock(&mockRecService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, BasePath+"/recommendations/symbols", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var out dto.SymbolsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || len(out.Symbols) != 2 {
		t.Fatalf("unexpected body %s err=%v", w.Body.String(), err)
	}
}
