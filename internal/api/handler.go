package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cryptopulse/internal/domain/dto"
	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/service"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
	dateLayout      = "2006-01-02"
)

// Handler provides HTTP handlers for the recommendation endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query and path parameters
//   - Delegate to the recommendation service
//   - Translate service results into response DTOs
//   - Attach errors to the gin context so middleware.ErrorHandler can map them
type Handler struct {
	svc service.RecommendationService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.RecommendationService): ranks symbols and computes their stats.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.RecommendationService) *Handler {
	return &Handler{svc: svc}
}

// GetRecommendations handles GET /crypto/api/v1/recommendations.
//
// GetRecommendations godoc
// @Summary      List recommendations
// @Description  Returns all cryptocurrencies sorted by normalized range ((max-min)/min) for the timeframe
// @Tags         recommendations
// @Produce      json
// @Param        page          query     int     false  "Page number, zero based" default(0)
// @Param        size          query     int     false  "Page size (0-100)" default(50)
// @Param        sortBy        query     string  false  "<field>_<asc|desc>, field in normalizedRange|symbol|min|max" default(normalizedRange_desc)
// @Param        fromDate      query     string  false  "Start date YYYY-MM-DD" example(2022-01-01)
// @Param        toDate        query     string  false  "End date YYYY-MM-DD, defaults to today" example(2022-01-31)
// @Param        periodMonths  query     int     false  "Months back from today (1-60), exclusive with dates" default(1)
// @Success      200           {object}  dto.RecommendationsResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Failure      401           {object}  dto.ErrorResponse
// @Failure      500           {object}  dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /recommendations [get]
func (h *Handler) GetRecommendations(c *gin.Context) {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", models.ErrInvalidPagination, err))
		return
	}
	size, err := intQuery(c, "size", DefaultPageSize)
	if err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", models.ErrInvalidPagination, err))
		return
	}
	if size > MaxPageSize {
		_ = c.Error(fmt.Errorf("%w: size must be at most %d", models.ErrInvalidPagination, MaxPageSize))
		return
	}
	q, err := timeframeQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.svc.Recommendations(c.Request.Context(), page, size, c.Query("sortBy"), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecommendationsResponse(*out))
}

// GetTopRecommendation handles GET /crypto/api/v1/recommendations/top.
//
// GetTopRecommendation godoc
// @Summary      Highest normalized range
// @Description  Returns the cryptocurrency with the highest normalized range for the timeframe
// @Tags         recommendations
// @Produce      json
// @Param        fromDate      query     string  false  "Start date YYYY-MM-DD"
// @Param        toDate        query     string  false  "End date YYYY-MM-DD"
// @Param        periodMonths  query     int     false  "Months back from today (1-60)"
// @Success      200           {object}  dto.StatsResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Failure      401           {object}  dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /recommendations/top [get]
func (h *Handler) GetTopRecommendation(c *gin.Context) {
	q, err := timeframeQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	st, err := h.svc.TopRecommendation(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsResponse(*st))
}

// GetSymbols handles GET /crypto/api/v1/recommendations/symbols.
//
// GetSymbols godoc
// @Summary      Supported symbols
// @Description  Lists the cryptocurrencies loaded at startup
// @Tags         recommendations
// @Produce      json
// @Success      200  {object}  dto.SymbolsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /recommendations/symbols [get]
func (h *Handler) GetSymbols(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SymbolsResponse{Symbols: h.svc.Symbols(c.Request.Context())})
}

// GetSymbolStats handles GET /crypto/api/v1/recommendations/:symbol.
//
// GetSymbolStats godoc
// @Summary      Stats of one cryptocurrency
// @Description  Returns oldest, newest, min, max and normalized range for the symbol (case-insensitive)
// @Tags         recommendations
// @Produce      json
// @Param        symbol        path      string  true   "Symbol" example(BTC)
// @Param        fromDate      query     string  false  "Start date YYYY-MM-DD"
// @Param        toDate        query     string  false  "End date YYYY-MM-DD"
// @Param        periodMonths  query     int     false  "Months back from today (1-60)"
// @Success      200           {object}  dto.StatsResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Failure      401           {object}  dto.ErrorResponse
// @Failure      404           {object}  dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /recommendations/{symbol} [get]
func (h *Handler) GetSymbolStats(c *gin.Context) {
	symbol := models.NormalizeSymbol(c.Param("symbol"))
	if symbol == "" {
		_ = c.Error(fmt.Errorf("%w: empty symbol", models.ErrNotFound))
		return
	}
	q, err := timeframeQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	st, err := h.svc.StatsFor(c.Request.Context(), symbol, q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsResponse(*st))
}

// timeframeQuery reads fromDate, toDate and periodMonths. Only syntax is
// checked here; combination rules belong to the resolver.
func timeframeQuery(c *gin.Context) (models.TimeframeQuery, error) {
	var q models.TimeframeQuery
	if s := strings.TrimSpace(c.Query("fromDate")); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return q, fmt.Errorf("%w: invalid fromDate %q, expected YYYY-MM-DD", models.ErrInvalidTimeframe, s)
		}
		q.From = &d
	}
	if s := strings.TrimSpace(c.Query("toDate")); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return q, fmt.Errorf("%w: invalid toDate %q, expected YYYY-MM-DD", models.ErrInvalidTimeframe, s)
		}
		q.To = &d
	}
	if s := strings.TrimSpace(c.Query("periodMonths")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return q, fmt.Errorf("%w: invalid periodMonths %q", models.ErrInvalidTimeframe, s)
		}
		q.PeriodMonths = &n
	}
	return q, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}
