package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

// FileSuffix is appended to the symbol to build the CSV file name (BTC_values.csv).
const FileSuffix = "_values.csv"

// CSV reads price histories from "<dir>/<SYMBOL>_values.csv" files with a
// "timestamp,symbol,price" header.
type CSV struct {
	dir string
}

// NewCSV creates a CSV source rooted at dir.
func NewCSV(dir string) *CSV {
	return &CSV{dir: dir}
}

func (s *CSV) Name() string { return "csv" }

// Dir returns the directory the source reads from.
func (s *CSV) Dir() string { return s.dir }

// Path returns the file that holds the history of symbol.
func (s *CSV) Path(symbol string) string {
	return filepath.Join(s.dir, models.NormalizeSymbol(symbol)+FileSuffix)
}

// FetchHistory opens and parses the symbol's file.
func (s *CSV) FetchHistory(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.Path(symbol)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	points, err := ReadPrices(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return points, nil
}

// ListSymbols returns the symbols of every *_values.csv file in the directory, sorted.
func (s *CSV) ListSymbols(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, FileSuffix) {
			continue
		}
		if sym := models.NormalizeSymbol(strings.TrimSuffix(name, FileSuffix)); sym != "" {
			out = append(out, sym)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ReadPrices parses a price CSV. Columns are located by header name
// ("timestamp" and "price", case-insensitive), extra columns are ignored and
// blank lines are skipped. Any malformed row fails the whole file.
func ReadPrices(r io.Reader) ([]models.PricePoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	tsCol, priceCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "timestamp":
			tsCol = i
		case "price":
			priceCol = i
		}
	}
	if tsCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("invalid header %v: expected timestamp and price columns", header)
	}

	var out []models.PricePoint
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(rec) {
			continue
		}
		if len(rec) <= tsCol || len(rec) <= priceCol {
			return nil, fmt.Errorf("line %d: expected at least %d columns, got %d", line, max(tsCol, priceCol)+1, len(rec))
		}

		ts, err := strconv.ParseInt(strings.TrimSpace(rec[tsCol]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid timestamp: %w", line, err)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[priceCol]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price: %w", line, err)
		}
		p, err := models.NewPricePoint(ts, price)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
