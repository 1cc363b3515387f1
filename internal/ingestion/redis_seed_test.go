package ingestion

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/source"
)

type memWriter struct {
	mu   sync.Mutex
	data map[string]int
	err  error
}

func (m *memWriter) Store(_ context.Context, symbol string, points []models.PricePoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.data == nil {
		m.data = map[string]int{}
	}
	m.data[symbol] = len(points)
	return nil
}

func TestCopyPrices(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "BTC_values.csv", sampleFile("BTC"))
	writeFile(t, dir, "ETH_values.csv", sampleFile("ETH"))
	src := source.NewCSV(dir)

	w := &memWriter{}
	n, err := CopyPrices(context.Background(), src, w, nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 || w.data["BTC"] != 2 || w.data["ETH"] != 2 {
		t.Fatalf("unexpected copy n=%d data=%v", n, w.data)
	}

	w = &memWriter{}
	if n, err := CopyPrices(context.Background(), src, w, []string{"eth"}, 0); err != nil || n != 2 || len(w.data) != 1 {
		t.Fatalf("unexpected copy n=%d err=%v data=%v", n, err, w.data)
	}
}

func TestCopyPrices_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "BTC_values.csv", sampleFile("BTC"))
	src := source.NewCSV(dir)

	if _, err := CopyPrices(context.Background(), src, &memWriter{}, []string{"DOGE"}, 1); err == nil {
		t.Fatal("expected read error")
	}
	if _, err := CopyPrices(context.Background(), src, &memWriter{err: errors.New("oom")}, []string{"BTC"}, 1); err == nil {
		t.Fatal("expected store error")
	}
}
