package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const usedPageHTML = `<!DOCTYPE html>
<html><body>
<div class="listing-grid">
  <div class="listing"><span class="badge">SOLD US $71</span><span>Condition A</span></div>
  <div class="listing"><span class="badge">SOLD US $1,234</span></div>
  <div class="listing"><span class="price">US $99</span></div>
  <div class="listing"><span class="badge">SOLD US $58</span></div>
</div>
</body></html>`

func TestParseSoldPrices(t *testing.T) {
	prices := parseSoldPrices("SOLD US $71 ... SOLD US $1,234 ... US $99 ... SOLD US $58")

	want := []int{71, 1234, 58}
	if len(prices) != len(want) {
		t.Fatalf("expected %v, got %v", want, prices)
	}
	for i := range want {
		if prices[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], prices[i])
		}
	}
}

func TestParseSoldPricesNoMatches(t *testing.T) {
	prices := parseSoldPrices("<html>no sales here</html>")
	if len(prices) != 0 {
		t.Errorf("expected no prices, got %v", prices)
	}
}

func TestSoldPricesFromPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/en/trading-cards/135232/used" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent")
		}
		w.Write([]byte(usedPageHTML))
	}))
	defer server.Close()

	s := NewUsedPageScraper()
	s.SetBaseURL(server.URL)

	prices, err := s.SoldPrices(context.Background(), "135232")
	if err != nil {
		t.Fatalf("SoldPrices failed: %v", err)
	}
	if len(prices) != 3 {
		t.Fatalf("expected 3 SOLD prices from page, got %v", prices)
	}
	if prices[0] != 71 || prices[1] != 1234 || prices[2] != 58 {
		t.Errorf("prices out of page order: %v", prices)
	}
}

func TestSoldPricesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	s := NewUsedPageScraper()
	s.SetBaseURL(server.URL)

	if _, err := s.SoldPrices(context.Background(), "0"); err == nil {
		t.Fatal("expected error on non-200 page")
	}
}
