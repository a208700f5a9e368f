package snkrdunk

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.RateLimit = rate.Limit(1000)
	cfg.CacheEnabled = false
	return cfg
}

func TestSearchFirstEndpointWins(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Query().Get("keyword") != "pikachu" {
			t.Errorf("missing keyword param: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"135232","name":"Pikachu"}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	result, err := client.Search(context.Background(), "pikachu", 1, 20)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(paths) != 1 || paths[0] != "/en/v1/trading-cards" {
		t.Errorf("expected a single hit on the first endpoint, got %v", paths)
	}
	if !strings.HasSuffix(result.Endpoint, "/en/v1/trading-cards") {
		t.Errorf("result not tagged with winning endpoint: %s", result.Endpoint)
	}
	obj, ok := result.Data.(map[string]any)
	if !ok || obj["items"] == nil {
		t.Errorf("decoded body lost its shape: %v", result.Data)
	}
}

func TestSearchFallsBackOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/en/v1/trading-cards":
			http.Error(w, "not found", http.StatusNotFound)
		case "/en/v1/search":
			if r.URL.Query().Get("q") != "pikachu" {
				t.Errorf("second endpoint uses q param, got %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{"results":[{"id":1}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	result, err := client.Search(context.Background(), "pikachu", 1, 20)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !strings.HasSuffix(result.Endpoint, "/en/v1/search") {
		t.Errorf("expected fallback endpoint to win, got %s", result.Endpoint)
	}
}

func TestSearchAllEndpointsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Search(context.Background(), "pikachu", 1, 20)
	if err == nil {
		t.Fatal("expected an error when every endpoint fails")
	}

	var errs EndpointErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected EndpointErrors, got %T: %v", err, err)
	}
	if len(errs) != 3 {
		t.Errorf("expected one entry per endpoint, got %d", len(errs))
	}
	for _, e := range errs {
		if e.URL == "" || e.Err == nil {
			t.Errorf("attempt not recorded: %+v", e)
		}
	}
}

func TestGetJSONRejectsNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>cloudflare says hi</html>`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.CardDetail(context.Background(), "135232")
	if err == nil {
		t.Fatal("expected decode error for HTML body")
	}
}

func TestGetJSONGzipResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			t.Error("client should advertise gzip")
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(`{"name":"Pikachu ex"}`))
		gz.Close()
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	data, err := client.CardDetail(context.Background(), "135232")
	if err != nil {
		t.Fatalf("CardDetail failed: %v", err)
	}
	obj, ok := data.(map[string]any)
	if !ok || obj["name"] != "Pikachu ex" {
		t.Errorf("gzip body not decoded: %v", data)
	}
}

func TestUsedListingsParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/en/v1/trading-cards/135232/used-listings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("sortType") != "latest" || q.Get("isOnlyOnSale") != "false" {
			t.Errorf("missing listing params: %s", r.URL.RawQuery)
		}
		if q.Get("perPage") != "16" || q.Get("page") != "1" {
			t.Errorf("missing paging params: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"items":[{"price":6800}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	if _, err := client.UsedListings(context.Background(), "135232", 1, 16); err != nil {
		t.Fatalf("UsedListings failed: %v", err)
	}
}

func TestRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing Accept header")
		}
		if r.Header.Get("Referer") != "https://snkrdunk.com/" {
			t.Errorf("missing Referer header")
		}
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("missing User-Agent header")
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	if _, err := client.CardDetail(context.Background(), "1"); err != nil {
		t.Fatalf("CardDetail failed: %v", err)
	}
}

func TestResponseCaching(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"items":[{"price":6800}]}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.CacheEnabled = true
	cfg.CachePath = filepath.Join(t.TempDir(), "cache.json")
	cfg.CacheTTL = time.Hour

	client := NewClient(cfg)
	for i := 0; i < 3; i++ {
		if _, err := client.UsedListings(context.Background(), "135232", 1, 16); err != nil {
			t.Fatalf("UsedListings failed: %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("expected 1 upstream hit with caching, got %d", hits)
	}
}
