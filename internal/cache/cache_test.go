package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func TestCachePutGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snkr_cache.json")

	c, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	body := map[string]any{"items": []any{map[string]any{"id": "135232"}}}
	if err := c.Put(SearchKey("pikachu", 1, 20), body, time.Hour); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}

	var got map[string]any
	found, err := c.Get(SearchKey("pikachu", 1, 20), &got)
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if !found {
		t.Fatal("Expected to find cached search response")
	}
	if _, ok := got["items"]; !ok {
		t.Errorf("Cached body lost its shape: %v", got)
	}
}

func TestCacheExpiration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snkr_cache.json")
	c, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	if err := c.Put("short", "value", time.Millisecond); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var out string
	found, err := c.Get("short", &out)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if found {
		t.Error("Expected expired entry to be dropped")
	}
}

func TestCachePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snkr_cache.json")

	c1, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	if err := c1.Put(CardDetailKey("135232"), map[string]string{"name": "Pikachu"}, time.Hour); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}

	// A second cache on the same path sees the entry.
	c2, err := New(path)
	if err != nil {
		t.Fatalf("Failed to reopen cache: %v", err)
	}
	var got map[string]string
	found, err := c2.Get(CardDetailKey("135232"), &got)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !found || got["name"] != "Pikachu" {
		t.Errorf("Expected persisted entry, found=%v got=%v", found, got)
	}
}

func TestCacheRemoveAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snkr_cache.json")
	c, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	_ = c.Put("a", 1, time.Hour)
	_ = c.Put("b", 2, time.Hour)

	if err := c.Remove("a"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	var n int
	if found, _ := c.Get("a", &n); found {
		t.Error("Expected removed entry to be gone")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if found, _ := c.Get("b", &n); found {
		t.Error("Expected cleared cache to be empty")
	}
}

func TestBuildKeys(t *testing.T) {
	if k := SearchKey("pikachu", 2, 20); k != "search|pikachu|2|20" {
		t.Errorf("unexpected search key: %s", k)
	}
	if k := UsedListingsKey("135232", 1, 16); k != "used|135232|1|16" {
		t.Errorf("unexpected used key: %s", k)
	}
	if k := SoldPricesKey("135232"); k != "sold|135232" {
		t.Errorf("unexpected sold key: %s", k)
	}
}
