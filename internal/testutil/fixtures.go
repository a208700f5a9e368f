// Package testutil builds decoded-JSON fixtures in the shapes the
// SNKRDUNK endpoints have been observed to return.
package testutil

import (
	"fmt"
	"math/rand"
	"time"
)

// Factory generates deterministic test data from a seed.
type Factory struct {
	rand *rand.Rand
}

func NewFactory(seed int64) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{rand: rand.New(rand.NewSource(seed))}
}

// CardItem builds one raw response item the way the trading-cards
// endpoint renders it.
func (f *Factory) CardItem(name string) map[string]any {
	return map[string]any{
		"id":       fmt.Sprintf("%d", f.rand.Intn(900000)+100000),
		"name":     name,
		"number":   fmt.Sprintf("%03d", f.rand.Intn(300)+1),
		"setName":  f.SetName(),
		"imageUrl": fmt.Sprintf("https://img.test.local/%d.jpg", f.rand.Int63()),
		"minPrice": float64(f.rand.Intn(50000) + 500),
	}
}

// SetName picks a plausible set name.
func (f *Factory) SetName() string {
	sets := []string{"Pokemon 151", "Crown Zenith", "Scarlet Violet", "Detective Pikachu", "Shiny Treasure"}
	return sets[f.rand.Intn(len(sets))]
}

// PriceJPY picks a positive listing price.
func (f *Factory) PriceJPY() float64 {
	return float64(f.rand.Intn(50000) + 500)
}

// SearchResponseFlat wraps items the way /en/v1/trading-cards does:
// a top-level "items" array.
func SearchResponseFlat(items ...map[string]any) map[string]any {
	return map[string]any{"items": anySlice(items)}
}

// SearchResponseNested wraps items the way /en/v1/search does: a
// "data" object holding "results".
func SearchResponseNested(items ...map[string]any) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"results": anySlice(items),
			"total":   float64(len(items)),
		},
	}
}

// SearchResponseStreetwear mimics the legacy search shape whose item
// list sits under a key the shape extractor does not probe.
func SearchResponseStreetwear(items ...map[string]any) map[string]any {
	return map[string]any{"streetwears": anySlice(items)}
}

// UsedListingsResponse wraps listings under data.items with the given
// prices, mixing numeric and string renditions like the live endpoint.
func UsedListingsResponse(prices ...any) map[string]any {
	items := make([]any, len(prices))
	for i, p := range prices {
		items[i] = map[string]any{
			"id":    float64(i + 1),
			"price": p,
		}
	}
	return map[string]any{"data": map[string]any{"items": items}}
}

func anySlice(items []map[string]any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
