package snkrdunk

import (
	"context"
	"fmt"
)

// MockProvider serves canned responses for tests and offline runs. The
// shapes deliberately differ per method to exercise the extractors the
// way the real endpoints do.
type MockProvider struct{}

func (m *MockProvider) Available() bool {
	return true
}

func (m *MockProvider) ProviderName() string {
	return "SNKRDUNKMock"
}

func (m *MockProvider) Search(ctx context.Context, keyword string, page, perPage int) (*SearchResult, error) {
	return &SearchResult{
		Endpoint: "mock:///en/v1/trading-cards",
		Data: map[string]any{
			"items": []any{
				map[string]any{
					"id":       "135232",
					"name":     fmt.Sprintf("%s ex", keyword),
					"number":   "025",
					"setName":  "Pokemon 151",
					"imageUrl": "https://example.test/pikachu.jpg",
					"minPrice": float64(4200),
				},
				map[string]any{
					"cardId":       "990017",
					"name":         keyword,
					"series":       "Crown Zenith",
					"thumbnailUrl": "https://example.test/thumb.jpg",
					"minPrice":     "¥12,800",
				},
			},
		},
	}, nil
}

func (m *MockProvider) UsedListings(ctx context.Context, cardID string, page, perPage int) (any, error) {
	// Nested shape: listings under data.items, prices as mixed types.
	return map[string]any{
		"data": map[string]any{
			"items": []any{
				map[string]any{"id": float64(1), "price": float64(6800), "condition": "A"},
				map[string]any{"id": float64(2), "price": "7,500", "condition": "B"},
				map[string]any{"id": float64(3), "price": float64(5900), "condition": "A"},
			},
		},
	}, nil
}

func (m *MockProvider) RelatedSingleCards(ctx context.Context, cardID string, page, perPage int) (any, error) {
	return map[string]any{
		"cards": []any{
			map[string]any{"tradingCardId": float64(881102), "name": "Raichu", "number": "026"},
		},
	}, nil
}

func (m *MockProvider) CardDetail(ctx context.Context, cardID string) (any, error) {
	return map[string]any{
		"id":       cardID,
		"name":     "Pikachu ex",
		"number":   "025",
		"setName":  "Pokemon 151",
		"rarity":   "SAR",
		"minPrice": float64(4200),
	}, nil
}
