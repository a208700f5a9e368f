package snkrdunk

import "context"

// Provider is the boundary the UI/CLI layer consumes. Everything comes
// back as decoded JSON for the extract package to pick apart.
type Provider interface {
	// Available returns true if the provider is configured and reachable.
	Available() bool

	// Search runs the keyword search with endpoint fallback.
	Search(ctx context.Context, keyword string, page, perPage int) (*SearchResult, error)

	// UsedListings returns the used-listings response for a card.
	UsedListings(ctx context.Context, cardID string, page, perPage int) (any, error)

	// RelatedSingleCards returns cards similar to the given one.
	RelatedSingleCards(ctx context.Context, cardID string, page, perPage int) (any, error)

	// CardDetail returns the detail object for a card.
	CardDetail(ctx context.Context, cardID string) (any, error)

	// ProviderName returns the name of the provider.
	ProviderName() string
}
