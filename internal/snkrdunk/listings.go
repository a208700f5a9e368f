package snkrdunk

import (
	"context"
	"net/url"
	"strconv"

	"github.com/guarzo/snkrsearch/internal/cache"
)

// UsedListings fetches the used-listings JSON for a card, the primary
// source of current asking prices.
func (c *Client) UsedListings(ctx context.Context, cardID string, page, perPage int) (any, error) {
	return c.cachedJSON(cache.UsedListingsKey(cardID, page, perPage), func() (any, error) {
		params := url.Values{
			"perPage":      {strconv.Itoa(perPage)},
			"page":         {strconv.Itoa(page)},
			"sortType":     {"latest"},
			"isOnlyOnSale": {"false"},
		}
		return c.getJSON(ctx, "/en/v1/trading-cards/"+url.PathEscape(cardID)+"/used-listings", params)
	})
}

// RelatedSingleCards fetches cards the storefront considers similar to
// the given one.
func (c *Client) RelatedSingleCards(ctx context.Context, cardID string, page, perPage int) (any, error) {
	return c.cachedJSON(cache.RelatedCardsKey(cardID, page, perPage), func() (any, error) {
		params := url.Values{
			"perPage": {strconv.Itoa(perPage)},
			"page":    {strconv.Itoa(page)},
		}
		return c.getJSON(ctx, "/en/v1/trading-cards/"+url.PathEscape(cardID)+"/related-single-cards", params)
	})
}

// CardDetail fetches the detail object for a single card.
func (c *Client) CardDetail(ctx context.Context, cardID string) (any, error) {
	return c.cachedJSON(cache.CardDetailKey(cardID), func() (any, error) {
		return c.getJSON(ctx, "/en/v1/trading-cards/"+url.PathEscape(cardID), nil)
	})
}
