// Package app wires the SNKRDUNK boundary, the extractors and the used
// page scraper into the operations the CLI exposes.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/guarzo/snkrsearch/internal/extract"
	"github.com/guarzo/snkrsearch/internal/model"
	"github.com/guarzo/snkrsearch/internal/snkrdunk"
)

// SoldPriceSource is the HTML scraping side of the price picture. It is
// a separate, unreconciled source from the JSON listings: completed
// sales versus current asks.
type SoldPriceSource interface {
	SoldPrices(ctx context.Context, cardID string) ([]int, error)
}

// App is the glue the CLI calls into.
type App struct {
	provider snkrdunk.Provider
	sold     SoldPriceSource
	debug    bool
}

func New(provider snkrdunk.Provider, sold SoldPriceSource) *App {
	return &App{provider: provider, sold: sold}
}

// SetDebug enables debug logging.
func (a *App) SetDebug(debug bool) {
	a.debug = debug
}

// SearchOutcome is one keyword search reduced to displayable cards.
type SearchOutcome struct {
	Endpoint string
	Cards    []model.Card
}

// Search runs the keyword search and reduces whatever shape the winning
// endpoint returned to a card list. Items that are not objects are
// dropped; cards without a recognizable ID are kept (they just can't be
// drilled into).
func (a *App) Search(ctx context.Context, keyword string, page, perPage int) (*SearchOutcome, error) {
	result, err := a.provider.Search(ctx, keyword, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", keyword, err)
	}
	if a.debug {
		log.Printf("app: search %q answered by %s", keyword, result.Endpoint)
	}

	items := extract.Items(result.Data)
	cards := make([]model.Card, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		card := model.FromRaw(obj)
		if id, ok := extract.CardID(obj); ok {
			card.ID = id
		}
		cards = append(cards, card)
	}

	return &SearchOutcome{Endpoint: result.Endpoint, Cards: cards}, nil
}

// Detail is everything the detail view shows for one card. The two
// price sources stay separate: Prices summarizes current asks from the
// JSON listings, SoldUSD lists completed sales scraped from the used
// page. SoldErr carries a scrape failure without blanking the rest of
// the view.
type Detail struct {
	CardID  string
	Card    model.Card
	Prices  extract.Summary
	Related []model.Card
	SoldUSD []int
	SoldErr error
}

// CardDetail assembles the detail view. The used-listings fetch is the
// one hard dependency; detail, related and sold-price lookups degrade to
// empty sections when they fail.
func (a *App) CardDetail(ctx context.Context, cardID string) (*Detail, error) {
	d := &Detail{CardID: cardID}

	listings, err := a.provider.UsedListings(ctx, cardID, 1, 16)
	if err != nil {
		return nil, fmt.Errorf("fetching listings for %s: %w", cardID, err)
	}
	d.Prices = extract.Prices(listings)

	if detail, err := a.provider.CardDetail(ctx, cardID); err == nil {
		if obj, ok := detail.(map[string]any); ok {
			d.Card = model.FromRaw(obj)
			d.Card.ID = cardID
		}
	} else if a.debug {
		log.Printf("app: card %s: detail unavailable: %v", cardID, err)
	}

	if related, err := a.provider.RelatedSingleCards(ctx, cardID, 1, 10); err == nil {
		for _, item := range extract.Items(related) {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			card := model.FromRaw(obj)
			if id, ok := extract.CardID(obj); ok {
				card.ID = id
			}
			d.Related = append(d.Related, card)
		}
	} else if a.debug {
		log.Printf("app: card %s: related cards unavailable: %v", cardID, err)
	}

	if a.sold != nil {
		prices, err := a.sold.SoldPrices(ctx, cardID)
		if err != nil {
			d.SoldErr = err
		} else {
			d.SoldUSD = prices
		}
	}

	return d, nil
}
