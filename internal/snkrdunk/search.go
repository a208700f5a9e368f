package snkrdunk

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/guarzo/snkrsearch/internal/cache"
)

// searchEndpoint is one endpoint+parameter template in the fallback list.
type searchEndpoint struct {
	path   string
	params func(keyword string, page, perPage int) url.Values
}

// searchEndpoints are tried in order until one answers with JSON. The
// storefront has shipped all three shapes at different times.
var searchEndpoints = []searchEndpoint{
	{
		path: "/en/v1/trading-cards",
		params: func(keyword string, page, perPage int) url.Values {
			return url.Values{
				"keyword":  {keyword},
				"page":     {strconv.Itoa(page)},
				"perPage":  {strconv.Itoa(perPage)},
				"sortType": {"popular"},
			}
		},
	},
	{
		path: "/en/v1/search",
		params: func(keyword string, page, perPage int) url.Values {
			return url.Values{
				"q":       {keyword},
				"type":    {"trading-cards"},
				"page":    {strconv.Itoa(page)},
				"perPage": {strconv.Itoa(perPage)},
			}
		},
	},
	{
		path: "/en/v1/products/search",
		params: func(keyword string, page, perPage int) url.Values {
			return url.Values{
				"keyword":  {keyword},
				"category": {"trading-cards"},
				"page":     {strconv.Itoa(page)},
				"limit":    {strconv.Itoa(perPage)},
			}
		},
	},
}

// SearchResult is a decoded search response tagged with the endpoint
// that produced it.
type SearchResult struct {
	Endpoint string `json:"endpoint"`
	Data     any    `json:"data"`
}

// EndpointError is one failed attempt during the endpoint fallback.
type EndpointError struct {
	URL string
	Err error
}

func (e EndpointError) Error() string {
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

// EndpointErrors aggregates every per-endpoint failure when the whole
// fallback list is exhausted.
type EndpointErrors []EndpointError

func (e EndpointErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "all search endpoints failed: " + strings.Join(msgs, "; ")
}

// Search runs the keyword search, trying each endpoint template in order
// and returning the first successful decoded response. When every
// endpoint fails the error is an EndpointErrors carrying each attempt.
func (c *Client) Search(ctx context.Context, keyword string, page, perPage int) (*SearchResult, error) {
	key := cache.SearchKey(keyword, page, perPage)
	if c.cache != nil {
		var cached SearchResult
		if found, _ := c.cache.Get(key, &cached); found {
			return &cached, nil
		}
	}

	var errs EndpointErrors
	for _, ep := range searchEndpoints {
		data, err := c.getJSON(ctx, ep.path, ep.params(keyword, page, perPage))
		if err != nil {
			errs = append(errs, EndpointError{URL: c.config.BaseURL + ep.path, Err: err})
			continue
		}

		result := &SearchResult{Endpoint: c.config.BaseURL + ep.path, Data: data}
		if c.cache != nil {
			_ = c.cache.Put(key, result, c.config.CacheTTL)
		}
		return result, nil
	}

	return nil, errs
}
