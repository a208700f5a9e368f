// Package scrape pulls recent sale prices off the SNKRDUNK used page.
// This is a separate data source from the JSON listings path: the page
// shows completed sales ("SOLD US $N") while the API shows current asks,
// and the two are not reconciled.
package scrape

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/guarzo/snkrsearch/internal/ratelimit"
)

const (
	defaultBaseURL = "https://snkrdunk.com"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// soldPattern matches the sale badges on the used page, e.g. "SOLD US $71"
// or "SOLD US $1,234".
var soldPattern = regexp.MustCompile(`SOLD\s+US\s+\$([\d,]+)`)

// UsedPageScraper fetches and parses the /used page for a card.
type UsedPageScraper struct {
	baseURL string
	client  *http.Client
	limiter *ratelimit.Limiter
	debug   bool
}

func NewUsedPageScraper() *UsedPageScraper {
	return &UsedPageScraper{
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		limiter: ratelimit.NewScraperLimiter(),
	}
}

// SetBaseURL points the scraper at a different host. Used by tests.
func (s *UsedPageScraper) SetBaseURL(u string) {
	s.baseURL = strings.TrimSuffix(u, "/")
}

// SetDebug enables debug logging.
func (s *UsedPageScraper) SetDebug(debug bool) {
	s.debug = debug
}

// SoldPrices scrapes the used page for a card and returns every SOLD
// price found, in page order, in whole US dollars. An empty slice means
// no recent sales were shown; that is not an error. HTTP failures are.
func (s *UsedPageScraper) SoldPrices(ctx context.Context, cardID string) ([]int, error) {
	s.limiter.Wait()

	pageURL := fmt.Sprintf("%s/en/trading-cards/%s/used", s.baseURL, cardID)
	if s.debug {
		log.Printf("UsedPageScraper: fetching %s", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching used page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("used page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing used page: %w", err)
	}

	prices := parseSoldPrices(doc.Text())
	if s.debug {
		log.Printf("UsedPageScraper: card %s: %d SOLD prices", cardID, len(prices))
	}

	return prices, nil
}

// parseSoldPrices extracts every SOLD amount from the page text.
// Malformed amounts are dropped rather than failing the page.
func parseSoldPrices(text string) []int {
	matches := soldPattern.FindAllStringSubmatch(text, -1)
	prices := make([]int, 0, len(matches))

	for _, m := range matches {
		raw := strings.ReplaceAll(m[1], ",", "")
		price, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		prices = append(prices, price)
	}

	return prices
}
