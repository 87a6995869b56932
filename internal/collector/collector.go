package collector

import (
	"fmt"
	"log"
	"strings"
	"time"

	"PriceTracker/internal/model"
	"PriceTracker/internal/parser"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Site    string
	Raw     *RawProduct
	Err     error
	Fetched []string // URLs fetched, in order
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Match(rawURL string) bool {
	if m.Site == "" {
		return true
	}
	return strings.Contains(hostOf(rawURL), m.Site)
}

func (m *MockFetcher) Fetch(rawURL string) (*RawProduct, error) {
	m.Fetched = append(m.Fetched, rawURL)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Raw != nil {
		return m.Raw, nil
	}
	return &RawProduct{
		ProductID: "MOCK1",
		Name:      "Mock Product",
		PriceText: "149,90 TL",
		Currency:  "TRY",
	}, nil
}

// Collector routes a product URL to the matching site fetcher and turns the
// raw page fragments into a parsed Observation.
type Collector struct {
	fetchers []Fetcher
	parser   *parser.Parser
	now      func() time.Time
}

// NewCollector creates a collector over the given site fetchers. Fetchers
// are tried in order; the first whose Match accepts the URL wins.
func NewCollector(fetchers ...Fetcher) *Collector {
	return &Collector{
		fetchers: fetchers,
		parser:   parser.NewParser(),
		now:      time.Now,
	}
}

// DefaultFetchers returns the fetchers for every supported site.
func DefaultFetchers(proxyURL string, timeout time.Duration) []Fetcher {
	return []Fetcher{
		NewKitapyurduFetcher(proxyURL, timeout),
		NewHepsiburadaFetcher(proxyURL, timeout),
		NewAmazonFetcher(proxyURL, timeout),
	}
}

// Collect fetches one product page and produces an Observation. A page
// without a recognizable price yields an error; the caller treats it as
// "price unknown for this observation" and moves on. discountPercent is an
// optional page-external discount applied to the parsed value.
func (c *Collector) Collect(rawURL string, discountPercent float64) (*model.Observation, error) {
	fetcher := c.fetcherFor(rawURL)
	if fetcher == nil {
		return nil, fmt.Errorf("no fetcher matches %s", rawURL)
	}

	raw, err := fetcher.Fetch(rawURL)
	if err != nil {
		return nil, err
	}

	price, ok := c.parser.Parse(raw.PriceText)
	if !ok {
		return nil, fmt.Errorf("no price found on %s", rawURL)
	}
	if discountPercent != 0 {
		price = parser.ApplyDiscount(price, discountPercent)
	}
	if price <= 0 {
		return nil, fmt.Errorf("invalid price %.2f on %s", price, rawURL)
	}

	// The original price is optional; a failed parse just leaves it unset.
	originalPrice := 0.0
	if raw.OriginalPriceText != "" {
		if v, ok := c.parser.Parse(raw.OriginalPriceText); ok {
			originalPrice = v
		} else {
			log.Printf("[WARN] unparseable original price %q on %s", raw.OriginalPriceText, rawURL)
		}
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = "Unknown Product from " + fetcher.Name()
	}
	currency := raw.Currency
	if currency == "" {
		currency = "TRY"
	}

	return &model.Observation{
		Product: model.Product{
			ProductID: raw.ProductID,
			Name:      name,
			URL:       rawURL,
			Site:      fetcher.Name(),
			ImageURL:  raw.ImageURL,
		},
		CurrentPrice:  price,
		OriginalPrice: originalPrice,
		Currency:      currency,
		StockStatus:   normalizeStock(raw.StockText),
		ObservedAt:    c.now(),
	}, nil
}

func (c *Collector) fetcherFor(rawURL string) Fetcher {
	for _, f := range c.fetchers {
		if f.Match(rawURL) {
			return f
		}
	}
	return nil
}

func normalizeStock(text string) string {
	lower := strings.ToLower(text)
	switch {
	case text == "":
		return "Unknown"
	case strings.Contains(lower, "stokta yok") || strings.Contains(lower, "outofstock"):
		return "Out of Stock"
	case strings.Contains(lower, "stok") || strings.Contains(lower, "instock"):
		return "In Stock"
	default:
		return strings.TrimSpace(text)
	}
}
