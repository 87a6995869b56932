package collector

import (
	"net/http"
	"regexp"
	"strings"
	"time"
)

// HepsiburadaFetcher extracts product data from hepsiburada.com pages.
type HepsiburadaFetcher struct {
	client *http.Client
}

func NewHepsiburadaFetcher(proxyURL string, timeout time.Duration) *HepsiburadaFetcher {
	return &HepsiburadaFetcher{client: newHTTPClient(proxyURL, timeout)}
}

func (f *HepsiburadaFetcher) Name() string { return "hepsiburada" }

func (f *HepsiburadaFetcher) Match(rawURL string) bool {
	return strings.Contains(hostOf(rawURL), "hepsiburada.com")
}

var (
	hbNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`<h1[^>]*data-test-id="product-name"[^>]*>([^<]+)`),
		regexp.MustCompile(`<h1[^>]*class="product-name"[^>]*>([^<]+)`),
	}
	hbPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`data-test-id="price-current-price"[^>]*>([^<]+)`),
		regexp.MustCompile(`"price":\s*"?([\d,.]+)"?`),
		regexp.MustCompile(`itemprop="price"[^>]*content="([\d,.]+)"`),
	}
	hbOldPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`data-test-id="price-original-price"[^>]*>([^<]+)`),
		regexp.MustCompile(`class="originalPrice"[^>]*>([^<]+)`),
	}
	hbStockPatterns = []*regexp.Regexp{
		regexp.MustCompile(`data-test-id="stock-info"[^>]*>([^<]+)`),
	}
	hbProductID = regexp.MustCompile(`pm-([A-Z0-9]+)`)
)

func (f *HepsiburadaFetcher) Fetch(rawURL string) (*RawProduct, error) {
	page, err := fetchPage(f.client, rawURL)
	if err != nil {
		return nil, err
	}

	raw := &RawProduct{
		Name:              extractFirst(page, hbNamePatterns),
		PriceText:         extractFirst(page, hbPricePatterns),
		OriginalPriceText: extractFirst(page, hbOldPricePatterns),
		StockText:         extractFirst(page, hbStockPatterns),
		Currency:          "TRY",
	}
	if m := hbProductID.FindStringSubmatch(rawURL); len(m) > 1 {
		raw.ProductID = m[1]
	}
	return raw, nil
}
