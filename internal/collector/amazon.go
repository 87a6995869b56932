package collector

import (
	"net/http"
	"regexp"
	"strings"
	"time"
)

// AmazonFetcher extracts product data from amazon.com.tr pages. Amazon
// splits the displayed price into whole and fraction spans; the combined
// a-offscreen text is tried first since it carries the full value.
type AmazonFetcher struct {
	client *http.Client
}

func NewAmazonFetcher(proxyURL string, timeout time.Duration) *AmazonFetcher {
	return &AmazonFetcher{client: newHTTPClient(proxyURL, timeout)}
}

func (f *AmazonFetcher) Name() string { return "amazon" }

func (f *AmazonFetcher) Match(rawURL string) bool {
	host := hostOf(rawURL)
	return strings.Contains(host, "amazon.com.tr") || strings.Contains(host, "amazon.tr")
}

var (
	azNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`id="productTitle"[^>]*>\s*([^<]+?)\s*<`),
	}
	azPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`class="a-offscreen">([^<]+)`),
		regexp.MustCompile(`class="a-price-whole">([^<]+)`),
		regexp.MustCompile(`id="priceblock_ourprice"[^>]*>([^<]+)`),
	}
	azOldPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`class="a-text-price"[^>]*>\s*<span class="a-offscreen">([^<]+)`),
		regexp.MustCompile(`class="priceBlockStrikePriceString[^>]*>([^<]+)`),
	}
	azStockPatterns = []*regexp.Regexp{
		regexp.MustCompile(`id="availability"[^>]*>\s*<span[^>]*>\s*([^<]+?)\s*<`),
	}
	azImagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`id="landingImage"[^>]*src="([^"]+)"`),
	}
	azASIN = regexp.MustCompile(`(?:/dp/|/gp/product/)(\w{10})`)
)

func (f *AmazonFetcher) Fetch(rawURL string) (*RawProduct, error) {
	page, err := fetchPage(f.client, rawURL)
	if err != nil {
		return nil, err
	}

	raw := &RawProduct{
		Name:              extractFirst(page, azNamePatterns),
		PriceText:         extractFirst(page, azPricePatterns),
		OriginalPriceText: extractFirst(page, azOldPricePatterns),
		StockText:         extractFirst(page, azStockPatterns),
		ImageURL:          extractFirst(page, azImagePatterns),
		Currency:          "TRY",
	}
	if m := azASIN.FindStringSubmatch(rawURL); len(m) > 1 {
		raw.ProductID = m[1]
	}
	return raw, nil
}
