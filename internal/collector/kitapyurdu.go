package collector

import (
	"net/http"
	"regexp"
	"strings"
	"time"
)

// KitapyurduFetcher extracts product data from kitapyurdu.com pages.
type KitapyurduFetcher struct {
	client *http.Client
}

func NewKitapyurduFetcher(proxyURL string, timeout time.Duration) *KitapyurduFetcher {
	return &KitapyurduFetcher{client: newHTTPClient(proxyURL, timeout)}
}

func (f *KitapyurduFetcher) Name() string { return "kitapyurdu" }

func (f *KitapyurduFetcher) Match(rawURL string) bool {
	return strings.Contains(hostOf(rawURL), "kitapyurdu.com")
}

var (
	kyNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`<h1[^>]*itemprop="name"[^>]*>([^<]+)`),
		regexp.MustCompile(`<h1[^>]*class="pr_header__heading"[^>]*>([^<]+)`),
	}
	kyPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`"price":\s*"([\d,.]+)"`),
		regexp.MustCompile(`class="price__item[^>]*>([^<]+)`),
		regexp.MustCompile(`itemprop="price"[^>]*content="([\d,.]+)"`),
	}
	kyOldPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`class="price price--old[^>]*>([^<]+)`),
		regexp.MustCompile(`class="price__old[^>]*>([^<]+)`),
	}
	kyStockPatterns = []*regexp.Regexp{
		regexp.MustCompile(`class="stock-status[^>]*>([^<]+)`),
		regexp.MustCompile(`itemprop="availability"[^>]*content="([^"]+)"`),
	}
	kyImagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`itemprop="image"[^>]*src="([^"]+)"`),
	}
	kyProductID = regexp.MustCompile(`/(\d+)\.html`)
)

func (f *KitapyurduFetcher) Fetch(rawURL string) (*RawProduct, error) {
	page, err := fetchPage(f.client, rawURL)
	if err != nil {
		return nil, err
	}

	raw := &RawProduct{
		Name:              extractFirst(page, kyNamePatterns),
		PriceText:         extractFirst(page, kyPricePatterns),
		OriginalPriceText: extractFirst(page, kyOldPricePatterns),
		StockText:         extractFirst(page, kyStockPatterns),
		ImageURL:          extractFirst(page, kyImagePatterns),
		Currency:          "TRY",
	}
	if m := kyProductID.FindStringSubmatch(rawURL); len(m) > 1 {
		raw.ProductID = m[1]
	}
	return raw, nil
}
