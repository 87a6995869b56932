package collector

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

// RawProduct carries the text fragments pulled from a product page before
// any numeric parsing. Price fields stay raw strings here; the collector
// runs the parser over them.
type RawProduct struct {
	ProductID         string
	Name              string
	PriceText         string
	OriginalPriceText string
	StockText         string
	ImageURL          string
	Currency          string
}

// Fetcher retrieves the raw product fragments for one site.
type Fetcher interface {
	Match(rawURL string) bool
	Fetch(rawURL string) (*RawProduct, error)
	Name() string
}

// newHTTPClient builds the client shared by the site fetchers, with an
// optional proxy.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

func fetchPage(client *http.Client, rawURL string) (string, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	return string(body), nil
}

// extractFirst tries each pattern in order and returns the first capture
// group of the first match. Product pages change their markup often, so
// every field goes through a fallback list.
func extractFirst(page string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(page); len(m) > 1 && m[1] != "" {
			return m[1]
		}
	}
	return ""
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
