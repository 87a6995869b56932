package model

import "time"

// Product identifies one tracked product on one site.
type Product struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Site      string `json:"site"`
	Category  string `json:"category,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Observation is one scraped reading for a product, already parsed to
// numeric prices. Failed parses never reach an Observation; the collector
// drops them before this point.
type Observation struct {
	Product       Product
	CurrentPrice  float64
	OriginalPrice float64 // 0 when the page shows no pre-discount price
	Currency      string
	StockStatus   string
	ObservedAt    time.Time
}
