package store

import "PriceTracker/internal/model"

// Store persists observations and serves price history back to the
// analyzer, oldest first.
type Store interface {
	SaveObservation(obs *model.Observation) error
	History(url string, limit int) (model.PriceSeries, error)
	Product(url string) (*model.Product, error)
	Products() ([]model.Product, error)
	Close() error
}
