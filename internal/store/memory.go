package store

import (
	"sync"

	"PriceTracker/internal/model"
)

// MemoryStore keeps everything in process memory. Used when no database
// path is configured and as a test double for the scheduler.
type MemoryStore struct {
	mu       sync.Mutex
	order    []string // insertion order of product URLs
	products map[string]model.Product
	history  map[string]model.PriceSeries
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]model.Product),
		history:  make(map[string]model.PriceSeries),
	}
}

func (s *MemoryStore) SaveObservation(obs *model.Observation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	url := obs.Product.URL
	if _, seen := s.products[url]; !seen {
		s.order = append(s.order, url)
	}
	s.products[url] = obs.Product
	s.history[url] = append(s.history[url], model.PricePoint{
		Value:      obs.CurrentPrice,
		Currency:   obs.Currency,
		ObservedAt: obs.ObservedAt,
	})
	return nil
}

func (s *MemoryStore) History(url string, limit int) (model.PriceSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	series := s.history[url]
	if limit > 0 && len(series) > limit {
		series = series[len(series)-limit:]
	}
	out := make(model.PriceSeries, len(series))
	copy(out, series)
	return out, nil
}

func (s *MemoryStore) Product(url string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[url]
	if !ok {
		return nil, ErrUnknownProduct
	}
	return &p, nil
}

func (s *MemoryStore) Products() ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]model.Product, 0, len(s.order))
	for _, url := range s.order {
		products = append(products, s.products[url])
	}
	return products, nil
}

func (s *MemoryStore) Close() error { return nil }
