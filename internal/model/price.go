package model

import "time"

// PricePoint is a single observed price for a product.
type PricePoint struct {
	Value      float64
	Currency   string
	ObservedAt time.Time
}

// PriceSeries holds the chronological price history of one (product, site)
// pair. Callers must append in time order; the analyzer does not re-sort.
type PriceSeries []PricePoint

// Values returns the raw price values in chronological order.
func (s PriceSeries) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// Last returns the most recent point. The series must be non-empty.
func (s PriceSeries) Last() PricePoint {
	return s[len(s)-1]
}

// Tail returns the trailing n points (the whole series if shorter).
func (s PriceSeries) Tail(n int) PriceSeries {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
