package model

import (
	"fmt"
	"time"
)

// TrendDirection classifies recent price movement.
type TrendDirection string

const (
	TrendUp       TrendDirection = "UP"
	TrendDown     TrendDirection = "DOWN"
	TrendStable   TrendDirection = "STABLE"
	TrendVolatile TrendDirection = "VOLATILE"
)

// AlertLevel classifies how favorable the current price is, from best time
// to buy down to worst.
type AlertLevel string

const (
	AlertCriticalDrop   AlertLevel = "CRITICAL_DROP"
	AlertGoodDeal       AlertLevel = "GOOD_DEAL"
	AlertFairPrice      AlertLevel = "FAIR_PRICE"
	AlertSlightIncrease AlertLevel = "SLIGHT_INCREASE"
	AlertOverpriced     AlertLevel = "OVERPRICED"
)

// PriceAnalysis is the final output of the analyzer for one product.
// It is created fresh per analysis and never mutated afterwards.
type PriceAnalysis struct {
	ProductName        string         `json:"product_name"`
	ProductID          string         `json:"product_id"`
	URL                string         `json:"url"`
	Site               string         `json:"site"`
	CurrentPrice       float64        `json:"current_price"`
	PreviousPrice      float64        `json:"previous_price"`
	AveragePrice       float64        `json:"average_price"`
	MinimumPrice       float64        `json:"minimum_price"`
	MaximumPrice       float64        `json:"maximum_price"`
	Currency           string         `json:"currency"`
	PriceChangePercent float64        `json:"price_change_percent"`
	PriceChangeAmount  float64        `json:"price_change_amount"`
	TrendDirection     TrendDirection `json:"trend_direction"`
	AlertLevel         AlertLevel     `json:"alert_level"`
	Recommendation     string         `json:"recommendation"`
	ConfidenceScore    float64        `json:"confidence_score"`
	AnalysisDate       time.Time      `json:"analysis_date"`
	DataPointsCount    int            `json:"data_points_count"`
}

// ToMap flattens the analysis to field name -> primitive value, with the
// timestamp rendered as RFC 3339. The result is what downstream consumers
// (JSON export, tables, chart data) serialize.
func (a *PriceAnalysis) ToMap() map[string]any {
	return map[string]any{
		"product_name":         a.ProductName,
		"product_id":           a.ProductID,
		"url":                  a.URL,
		"site":                 a.Site,
		"current_price":        a.CurrentPrice,
		"previous_price":       a.PreviousPrice,
		"average_price":        a.AveragePrice,
		"minimum_price":        a.MinimumPrice,
		"maximum_price":        a.MaximumPrice,
		"currency":             a.Currency,
		"price_change_percent": a.PriceChangePercent,
		"price_change_amount":  a.PriceChangeAmount,
		"trend_direction":      string(a.TrendDirection),
		"alert_level":          string(a.AlertLevel),
		"recommendation":       a.Recommendation,
		"confidence_score":     a.ConfidenceScore,
		"analysis_date":        a.AnalysisDate.Format(time.RFC3339),
		"data_points_count":    a.DataPointsCount,
	}
}

// AnalysisFromMap rebuilds a PriceAnalysis from its flat mapping. Numeric
// fields accept both float64 and int so maps decoded from JSON round-trip.
func AnalysisFromMap(m map[string]any) (*PriceAnalysis, error) {
	a := &PriceAnalysis{
		ProductName:    mapString(m, "product_name"),
		ProductID:      mapString(m, "product_id"),
		URL:            mapString(m, "url"),
		Site:           mapString(m, "site"),
		Currency:       mapString(m, "currency"),
		Recommendation: mapString(m, "recommendation"),
		TrendDirection: TrendDirection(mapString(m, "trend_direction")),
		AlertLevel:     AlertLevel(mapString(m, "alert_level")),
	}
	a.CurrentPrice = mapFloat(m, "current_price")
	a.PreviousPrice = mapFloat(m, "previous_price")
	a.AveragePrice = mapFloat(m, "average_price")
	a.MinimumPrice = mapFloat(m, "minimum_price")
	a.MaximumPrice = mapFloat(m, "maximum_price")
	a.PriceChangePercent = mapFloat(m, "price_change_percent")
	a.PriceChangeAmount = mapFloat(m, "price_change_amount")
	a.ConfidenceScore = mapFloat(m, "confidence_score")
	a.DataPointsCount = int(mapFloat(m, "data_points_count"))

	if raw := mapString(m, "analysis_date"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("parse analysis_date: %w", err)
		}
		a.AnalysisDate = ts
	}
	return a, nil
}

func mapString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func mapFloat(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
