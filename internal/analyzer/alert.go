package analyzer

import (
	"math"

	"PriceTracker/internal/model"
)

// AlertThresholds holds the boundaries of the classification ladder. The
// values are policy constants, not derived; exposing them here lets config
// tune them without touching the ladder itself.
type AlertThresholds struct {
	CriticalDropPercent float64 // change at or below this is a critical drop
	GoodDealPercent     float64 // change at or below this is a good deal
	StableBandPercent   float64 // |change| within this band may be fair
	AverageBandRatio    float64 // fair also requires price near the average
	OverpricedPercent   float64 // change at or above this is overpriced
}

// DefaultAlertThresholds mirrors the observed boundary behavior:
// -25% -> CRITICAL_DROP, -15% -> GOOD_DEAL, +2% near average -> FAIR_PRICE.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		CriticalDropPercent: -20,
		GoodDealPercent:     -10,
		StableBandPercent:   5,
		AverageBandRatio:    0.10,
		OverpricedPercent:   20,
	}
}

// AlertClassifier maps price statistics to a discrete alert level.
type AlertClassifier struct {
	thresholds AlertThresholds
}

func NewAlertClassifier(thresholds AlertThresholds) *AlertClassifier {
	return &AlertClassifier{thresholds: thresholds}
}

// Classify walks the threshold ladder in order; the first match wins.
func (c *AlertClassifier) Classify(changePercent, currentPrice, averagePrice, minimumPrice, maximumPrice float64) model.AlertLevel {
	t := c.thresholds
	switch {
	case changePercent <= t.CriticalDropPercent:
		return model.AlertCriticalDrop
	case changePercent <= t.GoodDealPercent:
		return model.AlertGoodDeal
	case math.Abs(changePercent) <= t.StableBandPercent && nearAverage(currentPrice, averagePrice, t.AverageBandRatio):
		return model.AlertFairPrice
	case changePercent >= t.OverpricedPercent:
		return model.AlertOverpriced
	default:
		return model.AlertSlightIncrease
	}
}

func nearAverage(current, average, band float64) bool {
	if average == 0 {
		return false
	}
	return math.Abs(current-average)/average <= band
}
