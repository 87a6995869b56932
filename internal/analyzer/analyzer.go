package analyzer

import (
	"errors"
	"time"

	"PriceTracker/internal/model"
)

// ErrInsufficientData is returned when a series has no points at all. A
// single-point series is still analyzable; an empty one is a caller-contract
// violation.
var ErrInsufficientData = errors.New("analyzer: price series is empty")

// Config carries every analyzer tunable. Zero values fall back to defaults
// in New, so a partially filled config from yaml is fine.
type Config struct {
	ShortWindow         int
	LongWindow          int
	ChangeThreshold     float64
	VolatilityThreshold float64
	TrailingWindow      int // 0 means analyze the full series
	Alerts              AlertThresholds
}

// DefaultConfig returns the stock analyzer settings.
func DefaultConfig() Config {
	return Config{
		ShortWindow:         3,
		LongWindow:          7,
		ChangeThreshold:     5.0,
		VolatilityThreshold: 0.05,
		TrailingWindow:      30,
		Alerts:              DefaultAlertThresholds(),
	}
}

// PriceAnalyzer turns a product's price history into a PriceAnalysis.
// It is a pure computation: no I/O, no retained state between calls, safe
// for concurrent use.
type PriceAnalyzer struct {
	volatility    *VolatilityStrategy
	movingAverage *MovingAverageStrategy
	pctChange     *PercentageChangeStrategy
	classifier    *AlertClassifier
	trailing      int
	now           func() time.Time
}

// Confidence below which a STABLE moving-average verdict is treated as
// inconclusive and the two-point percentage change may override it.
const stableFallbackConfidence = 0.25

// New builds an analyzer from config, applying defaults for zero fields.
func New(cfg Config) *PriceAnalyzer {
	def := DefaultConfig()
	if cfg.ShortWindow <= 0 {
		cfg.ShortWindow = def.ShortWindow
	}
	if cfg.LongWindow <= 0 {
		cfg.LongWindow = def.LongWindow
	}
	if cfg.ChangeThreshold <= 0 {
		cfg.ChangeThreshold = def.ChangeThreshold
	}
	if cfg.VolatilityThreshold <= 0 {
		cfg.VolatilityThreshold = def.VolatilityThreshold
	}
	if cfg.Alerts == (AlertThresholds{}) {
		cfg.Alerts = def.Alerts
	}

	ma := NewMovingAverageStrategy(cfg.ShortWindow, cfg.LongWindow)
	return &PriceAnalyzer{
		volatility:    NewVolatilityStrategy(cfg.VolatilityThreshold),
		movingAverage: ma,
		pctChange:     NewPercentageChangeStrategy(cfg.ChangeThreshold),
		classifier:    NewAlertClassifier(cfg.Alerts),
		trailing:      cfg.TrailingWindow,
		now:           time.Now,
	}
}

// Analyze computes statistics over the series, resolves the trend through
// the strategy chain, classifies the alert level, and assembles the record.
func (a *PriceAnalyzer) Analyze(series model.PriceSeries, product model.Product) (*model.PriceAnalysis, error) {
	if len(series) == 0 {
		return nil, ErrInsufficientData
	}

	values := series.Values()
	current := values[len(values)-1]
	previous := current
	if len(values) > 1 {
		previous = values[len(values)-2]
	}

	minimum, maximum := values[0], values[0]
	sum := 0.0
	for _, v := range values {
		if v < minimum {
			minimum = v
		}
		if v > maximum {
			maximum = v
		}
		sum += v
	}
	average := sum / float64(len(values))

	changeAmount := current - previous
	changePercent := 0.0
	if previous != 0 {
		changePercent = changeAmount / previous * 100
	}

	window := values
	if a.trailing > 0 && len(values) > a.trailing {
		window = values[len(values)-a.trailing:]
	}
	direction, strategyConfidence := a.resolveTrend(window)

	alert := a.classifier.Classify(changePercent, current, average, minimum, maximum)

	return &model.PriceAnalysis{
		ProductName:        product.Name,
		ProductID:          product.ProductID,
		URL:                product.URL,
		Site:               product.Site,
		CurrentPrice:       current,
		PreviousPrice:      previous,
		AveragePrice:       average,
		MinimumPrice:       minimum,
		MaximumPrice:       maximum,
		Currency:           series.Last().Currency,
		PriceChangePercent: changePercent,
		PriceChangeAmount:  changeAmount,
		TrendDirection:     direction,
		AlertLevel:         alert,
		Recommendation:     recommendationFor(alert),
		ConfidenceScore:    confidenceScore(strategyConfidence, len(values)),
		AnalysisDate:       a.now(),
		DataPointsCount:    len(values),
	}, nil
}

// resolveTrend runs the fixed strategy precedence: a volatile series has no
// meaningful direction, so volatility is checked first; the moving average
// is then authoritative because it is less sensitive to single-point noise;
// the two-point percentage change only decides when the moving average is
// inconclusive.
func (a *PriceAnalyzer) resolveTrend(window []float64) (model.TrendDirection, float64) {
	if dir, conf := a.volatility.Analyze(window); dir == model.TrendVolatile {
		return dir, conf
	}

	maDir, maConf := a.movingAverage.Analyze(window)
	if maDir != model.TrendStable {
		return maDir, maConf
	}
	if maConf < stableFallbackConfidence {
		if pcDir, pcConf := a.pctChange.Analyze(window); pcDir != model.TrendStable {
			return pcDir, pcConf
		}
	}
	return maDir, maConf
}

// confidenceScore blends the strategy confidence with a data-sufficiency
// term: strategy confidence contributes up to 70 points, the point count up
// to 30, saturating at 30 observations. Monotonic in both inputs.
func confidenceScore(strategyConfidence float64, points int) float64 {
	sufficiency := float64(points) / 30
	if sufficiency > 1 {
		sufficiency = 1
	}
	return strategyConfidence*70 + sufficiency*30
}

func recommendationFor(alert model.AlertLevel) string {
	switch alert {
	case model.AlertCriticalDrop:
		return "Buy now - price dropped sharply"
	case model.AlertGoodDeal:
		return "Good time to buy"
	case model.AlertFairPrice:
		return "Price is typical for this product"
	case model.AlertSlightIncrease:
		return "Price moved up slightly - no rush"
	case model.AlertOverpriced:
		return "Wait for a better price"
	default:
		return "No recommendation"
	}
}
