package analyzer

import (
	"math"

	"PriceTracker/internal/model"
)

// TrendStrategy maps a chronological price window to a direction and a
// confidence in [0,1]. A window shorter than the strategy needs yields
// (STABLE, 0) rather than an error, so callers never special-case short
// series.
type TrendStrategy interface {
	Analyze(prices []float64) (model.TrendDirection, float64)
	Name() string
}

// MovingAverageStrategy compares a short-window mean against a long-window
// mean. Divergence beyond a small margin decides the direction; its
// magnitude drives the confidence.
type MovingAverageStrategy struct {
	ShortWindow int
	LongWindow  int
	Margin      float64 // relative divergence below which the trend is flat
	Saturation  float64 // divergence at which confidence reaches 1.0
}

// NewMovingAverageStrategy returns the strategy with the given windows and
// the default 1% margin, saturating at 5% divergence.
func NewMovingAverageStrategy(shortWindow, longWindow int) *MovingAverageStrategy {
	return &MovingAverageStrategy{
		ShortWindow: shortWindow,
		LongWindow:  longWindow,
		Margin:      0.01,
		Saturation:  0.05,
	}
}

func (s *MovingAverageStrategy) Name() string { return "moving_average" }

func (s *MovingAverageStrategy) Analyze(prices []float64) (model.TrendDirection, float64) {
	if len(prices) < 2 {
		return model.TrendStable, 0
	}
	shortMean := tailMean(prices, s.ShortWindow)
	longMean := tailMean(prices, s.LongWindow)
	if longMean == 0 {
		return model.TrendStable, 0
	}

	d := (shortMean - longMean) / longMean
	confidence := clamp01(math.Abs(d) / s.Saturation)

	switch {
	case d > s.Margin:
		return model.TrendUp, confidence
	case d < -s.Margin:
		return model.TrendDown, confidence
	default:
		return model.TrendStable, confidence
	}
}

// PercentageChangeStrategy compares the first and last price of the window
// against a percent threshold.
type PercentageChangeStrategy struct {
	ThresholdPercent float64
}

func NewPercentageChangeStrategy(thresholdPercent float64) *PercentageChangeStrategy {
	return &PercentageChangeStrategy{ThresholdPercent: thresholdPercent}
}

func (s *PercentageChangeStrategy) Name() string { return "percentage_change" }

func (s *PercentageChangeStrategy) Analyze(prices []float64) (model.TrendDirection, float64) {
	if len(prices) < 2 {
		return model.TrendStable, 0
	}
	first, last := prices[0], prices[len(prices)-1]
	if first == 0 {
		return model.TrendStable, 0
	}

	change := (last - first) / first * 100
	confidence := clamp01(math.Abs(change) / (s.ThresholdPercent * 2))

	switch {
	case change > s.ThresholdPercent:
		return model.TrendUp, confidence
	case change < -s.ThresholdPercent:
		return model.TrendDown, confidence
	default:
		return model.TrendStable, confidence
	}
}

// VolatilityStrategy answers "is the series noisy", not "which way is it
// moving": it only ever reports VOLATILE or STABLE. The measure is the
// coefficient of variation (sample standard deviation over mean).
type VolatilityStrategy struct {
	Threshold float64 // CV above which the series counts as volatile
}

func NewVolatilityStrategy(threshold float64) *VolatilityStrategy {
	return &VolatilityStrategy{Threshold: threshold}
}

func (s *VolatilityStrategy) Name() string { return "volatility" }

func (s *VolatilityStrategy) Analyze(prices []float64) (model.TrendDirection, float64) {
	if len(prices) < 2 {
		return model.TrendStable, 0
	}
	m := mean(prices)
	if m == 0 {
		return model.TrendStable, 0
	}

	cv := sampleStdDev(prices, m) / m
	confidence := clamp01(cv / s.Threshold)

	if cv > s.Threshold {
		return model.TrendVolatile, confidence
	}
	return model.TrendStable, confidence
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// tailMean averages the most recent n values, clipped to available length.
func tailMean(values []float64, n int) float64 {
	if n <= 0 || n > len(values) {
		n = len(values)
	}
	return mean(values[len(values)-n:])
}

func sampleStdDev(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
