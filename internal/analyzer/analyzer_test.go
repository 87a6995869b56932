package analyzer

import (
	"errors"
	"testing"
	"time"

	"PriceTracker/internal/model"
)

func seriesOf(values ...float64) model.PriceSeries {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := make(model.PriceSeries, len(values))
	for i, v := range values {
		s[i] = model.PricePoint{
			Value:      v,
			Currency:   "TRY",
			ObservedAt: start.AddDate(0, 0, i),
		}
	}
	return s
}

var testProduct = model.Product{
	ProductID: "32780",
	Name:      "Harry Potter ve Felsefe Tasi",
	URL:       "https://www.kitapyurdu.com/kitap/harry-potter-ve-felsefe-tasi/32780.html",
	Site:      "kitapyurdu",
}

func TestAnalyze_EmptySeries(t *testing.T) {
	a := New(DefaultConfig())
	_, err := a.Analyze(nil, testProduct)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("empty series: got %v, want ErrInsufficientData", err)
	}
}

func TestAnalyze_SinglePoint(t *testing.T) {
	a := New(DefaultConfig())
	res, err := a.Analyze(seriesOf(149.90), testProduct)
	if err != nil {
		t.Fatalf("single point: unexpected error %v", err)
	}
	if res.CurrentPrice != 149.90 || res.PreviousPrice != 149.90 {
		t.Errorf("current/previous = %v/%v, want both 149.90", res.CurrentPrice, res.PreviousPrice)
	}
	if res.PriceChangePercent != 0 || res.PriceChangeAmount != 0 {
		t.Errorf("change = %v%% / %v, want zero", res.PriceChangePercent, res.PriceChangeAmount)
	}
	if res.TrendDirection != model.TrendStable {
		t.Errorf("trend = %s, want STABLE", res.TrendDirection)
	}
	if res.AlertLevel != model.AlertFairPrice {
		t.Errorf("alert = %s, want FAIR_PRICE", res.AlertLevel)
	}
	if res.DataPointsCount != 1 {
		t.Errorf("data points = %d, want 1", res.DataPointsCount)
	}
}

func TestAnalyze_Statistics(t *testing.T) {
	a := New(DefaultConfig())
	res, err := a.Analyze(seriesOf(100, 120, 80, 110, 90), testProduct)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CurrentPrice != 90 || res.PreviousPrice != 110 {
		t.Errorf("current/previous = %v/%v, want 90/110", res.CurrentPrice, res.PreviousPrice)
	}
	if res.MinimumPrice != 80 || res.MaximumPrice != 120 {
		t.Errorf("min/max = %v/%v, want 80/120", res.MinimumPrice, res.MaximumPrice)
	}
	if res.AveragePrice != 100 {
		t.Errorf("average = %v, want 100", res.AveragePrice)
	}
	wantChange := (90.0 - 110.0) / 110.0 * 100
	if res.PriceChangePercent != wantChange {
		t.Errorf("change percent = %v, want %v", res.PriceChangePercent, wantChange)
	}
	if res.Currency != "TRY" {
		t.Errorf("currency = %q, want TRY", res.Currency)
	}
}

func TestAnalyze_VolatilityTakesPrecedence(t *testing.T) {
	a := New(DefaultConfig())
	// Noisy but drifting upward: the volatility verdict must win over the
	// directional strategies.
	res, err := a.Analyze(seriesOf(100, 130, 85, 125, 95, 140, 90, 150), testProduct)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TrendDirection != model.TrendVolatile {
		t.Errorf("trend = %s, want VOLATILE", res.TrendDirection)
	}
}

func TestAnalyze_MovingAverageAuthoritative(t *testing.T) {
	a := New(DefaultConfig())
	res, err := a.Analyze(seriesOf(100, 101, 102, 103, 104, 105, 106, 107, 108, 109), testProduct)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TrendDirection != model.TrendUp {
		t.Errorf("trend = %s, want UP", res.TrendDirection)
	}
}

func TestAnalyze_PercentageChangeFallback(t *testing.T) {
	a := New(DefaultConfig())
	// An early drop followed by a flat tail: both moving-average windows sit
	// entirely in the flat region, but first-to-last is a clear -8% signal.
	res, err := a.Analyze(seriesOf(100, 92, 92, 92, 92, 92, 92, 92, 92, 92), testProduct)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TrendDirection != model.TrendDown {
		t.Errorf("trend = %s, want DOWN via percentage-change fallback", res.TrendDirection)
	}
}

func TestAnalyze_ConfidenceMonotonicInDataCount(t *testing.T) {
	a := New(DefaultConfig())
	few, err := a.Analyze(seriesOf(100, 100, 100), testProduct)
	if err != nil {
		t.Fatal(err)
	}
	many, err := a.Analyze(seriesOf(100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100), testProduct)
	if err != nil {
		t.Fatal(err)
	}
	if many.ConfidenceScore <= few.ConfidenceScore {
		t.Errorf("confidence did not grow with data: %v points -> %.1f, %v points -> %.1f",
			few.DataPointsCount, few.ConfidenceScore, many.DataPointsCount, many.ConfidenceScore)
	}
	if few.ConfidenceScore < 0 || few.ConfidenceScore > 100 {
		t.Errorf("confidence %.1f out of [0,100]", few.ConfidenceScore)
	}
}

func TestAnalyze_RecommendationMatchesAlert(t *testing.T) {
	a := New(DefaultConfig())
	res, err := a.Analyze(seriesOf(100, 100, 100, 100, 100, 100, 100, 75), testProduct)
	if err != nil {
		t.Fatal(err)
	}
	if res.AlertLevel != model.AlertCriticalDrop {
		t.Fatalf("alert = %s, want CRITICAL_DROP", res.AlertLevel)
	}
	if res.Recommendation != "Buy now - price dropped sharply" {
		t.Errorf("recommendation = %q", res.Recommendation)
	}
}
