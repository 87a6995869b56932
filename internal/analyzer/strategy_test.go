package analyzer

import (
	"testing"

	"PriceTracker/internal/model"
)

func TestMovingAverageStrategy_Trends(t *testing.T) {
	s := NewMovingAverageStrategy(3, 7)

	up := []float64{100, 102, 104, 106, 108, 110, 112, 114, 116, 118}
	dir, conf := s.Analyze(up)
	if dir != model.TrendUp {
		t.Errorf("increasing series: got %s, want UP", dir)
	}
	if conf <= 0.5 {
		t.Errorf("increasing series: confidence %.3f, want > 0.5", conf)
	}

	down := []float64{120, 118, 116, 114, 112, 110, 108, 106, 104, 102}
	dir, _ = s.Analyze(down)
	if dir != model.TrendDown {
		t.Errorf("decreasing series: got %s, want DOWN", dir)
	}

	flat := []float64{100, 100, 100, 100, 100, 100, 100, 100}
	dir, conf = s.Analyze(flat)
	if dir != model.TrendStable {
		t.Errorf("flat series: got %s, want STABLE", dir)
	}
	if conf != 0 {
		t.Errorf("flat series: confidence %.3f, want 0", conf)
	}
}

func TestMovingAverageStrategy_ShortInput(t *testing.T) {
	s := NewMovingAverageStrategy(3, 7)
	for _, prices := range [][]float64{nil, {}, {100}} {
		dir, conf := s.Analyze(prices)
		if dir != model.TrendStable || conf != 0 {
			t.Errorf("short input %v: got (%s, %.2f), want (STABLE, 0)", prices, dir, conf)
		}
	}
	// Windows clip to the available length instead of failing.
	dir, _ := s.Analyze([]float64{100, 100, 100, 130})
	if dir != model.TrendUp {
		t.Errorf("clipped window on rising tail: got %s, want UP", dir)
	}
}

func TestPercentageChangeStrategy_Thresholds(t *testing.T) {
	s := NewPercentageChangeStrategy(5.0)

	tests := []struct {
		prices []float64
		want   model.TrendDirection
	}{
		{[]float64{100, 100, 100, 100, 100, 110}, model.TrendUp},
		{[]float64{100, 100, 100, 100, 100, 90}, model.TrendDown},
		{[]float64{100, 100, 100, 100, 100, 102}, model.TrendStable},
		{[]float64{100, 105}, model.TrendStable}, // exactly at the threshold
	}
	for _, tt := range tests {
		dir, _ := s.Analyze(tt.prices)
		if dir != tt.want {
			t.Errorf("Analyze(%v) = %s, want %s", tt.prices, dir, tt.want)
		}
	}

	// Confidence scales with |change| / (2 * threshold), clamped to 1.
	_, conf := s.Analyze([]float64{100, 110})
	if conf != 1.0 {
		t.Errorf("+10%% at threshold 5: confidence %.3f, want 1.0", conf)
	}
	_, conf = s.Analyze([]float64{100, 105})
	if conf != 0.5 {
		t.Errorf("+5%% at threshold 5: confidence %.3f, want 0.5", conf)
	}
}

func TestVolatilityStrategy_Detection(t *testing.T) {
	s := NewVolatilityStrategy(0.05)

	volatile := []float64{100, 110, 90, 105, 95, 115, 85}
	dir, conf := s.Analyze(volatile)
	if dir != model.TrendVolatile {
		t.Errorf("noisy series: got %s, want VOLATILE", dir)
	}
	if conf != 1.0 {
		t.Errorf("noisy series: confidence %.3f, want saturated 1.0", conf)
	}

	calm := []float64{100, 101, 99, 100, 101, 99, 100}
	dir, _ = s.Analyze(calm)
	if dir != model.TrendStable {
		t.Errorf("calm series: got %s, want STABLE", dir)
	}

	// Never reports a direction, only noise.
	rising := []float64{100, 100, 100, 100, 100, 100}
	dir, conf = s.Analyze(rising)
	if dir != model.TrendStable || conf != 0 {
		t.Errorf("constant series: got (%s, %.2f), want (STABLE, 0)", dir, conf)
	}
}

func TestVolatilityStrategy_ShortInput(t *testing.T) {
	s := NewVolatilityStrategy(0.05)
	dir, conf := s.Analyze([]float64{100})
	if dir != model.TrendStable || conf != 0 {
		t.Errorf("single point: got (%s, %.2f), want (STABLE, 0)", dir, conf)
	}
}
