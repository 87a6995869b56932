package report

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"PriceTracker/internal/model"
)

func sampleAnalysis() *model.PriceAnalysis {
	return &model.PriceAnalysis{
		ProductName:        "Harry Potter ve Felsefe Tasi",
		ProductID:          "32780",
		URL:                "https://www.kitapyurdu.com/kitap/x/32780.html",
		Site:               "kitapyurdu",
		CurrentPrice:       1299.90,
		PreviousPrice:      1499.90,
		AveragePrice:       1400.00,
		MinimumPrice:       1250.00,
		MaximumPrice:       1550.00,
		Currency:           "TRY",
		PriceChangePercent: -13.33,
		PriceChangeAmount:  -200.00,
		TrendDirection:     model.TrendDown,
		AlertLevel:         model.AlertGoodDeal,
		Recommendation:     "Good time to buy",
		ConfidenceScore:    72,
		AnalysisDate:       time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		DataPointsCount:    14,
	}
}

func TestFormatAnalysis(t *testing.T) {
	out := FormatAnalysis(sampleAnalysis())
	for _, want := range []string{
		"Harry Potter ve Felsefe Tasi",
		"1,299.9 TRY",
		"GOOD_DEAL",
		"DOWN",
		"Good time to buy",
		"-13.3%",
		"Data points: 14 (analyzed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSummaryTable(t *testing.T) {
	out := FormatSummaryTable([]model.PriceAnalysis{*sampleAnalysis()})
	if !strings.Contains(out, "PRODUCT") || !strings.Contains(out, "kitapyurdu") {
		t.Errorf("unexpected table:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("table lines = %d, want header + 1 row", len(lines))
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	a := sampleAnalysis()

	path, err := WriteJSON(dir, a)
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.HasSuffix(path, "analysis_32780.json") {
		t.Errorf("path = %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}

	restored, err := model.AnalysisFromMap(decoded)
	if err != nil {
		t.Fatalf("AnalysisFromMap: %v", err)
	}
	if restored.CurrentPrice != a.CurrentPrice || restored.AlertLevel != a.AlertLevel {
		t.Errorf("export round trip mismatch: %+v", restored)
	}
}
