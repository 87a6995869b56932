package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"PriceTracker/internal/model"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// WriteJSON writes the flat mapping of an analysis to
// <dir>/analysis_<product_id>.json, the hand-off file consumed by external
// presentation tooling. The file is rewritten on every run.
func WriteJSON(dir string, a *model.PriceAnalysis) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	id := a.ProductID
	if id == "" {
		id = a.Site
	}
	id = unsafeNameChars.ReplaceAllString(id, "_")
	path := filepath.Join(dir, "analysis_"+id+".json")

	data, err := json.MarshalIndent(a.ToMap(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal analysis: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
