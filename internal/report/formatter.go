package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"PriceTracker/internal/model"
)

// FormatAnalysis renders one analysis as a plain-text report.
func FormatAnalysis(a *model.PriceAnalysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Price report | %s\n\n", a.AnalysisDate.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("%s (%s)\n", a.ProductName, a.Site))
	b.WriteString(a.URL + "\n\n")

	b.WriteString(fmt.Sprintf("Current price: %s %s", humanize.CommafWithDigits(a.CurrentPrice, 2), a.Currency))
	if a.PriceChangeAmount != 0 {
		b.WriteString(fmt.Sprintf(" (%+.1f%% vs previous %s)",
			a.PriceChangePercent, humanize.CommafWithDigits(a.PreviousPrice, 2)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Average: %s | Min: %s | Max: %s\n",
		humanize.CommafWithDigits(a.AveragePrice, 2),
		humanize.CommafWithDigits(a.MinimumPrice, 2),
		humanize.CommafWithDigits(a.MaximumPrice, 2)))
	b.WriteString(fmt.Sprintf("Data points: %d (analyzed %s)\n\n",
		a.DataPointsCount, humanize.Time(a.AnalysisDate)))

	b.WriteString(fmt.Sprintf("Trend: %s | Alert: %s | Confidence: %.0f/100\n",
		a.TrendDirection, a.AlertLevel, a.ConfidenceScore))
	b.WriteString("Recommendation: " + a.Recommendation + "\n")

	return b.String()
}

// FormatSummaryTable renders a column-aligned overview of many analyses.
func FormatSummaryTable(analyses []model.PriceAnalysis) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "PRODUCT\tSITE\tPRICE\tCHANGE\tTREND\tALERT\tCONF")
	for _, a := range analyses {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%+.1f%%\t%s\t%s\t%.0f\n",
			truncate(a.ProductName, 40), a.Site,
			humanize.CommafWithDigits(a.CurrentPrice, 2), a.Currency,
			a.PriceChangePercent, a.TrendDirection, a.AlertLevel, a.ConfidenceScore)
	}
	w.Flush()
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
