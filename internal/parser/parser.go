package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Scraped price text mixes two conventions: Turkish pages write 1.000,99
// while others write 1,000.99. The parser resolves the ambiguity by treating
// whichever separator occurs later in the token as the decimal separator.
// A lone separator is always read as the decimal point, so a thousands-only
// integer like "12.000" parses as 12.0; known heuristic limitation.

var numberRun = regexp.MustCompile(`[0-9.,]+`)

// Parser extracts a numeric value from free-form price text.
type Parser struct {
	currencyMarkers []string
}

// NewParser returns a parser that strips the common currency markers seen
// on tracked sites.
func NewParser() *Parser {
	return &Parser{
		// Multi-rune codes first so "TRY" is removed before "TL" could
		// split it.
		currencyMarkers: []string{"TRY", "USD", "EUR", "GBP", "TL", "₺", "$", "€", "£"},
	}
}

// Parse extracts the first numeric token from text and normalizes it to a
// float. The second return value is false when no usable number is found;
// malformed price text is an expected condition, not an error.
func (p *Parser) Parse(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	for _, marker := range p.currencyMarkers {
		text = strings.ReplaceAll(text, marker, "")
	}

	token := firstNumericRun(text)
	if token == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(normalizeSeparators(token), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// firstNumericRun returns the first maximal run of digits and separators
// that contains at least one digit, trimmed of leading/trailing separators.
func firstNumericRun(text string) string {
	for _, run := range numberRun.FindAllString(text, -1) {
		run = strings.Trim(run, ".,")
		if strings.ContainsAny(run, "0123456789") {
			return run
		}
	}
	return ""
}

// normalizeSeparators rewrites a raw numeric token into strconv form.
func normalizeSeparators(token string) string {
	lastDot := strings.LastIndex(token, ".")
	lastComma := strings.LastIndex(token, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		// Both present: the later one is the decimal separator, the other
		// is a thousands separator and is deleted.
		if lastComma > lastDot {
			token = strings.ReplaceAll(token, ".", "")
			token = strings.Replace(token, ",", ".", 1)
		} else {
			token = strings.ReplaceAll(token, ",", "")
		}
	case lastComma >= 0:
		// Only commas: the first is the decimal separator.
		token = strings.Replace(token, ",", ".", 1)
		token = strings.ReplaceAll(token, ",", "")
	}

	// Collapse any surplus dots, keeping the first as the decimal point.
	if parts := strings.Split(token, "."); len(parts) > 2 {
		token = parts[0] + "." + strings.Join(parts[1:], "")
	}
	return token
}

// ApplyDiscount applies a percentage discount to a parsed price. A zero
// discount is the identity. Negative discounts are applied arithmetically
// (producing an increase); callers are expected not to pass them.
func ApplyDiscount(value, discountPercent float64) float64 {
	return value * (1 - discountPercent/100)
}
