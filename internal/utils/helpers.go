package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var dotGrouped = regexp.MustCompile(`^\d{1,3}(\.\d{3})+([kK])?$`)

// ParseAmount extracts a numeric value from a spreadsheet cell.
// Currency symbols, thousands separators, a trailing % and a K suffix
// ("85K" -> 85000) are accepted, as are dot-grouped rupiah amounts
// ("Rp50.000" -> 50000). An empty cell yields NaN.
func ParseAmount(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	s = strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', '¥', ',', ' ', '\u00a0', '%':
			return -1
		}
		return r
	}, s)
	if strings.HasPrefix(s, "Rp") {
		s = strings.TrimPrefix(s, "Rp")
		// rupiah amounts group thousands with dots: Rp1.250.000
		if dotGrouped.MatchString(s) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	multiplier := 1.0
	if strings.HasSuffix(strings.ToUpper(s), "K") {
		multiplier = 1000
		s = s[:len(s)-1]
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", cell)
	}
	if negative {
		val = -val
	}
	return val * multiplier, nil
}

// FormatCurrency formats an amount rounded to whole units with comma
// separators, prefixed by symbol
func FormatCurrency(symbol string, amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "-"
	}
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return fmt.Sprintf("-%s%s", symbol, humanize.Comma(-rounded))
	}
	return fmt.Sprintf("%s%s", symbol, humanize.Comma(rounded))
}

// FormatPercent formats a percentage with one decimal place
func FormatPercent(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// NormalizeHeader lowercases a header and collapses spaces so that
// "Mid Point Differential %" and "midpoint differential %" compare equal
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.Join(strings.Fields(strings.ToLower(h)), "")
}
