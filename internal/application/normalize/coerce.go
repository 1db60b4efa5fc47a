package normalize

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyReplacer strips the symbols and separators seen in the orders
// snapshot's amount column.
var currencyReplacer = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "")

// parseAmount coerces a currency string to a decimal. Empty input is the
// documented zero default for non-key metrics.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(currencyReplacer.Replace(s))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseCount coerces an integer count. Empty input defaults to zero; a
// decimal representation of a whole number ("12.0") is accepted because the
// upstream exporter emits them.
func parseCount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

// parseFloat coerces a float metric, defaulting empty input to zero.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseProductID coerces a product id, which is a key and has no default.
func parseProductID(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
