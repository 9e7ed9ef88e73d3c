package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Yashhpatill/trading-bot/internal/config"
)

// quantityRule builds the predicate and message for a quantity prompt.
// With no filter on record the rule is just positivity; a known symbol
// additionally enforces its minimum quantity and step precision.
func quantityRule(f config.SymbolFilter, known bool) (func(float64) bool, string) {
	if !known {
		return func(q float64) bool { return q > 0 },
			"Quantity must be a positive number."
	}
	msg := fmt.Sprintf("Quantity must be at least %s with at most %d decimal places.",
		strconv.FormatFloat(f.MinQuantity, 'f', -1, 64), f.QuantityPrecision)
	return func(q float64) bool {
		return q >= f.MinQuantity && q > 0 && decimalPlaces(q) <= f.QuantityPrecision
	}, msg
}

// priceRule builds the predicate and message for a price prompt.
func priceRule(f config.SymbolFilter, known bool, label string) (func(float64) bool, string) {
	if !known {
		return func(p float64) bool { return p > 0 },
			fmt.Sprintf("%s must be a positive number.", label)
	}
	msg := fmt.Sprintf("%s must be positive with at most %d decimal places.", label, f.PricePrecision)
	return func(p float64) bool {
		return p > 0 && decimalPlaces(p) <= f.PricePrecision
	}, msg
}

// decimalPlaces reports how many fractional digits v carries in its shortest
// exact decimal form.
func decimalPlaces(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
