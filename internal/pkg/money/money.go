// Package money converts between the decimal strings used at the HTTP
// boundary and the integer minor units (cents) the ledger stores. All
// balance arithmetic stays integer-only; floats appear only here.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a decimal string in whole currency units ("12.50")
// into cents, multiplying by 100 and rounding half away from zero.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("amount %q is not a number", s)
	}
	return int64(math.Round(f * 100)), nil
}

// FormatCents renders cents as a decimal string in whole currency units.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
