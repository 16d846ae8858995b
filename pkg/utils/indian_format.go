// Package utils provides shared formatting and time helpers for bureaulens.
package utils

import (
	"fmt"
	"math"
)

// FormatINR formats an amount with Indian comma placement and no decimals,
// e.g. 18572860 → "1,85,72,860". The last three digits are grouped, then
// every two digits thereafter. Report text prefixes "INR " itself.
func FormatINR(amount float64) string {
	negative := amount < 0
	n := int64(math.Round(math.Abs(amount)))

	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		last3 := s[len(s)-3:]
		rest := s[:len(s)-3]
		var parts []string
		for len(rest) > 2 {
			parts = append([]string{rest[len(rest)-2:]}, parts...)
			rest = rest[:len(rest)-2]
		}
		if rest != "" {
			parts = append([]string{rest}, parts...)
		}
		s = ""
		for _, p := range parts {
			s += p + ","
		}
		s += last3
	}

	if negative {
		return "-" + s
	}
	return s
}

// FormatINRCompact formats an amount as a compact human-readable string
// using lakh/crore units, e.g. 18572860 → "1.86 Cr", 5430546 → "54.31 L".
// Amounts below one lakh fall back to plain Indian grouping.
func FormatINRCompact(amount float64) string {
	abs := math.Abs(amount)

	var s string
	switch {
	case abs >= 1e7:
		s = fmt.Sprintf("%.2f Cr", abs/1e7)
	case abs >= 1e5:
		s = fmt.Sprintf("%.2f L", abs/1e5)
	default:
		s = FormatINR(abs)
	}

	if amount < 0 {
		return "-" + s
	}
	return s
}
