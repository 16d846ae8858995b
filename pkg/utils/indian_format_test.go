package utils

import "testing"

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{85000, "85,000"},
		{100000, "1,00,000"},
		{5430546, "54,30,546"},
		{18572860, "1,85,72,860"},
		{1234567890, "1,23,45,67,890"},
		{-5000, "-5,000"},
		{1849.6, "1,850"}, // rounds to nearest rupee
	}

	for _, tt := range tests {
		if got := FormatINR(tt.amount); got != tt.want {
			t.Errorf("FormatINR(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatINRCompact(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{18572860, "1.86 Cr"},
		{10000000, "1.00 Cr"},
		{5430546, "54.31 L"},
		{100000, "1.00 L"},
		{45000, "45,000"},
		{0, "0"},
		{-20000000, "-2.00 Cr"},
	}

	for _, tt := range tests {
		if got := FormatINRCompact(tt.amount); got != tt.want {
			t.Errorf("FormatINRCompact(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
