package utils_test

import (
	// Go Internal Packages
	"testing"

	// Local Packages
	utils "quick-sale/utils"
)

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+27 82 000 0000", "27820000000"},
		{"0820000000", "0820000000"},
		{"(082) 000-0000", "0820000000"},
		{"no digits", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := utils.DigitsOnly(tt.input); got != tt.want {
			t.Errorf("DigitsOnly(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestURLEncode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hi", "Hi"},
		{"Hi there", "Hi%20there"},
		{"a&b=c", "a%26b%3Dc"},
		{"line\nbreak", "line%0Abreak"},
	}

	for _, tt := range tests {
		if got := utils.URLEncode(tt.input); got != tt.want {
			t.Errorf("URLEncode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := utils.FormatAmount("R", 150); got != "R 150.00" {
		t.Errorf("FormatAmount = %q, want %q", got, "R 150.00")
	}
	if got := utils.FormatAmount("R", 99.9); got != "R 99.90" {
		t.Errorf("FormatAmount = %q, want %q", got, "R 99.90")
	}
}
