package utils

import (
	// Go Internal Packages
	"fmt"
	"net/url"
	"strings"
)

// DigitsOnly strips every non-digit rune from a contact string, so that
// "+27 82 000 0000" becomes "27820000000".
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// URLEncode percent-encodes a string for use inside a deep-link query.
// Spaces become %20 rather than '+' since mobile link handlers do not
// decode the form-encoding variant.
func URLEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// FormatAmount renders a currency-prefixed amount with two decimals.
func FormatAmount(currency string, amount float64) string {
	return fmt.Sprintf("%s %.2f", currency, amount)
}
