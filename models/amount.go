package models

import (
	// Go Internal Packages
	"strconv"
	"strings"

	// Local Packages
	errors "quick-sale/errors"
)

// ParseAmount turns a decimal amount string into its float value and its
// exact integer-cents form. At most two decimal places are accepted, so
// the cents value never needs rounding: "99.99" -> 9999, "10" -> 1000.
func ParseAmount(s string) (float64, int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, errors.EmptyParamErr("amount")
	}

	// ParseInt accepts a leading sign, and "-0" would slip past a
	// negativity check on the parsed units.
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, 0, errors.E(errors.Invalid, "amount is not a valid decimal number")
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 2 {
		return 0, 0, errors.E(errors.Invalid, "amount has more than two decimal places")
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || units < 0 {
		return 0, 0, errors.E(errors.Invalid, "amount is not a valid decimal number")
	}

	var cents int64
	if fracPart != "" {
		c, err := strconv.ParseUint(fracPart, 10, 64)
		if err != nil {
			return 0, 0, errors.E(errors.Invalid, "amount is not a valid decimal number")
		}
		cents = int64(c)
		if len(fracPart) == 1 {
			cents *= 10
		}
	}

	total := units*100 + cents
	return float64(total) / 100, total, nil
}

// VATPortion returns the VAT share of a VAT-inclusive amount at the
// given rate, or 0 when VAT is disabled.
func VATPortion(amount float64, rate float64, enabled bool) float64 {
	if !enabled || rate <= 0 {
		return 0
	}
	return (amount * rate) / (100 + rate)
}
