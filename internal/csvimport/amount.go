package csvimport

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseLooseAmount parses a bank-statement amount that may use either
// "40.000,00" (comma decimal) or "40,000.00" (dot decimal) conventions.
//
// All characters other than digits, '.', ',' and '-' are stripped first.
// When both separators appear, whichever occurs further right is the decimal
// separator and the other is a thousands separator. When only one separator
// type appears it is taken as the decimal separator, except that a separator
// occurring more than once can only be a thousands separator.
func ParseLooseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == ',' || r == '-' {
			return r
		}
		return -1
	}, raw)

	if cleaned == "" || cleaned == "-" {
		return decimal.Decimal{}, fmt.Errorf("no numeric content in %q", raw)
	}

	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// Comma is the decimal separator, dots group thousands.
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(cleaned, ",") > 1 {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	case lastDot >= 0:
		if strings.Count(cleaned, ".") > 1 {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", raw, err)
	}
	return amount, nil
}
