package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/shoppro/storefront/internal/domain/error"
)

// Monetary amounts are whole Vietnamese đồng stored as int64.
// There is no fractional unit, so no cent conversion is needed.

// CurrencySuffix is appended to formatted amounts
const CurrencySuffix = " ₫"

// thousandsSeparator follows the vi-VN convention
const thousandsSeparator = "."

// FormatVND renders an amount as a display string, e.g. 1250000 -> "1.250.000 ₫"
func FormatVND(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	// Group digits in threes from the right
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(thousandsSeparator)
		}
		b.WriteString(digits[i : i+3])
	}

	formatted := b.String() + CurrencySuffix
	if negative {
		return "-" + formatted
	}
	return formatted
}

// ParseVND parses a display string produced by FormatVND back into an amount.
// It also accepts plain digit strings without separators or currency suffix.
func ParseVND(formatted string) (int64, error) {
	s := strings.TrimSpace(formatted)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	s = strings.TrimSuffix(s, CurrencySuffix)
	s = strings.TrimSuffix(s, "₫")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, thousandsSeparator, "")

	if s == "" {
		return 0, fmt.Errorf("%w: no digits", errs.ErrInvalidAmount)
	}

	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	if negative {
		value = -value
	}
	return value, nil
}

// ValidatePositiveAmount rejects zero and negative amounts
func ValidatePositiveAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", errs.ErrInvalidAmount, amount)
	}
	return nil
}
