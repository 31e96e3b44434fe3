package entity

import (
	"testing"

	errs "github.com/shoppro/storefront/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVND(t *testing.T) {
	testCases := []struct {
		amount   int64
		expected string
	}{
		{0, "0 ₫"},
		{1, "1 ₫"},
		{999, "999 ₫"},
		{1000, "1.000 ₫"},
		{50000, "50.000 ₫"},
		{100000, "100.000 ₫"},
		{1250000, "1.250.000 ₫"},
		{300000000, "300.000.000 ₫"},
		{-50000, "-50.000 ₫"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatVND(tc.amount))
		})
	}
}

func TestParseVND(t *testing.T) {
	t.Run("Round trip for non-negative amounts", func(t *testing.T) {
		amounts := []int64{0, 1, 9, 999, 1000, 10000, 50000, 100000, 1250000, 999999999999}
		for _, amount := range amounts {
			parsed, err := ParseVND(FormatVND(amount))
			require.NoError(t, err)
			assert.Equal(t, amount, parsed)
		}
	})

	t.Run("Plain digit strings", func(t *testing.T) {
		parsed, err := ParseVND("150000")
		require.NoError(t, err)
		assert.Equal(t, int64(150000), parsed)
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		testCases := []string{"", "   ", "abc", "₫", "12a34"}
		for _, input := range testCases {
			_, err := ParseVND(input)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount, "input %q", input)
		}
	})
}

func TestValidatePositiveAmount(t *testing.T) {
	assert.NoError(t, ValidatePositiveAmount(1))
	assert.NoError(t, ValidatePositiveAmount(100000))
	assert.ErrorIs(t, ValidatePositiveAmount(0), errs.ErrInvalidAmount)
	assert.ErrorIs(t, ValidatePositiveAmount(-1), errs.ErrInvalidAmount)
}
