package entity

import (
	"testing"
	"time"

	timeadapter "github.com/shoppro/storefront/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(t *testing.T, price int64, start, end time.Time) *Product {
	t.Helper()
	tp := timeadapter.NewFixedTimeProvider(start)
	p, err := NewProduct("Netflix Premium", price, start, end, Credentials{}, tp)
	require.NoError(t, err)
	return p
}

func TestProrate(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Twenty days into a thirty day window", func(t *testing.T) {
		p := testProduct(t, 300000, base, base.AddDate(0, 0, 30))

		quote := Prorate(p, base.AddDate(0, 0, 20))

		assert.Equal(t, 10, quote.DaysRemaining)
		assert.Equal(t, 30, quote.TotalDays)
		assert.Equal(t, int64(100000), quote.Price)
	})

	t.Run("Purchase on the first day costs full price", func(t *testing.T) {
		p := testProduct(t, 300000, base, base.AddDate(0, 0, 30))

		quote := Prorate(p, base)

		assert.Equal(t, 30, quote.DaysRemaining)
		assert.Equal(t, int64(300000), quote.Price)
	})

	t.Run("Partial day rounds up", func(t *testing.T) {
		p := testProduct(t, 300000, base, base.AddDate(0, 0, 30))

		// 9 days and 12 hours remaining counts as 10 days
		quote := Prorate(p, base.AddDate(0, 0, 20).Add(12*time.Hour))

		assert.Equal(t, 10, quote.DaysRemaining)
		assert.Equal(t, int64(100000), quote.Price)
	})

	t.Run("Price stays within bounds across the window", func(t *testing.T) {
		p := testProduct(t, 299999, base, base.AddDate(0, 0, 30))

		for day := 0; day <= 29; day++ {
			quote := Prorate(p, base.AddDate(0, 0, day))
			assert.GreaterOrEqual(t, quote.Price, int64(1), "day %d", day)
			assert.LessOrEqual(t, quote.Price, p.OriginalPrice, "day %d", day)
		}
	})

	t.Run("Before the window caps at full price", func(t *testing.T) {
		p := testProduct(t, 300000, base, base.AddDate(0, 0, 30))

		quote := Prorate(p, base.AddDate(0, 0, -5))

		assert.Equal(t, 30, quote.DaysRemaining)
		assert.Equal(t, int64(300000), quote.Price)
	})

	t.Run("Expired window is priced as one day", func(t *testing.T) {
		p := testProduct(t, 300000, base, base.AddDate(0, 0, 30))

		quote := Prorate(p, base.AddDate(0, 0, 45))

		assert.Equal(t, 1, quote.DaysRemaining)
		assert.Equal(t, int64(10000), quote.Price)
	})

	t.Run("Tiny price never quotes below one", func(t *testing.T) {
		p := testProduct(t, 5, base, base.AddDate(0, 0, 30))

		quote := Prorate(p, base.AddDate(0, 0, 29))

		assert.Equal(t, int64(1), quote.Price)
	})
}
