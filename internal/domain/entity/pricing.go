package entity

import (
	"time"
)

const dayDuration = 24 * time.Hour

// Quote is the result of prorating a product price at a point in time
type Quote struct {
	Price         int64
	DaysRemaining int
	TotalDays     int
}

// ceilDays converts a duration to whole days, rounding up and
// clamping to a minimum of one day. Products whose window has already
// closed, or legacy rows with a reversed window, are priced as one day.
func ceilDays(d time.Duration) int {
	if d <= 0 {
		return 1
	}
	days := int((d + dayDuration - 1) / dayDuration)
	if days < 1 {
		return 1
	}
	return days
}

// Prorate computes the purchase price of a product at the given time:
// the original price scaled by remaining validity days over total
// validity days, floored, with a minimum charge of one đồng.
func Prorate(p *Product, now time.Time) Quote {
	daysRemaining := ceilDays(p.EndDate.Sub(now))
	totalDays := ceilDays(p.EndDate.Sub(p.StartDate))

	if daysRemaining > totalDays {
		daysRemaining = totalDays
	}

	price := p.OriginalPrice * int64(daysRemaining) / int64(totalDays)
	if price < 1 {
		price = 1
	}

	return Quote{
		Price:         price,
		DaysRemaining: daysRemaining,
		TotalDays:     totalDays,
	}
}
