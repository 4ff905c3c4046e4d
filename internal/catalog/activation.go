package catalog

import (
	"math"
	"time"
)

// EvaluateActivation applies the activation policy to one promotion.
//
// A promotion is active unless:
//   - it has a calendar end date, is not stock-bound, and that date is
//     strictly before today at midnight (ending "today" is still active);
//   - it is stock-bound and the combined stock is gone.
//
// daysRemaining is returned only for dated, non-stock-bound promotions
// that have not expired; 0 means "ends today". The policy is pure and is
// re-evaluated from scratch on every catalog load.
func EvaluateActivation(endDate *time.Time, untilStockOut bool, totalStock int, now time.Time) (bool, *int) {
	if untilStockOut {
		return totalStock > 0, nil
	}

	if endDate == nil {
		return true, nil
	}

	days := DaysUntil(*endDate, now)
	if days < 0 {
		return false, nil
	}
	return true, &days
}

// DaysUntil returns the whole calendar days between now's date and t's
// date. Both sides are truncated to midnight first, so the midday anchor
// on end dates never leaks into the count.
func DaysUntil(t, now time.Time) int {
	end := midnight(t)
	today := midnight(now)
	// rounding absorbs DST-shortened or -lengthened days
	return int(math.Round(end.Sub(today).Hours() / 24))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
