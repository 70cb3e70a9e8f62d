package billing

import "time"

// NextBillingDate returns the first billing date after from: the same day
// of the next month, clamped to that month's last day so a Jan 31 signup
// bills on Feb 28 (or 29) rather than rolling into March.
func NextBillingDate(from time.Time) time.Time {
	y, m, d := from.Date()

	firstOfNext := time.Date(y, m+1, 1, 0, 0, 0, 0, from.Location())
	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}

	return time.Date(firstOfNext.Year(), firstOfNext.Month(), d, 0, 0, 0, 0, from.Location())
}
