package render

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const day = 24 * time.Hour

// Countdown expresses d as days, hours and minutes, e.g. "1 day 2 hours". Hours are rounded down
// and minutes up, components equal to zero are left out.
func Countdown(d time.Duration) string {
	if d <= 0 {
		return "0 minutes"
	}

	days := int(d / day)
	d -= time.Duration(days) * day
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(math.Ceil(d.Minutes()))
	// rounding up the minutes can complete an hour
	if minutes == 60 {
		minutes = 0
		hours++
	}
	if hours == 24 {
		hours = 0
		days++
	}

	parts := make([]string, 0, 3)
	for _, c := range []struct {
		unit   string
		amount int
	}{{"day", days}, {"hour", hours}, {"minute", minutes}} {
		if c.amount > 0 {
			parts = append(parts, plural(c.amount, c.unit))
		}
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}

// DateRange formats the days spanned by first and last, naming the month once when both fall in
// the same month: "12-14 July" or "28 June-2 July".
func DateRange(first, last time.Time) string {
	if first.Year() == last.Year() && first.Month() == last.Month() {
		return fmt.Sprintf("%d-%s", first.Day(), last.Format("2 January"))
	}
	return first.Format("2 January") + "-" + last.Format("2 January")
}
