package utils

import (
	"fmt"
	"math"
	"time"
)

// CeilDays returns the number of whole days between start and end, rounding
// any partial day up. A non-positive window yields 0.
func CeilDays(start, end time.Time) int32 {
	if !end.After(start) {
		return 0
	}
	return int32(math.Ceil(end.Sub(start).Hours() / 24))
}

// Round1 rounds v to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// MonthKey identifies one calendar month. Keying on year and month together
// keeps December of consecutive years in separate buckets.
type MonthKey struct {
	Year  int
	Month time.Month
}

// Key renders the bucket key as "2025-12".
func (k MonthKey) Key() string {
	return fmt.Sprintf("%d-%d", k.Year, int(k.Month))
}

// Label is the abbreviated month name used on charts.
func (k MonthKey) Label() string {
	return k.Month.String()[:3]
}

// LastMonths returns the trailing n calendar months ending at now's month,
// oldest first.
func LastMonths(now time.Time, n int) []MonthKey {
	keys := make([]MonthKey, 0, n)
	for i := n - 1; i >= 0; i-- {
		t := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		keys = append(keys, MonthKey{Year: t.Year(), Month: t.Month()})
	}
	return keys
}

// StartOfMonthsAgo returns midnight on the first day of the month n-1 months
// before now's month, i.e. the lower bound of a trailing-n-months window
// that includes the current month.
func StartOfMonthsAgo(now time.Time, n int) time.Time {
	t := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return t.AddDate(0, -(n - 1), 0)
}

// HumanizeSince formats the elapsed time since t the way the account page
// shows account age ("3 months ago"). Future or zero timestamps read as
// "Just joined".
func HumanizeSince(t time.Time, now time.Time) string {
	if t.IsZero() || !t.Before(now) {
		return "Just joined"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just joined"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 365*24*time.Hour:
		return plural(int(d.Hours()/(24*30)), "month")
	default:
		return plural(int(d.Hours()/(24*365)), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
