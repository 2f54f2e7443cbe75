package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCeilDays(t *testing.T) {
	start := time.Date(2025, 12, 15, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int32
	}{
		{"exact three days", start.AddDate(0, 0, 3), 3},
		{"partial day rounds up", start.Add(25 * time.Hour), 2},
		{"under a day is one", start.Add(9 * time.Hour), 1},
		{"same instant", start, 0},
		{"end before start", start.Add(-time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CeilDays(start, tt.end))
		})
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 4.5, Round1(4.5))
	assert.Equal(t, 3.7, Round1(3.666))
	assert.Equal(t, 3.5, Round1(3.45)) // half rounds up
	assert.Equal(t, 0.0, Round1(0))
}

func TestLastMonths(t *testing.T) {
	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

	keys := LastMonths(now, 3)
	assert.Len(t, keys, 3)
	assert.Equal(t, "Dec", keys[0].Label())
	assert.Equal(t, "Jan", keys[1].Label())
	assert.Equal(t, "Feb", keys[2].Label())

	// year boundary keeps keys distinct
	assert.Equal(t, "2025-12", keys[0].Key())
	assert.Equal(t, "2026-1", keys[1].Key())

	decThisYear := MonthKey{Year: 2026, Month: time.December}
	assert.NotEqual(t, keys[0].Key(), decThisYear.Key())
}

func TestStartOfMonthsAgo(t *testing.T) {
	now := time.Date(2026, time.January, 20, 9, 30, 0, 0, time.UTC)
	got := StartOfMonthsAgo(now, 3)
	assert.Equal(t, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestHumanizeSince(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just joined", HumanizeSince(time.Time{}, now))
	assert.Equal(t, "Just joined", HumanizeSince(now.Add(time.Hour), now))
	assert.Equal(t, "5 minutes ago", HumanizeSince(now.Add(-5*time.Minute), now))
	assert.Equal(t, "1 hour ago", HumanizeSince(now.Add(-90*time.Minute), now))
	assert.Equal(t, "3 days ago", HumanizeSince(now.AddDate(0, 0, -3), now))
	assert.Equal(t, "2 months ago", HumanizeSince(now.AddDate(0, -2, 0), now))
	assert.Equal(t, "1 year ago", HumanizeSince(now.AddDate(-1, -1, 0), now))
}
