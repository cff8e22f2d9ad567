package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdown(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"DayAndHours", 26 * time.Hour, "1 day 2 hours"},
		{"MinutesOnly", 45 * time.Minute, "45 minutes"},
		{"SingularUnits", 25*time.Hour + time.Minute, "1 day 1 hour 1 minute"},
		{"PluralUnits", 3*day + 5*time.Hour + 10*time.Minute, "3 days 5 hours 10 minutes"},
		{"MinutesRoundUp", time.Minute + 30*time.Second, "2 minutes"},
		{"SecondsRoundUp", 10 * time.Second, "1 minute"},
		{"RoundUpCompletesHour", 59*time.Minute + 30*time.Second, "1 hour"},
		{"RoundUpCompletesDay", 23*time.Hour + 59*time.Minute + 1*time.Second, "1 day"},
		{"HoursRoundDown", 2*time.Hour + 15*time.Minute, "2 hours 15 minutes"},
		{"DaysAndMinutes", 2*day + 5*time.Minute, "2 days 5 minutes"},
		{"Zero", 0, "0 minutes"},
		{"Negative", -time.Hour, "0 minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Countdown(tt.d))
		})
	}
}

func TestDateRange(t *testing.T) {
	t.Run("SameMonth", func(t *testing.T) {
		got := DateRange(time.Date(2024, 7, 12, 11, 30, 0, 0, time.UTC), time.Date(2024, 7, 14, 14, 0, 0, 0, time.UTC))
		assert.Equal(t, "12-14 July", got)
	})

	t.Run("AcrossMonths", func(t *testing.T) {
		got := DateRange(time.Date(2024, 6, 28, 11, 30, 0, 0, time.UTC), time.Date(2024, 7, 2, 14, 0, 0, 0, time.UTC))
		assert.Equal(t, "28 June-2 July", got)
	})

	t.Run("AcrossYears", func(t *testing.T) {
		got := DateRange(time.Date(2024, 12, 30, 11, 30, 0, 0, time.UTC), time.Date(2025, 12, 1, 14, 0, 0, 0, time.UTC))
		assert.Equal(t, "30 December-1 December", got)
	})
}
