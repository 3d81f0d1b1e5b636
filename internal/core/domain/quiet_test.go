package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 12, hour, minute, 0, 0, time.UTC)
}

func TestQuietWindow_NonWrapping_EveryHour(t *testing.T) {
	w := QuietWindow{StartHour: 9, EndHour: 17}

	for day := 0; day < 3; day++ {
		for hour := 0; hour < 24; hour++ {
			now := at(hour, 30).AddDate(0, 0, day)
			quiet, _ := w.Check(now)
			assert.Equal(t, hour >= 9 && hour < 17, quiet, "hour %d day %d", hour, day)
		}
	}
}

func TestQuietWindow_Wrapping_EveryHour(t *testing.T) {
	w := QuietWindow{StartHour: 22, EndHour: 6}

	for hour := 0; hour < 24; hour++ {
		quiet, _ := w.Check(at(hour, 0))
		assert.Equal(t, hour >= 22 || hour < 6, quiet, "hour %d", hour)
	}
}

func TestQuietWindow_Wrapping_Boundaries(t *testing.T) {
	w := QuietWindow{StartHour: 22, EndHour: 6}

	tests := []struct {
		name  string
		hour  int
		quiet bool
	}{
		{"start", 22, true},
		{"start-1", 21, false},
		{"end", 6, false},
		{"end-1", 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiet, _ := w.Check(at(tt.hour, 0))
			assert.Equal(t, tt.quiet, quiet)
		})
	}
}

func TestQuietWindow_Seconds(t *testing.T) {
	tests := []struct {
		name    string
		window  QuietWindow
		now     time.Time
		quiet   bool
		seconds int
	}{
		{
			name:    "inside non-wrapping window counts to end",
			window:  QuietWindow{StartHour: 1, EndHour: 6},
			now:     at(5, 30),
			quiet:   true,
			seconds: 30 * 60,
		},
		{
			name:    "after non-wrapping window counts to tomorrow's start",
			window:  QuietWindow{StartHour: 1, EndHour: 6},
			now:     at(7, 0),
			quiet:   false,
			seconds: 18 * 3600,
		},
		{
			name:    "before non-wrapping window counts to today's start",
			window:  QuietWindow{StartHour: 1, EndHour: 6},
			now:     at(0, 0),
			quiet:   false,
			seconds: 3600,
		},
		{
			name:    "evening part of wrapping window ends tomorrow",
			window:  QuietWindow{StartHour: 22, EndHour: 6},
			now:     at(23, 0),
			quiet:   true,
			seconds: 7 * 3600,
		},
		{
			name:    "morning part of wrapping window ends today",
			window:  QuietWindow{StartHour: 22, EndHour: 6},
			now:     at(2, 0),
			quiet:   true,
			seconds: 4 * 3600,
		},
		{
			name:    "outside wrapping window counts to start",
			window:  QuietWindow{StartHour: 22, EndHour: 6},
			now:     at(12, 0),
			quiet:   false,
			seconds: 10 * 3600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiet, seconds := tt.window.Check(tt.now)
			assert.Equal(t, tt.quiet, quiet)
			assert.Equal(t, tt.seconds, seconds)
		})
	}
}

func TestQuietWindow_SubSecondRemainderRoundsUp(t *testing.T) {
	w := QuietWindow{StartHour: 1, EndHour: 6}
	now := time.Date(2025, time.March, 12, 5, 59, 59, int(500*time.Millisecond), time.UTC)

	quiet, seconds := w.Check(now)
	assert.True(t, quiet)
	assert.Equal(t, 1, seconds)
}

func TestQuietWindow_EqualBoundsNeverQuiet(t *testing.T) {
	w := QuietWindow{StartHour: 3, EndHour: 3}
	assert.True(t, w.Empty())

	for hour := 0; hour < 24; hour++ {
		quiet, seconds := w.Check(at(hour, 0))
		assert.False(t, quiet)
		assert.Zero(t, seconds)
	}
}

func TestQuietWindow_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	w := QuietWindow{StartHour: 1, EndHour: 6}

	// 18:00 UTC is 02:00 the next day in UTC+8.
	now := time.Date(2025, time.March, 12, 18, 0, 0, 0, time.UTC)

	quiet, _ := w.Check(now)
	assert.False(t, quiet)

	quiet, seconds := w.Check(now.In(loc))
	assert.True(t, quiet)
	assert.Equal(t, 4*3600, seconds)
}
