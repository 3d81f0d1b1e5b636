package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
)

func TestModeSelector_Priority(t *testing.T) {
	newYearsEve := domain.Holiday{Name: "New Year's Eve", Title: "Farewell", Message: "See you next year"}
	calendar := mockCalendar{"12-31": newYearsEve, "02-14": {Name: "Valentine", Message: "Love"}}
	selector := NewModeSelector(calendar)

	settings := testSettings()
	settings.Display.Mode = domain.ModeKindQuote

	tests := []struct {
		name     string
		now      time.Time
		settings domain.Settings
		expected domain.DisplayMode
	}{
		{
			name:     "holiday on Dec 31 wins over year end",
			now:      time.Date(2025, time.December, 31, 9, 0, 0, 0, time.UTC),
			expected: domain.HolidayMode{Holiday: newYearsEve},
		},
		{
			name:     "holiday wins over configured mode",
			now:      time.Date(2025, time.February, 14, 9, 0, 0, 0, time.UTC),
			expected: domain.HolidayMode{Holiday: calendar["02-14"]},
		},
		{
			name:     "configured mode otherwise",
			now:      time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC),
			expected: domain.QuoteMode{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, selector.Select(tt.now, settings))
		})
	}
}

func TestModeSelector_YearEndWithoutHoliday(t *testing.T) {
	selector := NewModeSelector(mockCalendar{})
	now := time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, domain.DisplayMode(domain.YearEndMode{}), selector.Select(now, testSettings()))

	dec30 := time.Date(2025, time.December, 30, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, domain.DisplayMode(domain.DashboardMode{}), selector.Select(dec30, testSettings()))
}

func TestModeSelector_NilCalendar(t *testing.T) {
	selector := NewModeSelector(nil)
	settings := testSettings()
	settings.Display.Mode = domain.ModeKindWallpaper
	settings.Display.Wallpaper = "forest"

	got := selector.Select(time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC), settings)
	assert.Equal(t, domain.DisplayMode(domain.WallpaperMode{Name: "forest"}), got)
}

func TestIsYearEnd(t *testing.T) {
	assert.True(t, IsYearEnd(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsYearEnd(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsYearEnd(time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)))
}
