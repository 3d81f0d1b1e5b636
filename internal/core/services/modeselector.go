package services

import (
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// ModeSelector decides what a cycle draws. A holiday on today's date wins,
// then the year-end summary on December 31, then the configured mode.
type ModeSelector struct {
	calendar driven.HolidayCalendar
}

// NewModeSelector creates a selector. A nil calendar disables holidays.
func NewModeSelector(calendar driven.HolidayCalendar) *ModeSelector {
	return &ModeSelector{calendar: calendar}
}

// Select returns the mode for now, which must already be in the
// configured location.
func (s *ModeSelector) Select(now time.Time, settings domain.Settings) domain.DisplayMode {
	if s.calendar != nil {
		if holiday, ok := s.calendar.Lookup(now); ok {
			return domain.HolidayMode{Holiday: holiday}
		}
	}
	if IsYearEnd(now) {
		return domain.YearEndMode{}
	}
	return domain.ConfiguredMode(settings.Display.Mode, settings.Display.Wallpaper)
}

// IsYearEnd reports whether now is December 31.
func IsYearEnd(now time.Time) bool {
	return now.Month() == time.December && now.Day() == 31
}
