package driven

import (
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
)

// HolidayCalendar looks up the holiday for a calendar date.
type HolidayCalendar interface {
	// Lookup returns the holiday on date's local calendar day.
	Lookup(date time.Time) (domain.Holiday, bool)
}
