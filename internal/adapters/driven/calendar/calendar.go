// Package calendar resolves holiday greetings for a calendar date.
//
// Gregorian holidays are fixed month/day pairs. Lunar festivals come from a
// per-year table of their Gregorian dates; years outside the table simply
// have no lunar festivals. A configured birthday wins over everything else.
package calendar

import (
	"fmt"
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// Icon names understood by the renderer.
const (
	IconBirthday = "birthday"
	IconHeart    = "heart"
	IconLantern  = "lantern"
	IconStar     = "star"
	IconTree     = "tree"
)

type monthDay struct {
	month time.Month
	day   int
}

func (md monthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.month), md.day)
}

var fixed = map[monthDay]domain.Holiday{
	{time.January, 1}: {
		Name: "New Year", Title: "Happy New Year!", Message: "A fresh start", Icon: IconStar,
	},
	{time.February, 14}: {
		Name: "Valentine's Day", Title: "Happy Valentine's Day", Message: "With love", Icon: IconHeart,
	},
	{time.December, 25}: {
		Name: "Christmas", Title: "Merry Christmas!", Message: "Jingle Bells", Icon: IconTree,
	},
}

var springFestival = domain.Holiday{
	Name: "Spring Festival", Title: "Happy New Year!", Message: "Spring Festival", Icon: IconLantern,
}

var midAutumn = domain.Holiday{
	Name: "Mid-Autumn", Title: "Mid-Autumn Festival", Message: "Mooncake & Family", Icon: IconLantern,
}

// lunar maps a year to the Gregorian dates of its lunar festivals.
var lunar = map[int]map[monthDay]domain.Holiday{
	2025: {{time.January, 29}: springFestival, {time.October, 6}: midAutumn},
	2026: {{time.February, 17}: springFestival, {time.September, 25}: midAutumn},
	2027: {{time.February, 6}: springFestival, {time.September, 15}: midAutumn},
	2028: {{time.January, 26}: springFestival, {time.October, 3}: midAutumn},
	2029: {{time.February, 13}: springFestival, {time.September, 22}: midAutumn},
	2030: {{time.February, 3}: springFestival, {time.September, 12}: midAutumn},
}

// Calendar implements driven.HolidayCalendar.
type Calendar struct {
	settings driven.SettingsSource
}

var _ driven.HolidayCalendar = (*Calendar)(nil)

// New creates a calendar. The birthday and name are read from settings on
// every lookup so a reload takes effect immediately. A nil source disables
// the birthday greeting.
func New(settings driven.SettingsSource) *Calendar {
	return &Calendar{settings: settings}
}

// Lookup returns the holiday on date's calendar day, if any.
func (c *Calendar) Lookup(date time.Time) (domain.Holiday, bool) {
	md := monthDay{date.Month(), date.Day()}

	if c.settings != nil {
		personal := c.settings.Current().Personal
		if personal.Birthday != "" && personal.Birthday == md.String() {
			return domain.Holiday{
				Name:    "Birthday",
				Title:   "Happy Birthday!",
				Message: "To " + personal.Name,
				Icon:    IconBirthday,
			}, true
		}
	}

	if h, ok := lunar[date.Year()][md]; ok {
		return h, true
	}
	if h, ok := fixed[md]; ok {
		return h, true
	}
	return domain.Holiday{}, false
}

// Upcoming returns the holidays of the next days days starting at from,
// keyed by date. The status command lists it.
func (c *Calendar) Upcoming(from time.Time, days int) []Entry {
	var entries []Entry
	for i := 0; i < days; i++ {
		d := from.AddDate(0, 0, i)
		if h, ok := c.Lookup(d); ok {
			entries = append(entries, Entry{Date: d, Holiday: h})
		}
	}
	return entries
}

// Entry is a dated holiday.
type Entry struct {
	Date    time.Time
	Holiday domain.Holiday
}
