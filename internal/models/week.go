package models

import "time"

// WeekdaysPerWeek is the number of bookable days in a school week (Sun-Thu).
const WeekdaysPerWeek = 5

// Week is a derived booking window. It is recomputed from wall-clock time and
// never persisted.
type Week struct {
	Label     string   `json:"label"`
	Start     string   `json:"start"` // the week's Sunday, YYYY-MM-DD
	Available bool     `json:"available"`
	Dates     []string `json:"dates"` // the 5 weekday dates Sun-Thu
}

// Contains reports whether the given day falls inside the week's dates.
func (w Week) Contains(day string) bool {
	for _, d := range w.Dates {
		if d == day {
			return true
		}
	}
	return false
}

// WeekOptions derives the two selectable weeks from the given instant: the
// current week (always available) and the next week, which opens for booking
// on Wednesday of the current week.
func WeekOptions(now time.Time) []Week {
	dayOfWeek := int(now.Weekday()) // 0 = Sunday
	currentSunday := now.AddDate(0, 0, -dayOfWeek)
	nextSunday := currentSunday.AddDate(0, 0, 7)

	nextAvailable := dayOfWeek >= 3 // Wednesday or later

	current := Week{
		Label:     "current",
		Start:     currentSunday.Format(DayFormat),
		Available: true,
		Dates:     weekDates(currentSunday),
	}
	next := Week{
		Label:     "next",
		Start:     nextSunday.Format(DayFormat),
		Available: nextAvailable,
		Dates:     weekDates(nextSunday),
	}
	return []Week{current, next}
}

func weekDates(sunday time.Time) []string {
	dates := make([]string, 0, WeekdaysPerWeek)
	for i := 0; i < WeekdaysPerWeek; i++ {
		dates = append(dates, sunday.AddDate(0, 0, i).Format(DayFormat))
	}
	return dates
}
