// Package quota implements the admission-control rules capping how many
// periods a teacher may book per week and per day.
package quota

import "github.com/zad-edu/masadr2040/internal/models"

const (
	// WeeklyLimit is the maximum number of periods a teacher may hold
	// inside one booking week (5 school days).
	WeeklyLimit = 6
	// DailyLimit is the maximum number of periods a teacher may hold on a
	// single day.
	DailyLimit = 3
)

// Verdict is the outcome of evaluating a candidate booking against the caps.
type Verdict string

const (
	OK             Verdict = "ok"
	WeeklyExceeded Verdict = "weekly-limit-exceeded"
	DailyExceeded  Verdict = "daily-limit-exceeded"
)

// Candidate describes the booking being admitted: the teacher, the target
// day, the dates of the selected week, and the id of the booking under edit
// (empty on the create path). The edited booking is excluded from all counts
// so that editing a booking in place never trips its own quota.
type Candidate struct {
	Teacher   string
	Day       string
	WeekDates []string
	ExcludeID string
}

// Evaluate checks the weekly cap first and short-circuits: a candidate that
// violates both caps reports only the weekly violation.
func Evaluate(bookings []models.Booking, c Candidate) Verdict {
	if WeeklyCount(bookings, c) >= WeeklyLimit {
		return WeeklyExceeded
	}
	if DailyCount(bookings, c) >= DailyLimit {
		return DailyExceeded
	}
	return OK
}

// WeeklyCount counts the teacher's bookings falling on the selected week's
// dates, excluding the booking under edit.
func WeeklyCount(bookings []models.Booking, c Candidate) int {
	inWeek := make(map[string]struct{}, len(c.WeekDates))
	for _, d := range c.WeekDates {
		inWeek[d] = struct{}{}
	}

	count := 0
	for _, b := range bookings {
		if b.Teacher != c.Teacher || b.ID == c.ExcludeID {
			continue
		}
		if _, ok := inWeek[b.Day]; ok {
			count++
		}
	}
	return count
}

// DailyCount counts the teacher's bookings on the candidate day, excluding
// the booking under edit.
func DailyCount(bookings []models.Booking, c Candidate) int {
	count := 0
	for _, b := range bookings {
		if b.Teacher == c.Teacher && b.Day == c.Day && b.ID != c.ExcludeID {
			count++
		}
	}
	return count
}
