package quota

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zad-edu/masadr2040/internal/models"
)

var week = []string{"2024-06-09", "2024-06-10", "2024-06-11", "2024-06-12", "2024-06-13"}

func bookingsFor(teacher string, days ...string) []models.Booking {
	out := make([]models.Booking, 0, len(days))
	for i, day := range days {
		out = append(out, models.Booking{
			ID:      fmt.Sprintf("b%d", i+1),
			Day:     day,
			Period:  (i % models.PeriodsPerDay) + 1,
			Teacher: teacher,
		})
	}
	return out
}

func TestEvaluateAllowsUnderBothCaps(t *testing.T) {
	existing := bookingsFor("X", "2024-06-09", "2024-06-10")

	verdict := Evaluate(existing, Candidate{Teacher: "X", Day: "2024-06-11", WeekDates: week})
	assert.Equal(t, OK, verdict)
}

func TestEvaluateWeeklyLimit(t *testing.T) {
	// Six bookings already in the week: the seventh is refused.
	existing := bookingsFor("X",
		"2024-06-09", "2024-06-09", "2024-06-10", "2024-06-10", "2024-06-11", "2024-06-11")

	verdict := Evaluate(existing, Candidate{Teacher: "X", Day: "2024-06-12", WeekDates: week})
	assert.Equal(t, WeeklyExceeded, verdict)
}

func TestEvaluateDailyLimit(t *testing.T) {
	existing := bookingsFor("X", "2024-06-10", "2024-06-10", "2024-06-10")

	verdict := Evaluate(existing, Candidate{Teacher: "X", Day: "2024-06-10", WeekDates: week})
	assert.Equal(t, DailyExceeded, verdict)
}

func TestEvaluateThirdOnSameDayAllowed(t *testing.T) {
	existing := bookingsFor("X", "2024-06-10", "2024-06-10")

	verdict := Evaluate(existing, Candidate{Teacher: "X", Day: "2024-06-10", WeekDates: week})
	assert.Equal(t, OK, verdict)
}

func TestEvaluateWeeklyReportedBeforeDaily(t *testing.T) {
	// Violates both caps; the weekly verdict wins.
	existing := bookingsFor("X",
		"2024-06-10", "2024-06-10", "2024-06-10", "2024-06-11", "2024-06-11", "2024-06-11")

	verdict := Evaluate(existing, Candidate{Teacher: "X", Day: "2024-06-10", WeekDates: week})
	assert.Equal(t, WeeklyExceeded, verdict)
}

func TestEvaluateExcludesBookingUnderEdit(t *testing.T) {
	existing := bookingsFor("X",
		"2024-06-09", "2024-06-09", "2024-06-10", "2024-06-10", "2024-06-11", "2024-06-11")

	// Editing b1 in place: it is not counted against its own quota.
	verdict := Evaluate(existing, Candidate{
		Teacher: "X", Day: "2024-06-09", WeekDates: week, ExcludeID: "b1",
	})
	assert.Equal(t, OK, verdict)
}

func TestEvaluateOtherTeachersDoNotCount(t *testing.T) {
	existing := append(
		bookingsFor("Y", "2024-06-10", "2024-06-10", "2024-06-10"),
		bookingsFor("Z", "2024-06-10", "2024-06-10", "2024-06-10")...)

	verdict := Evaluate(existing, Candidate{Teacher: "X", Day: "2024-06-10", WeekDates: week})
	assert.Equal(t, OK, verdict)
}

func TestWeeklyCountIgnoresOtherWeeks(t *testing.T) {
	existing := bookingsFor("X", "2024-06-02", "2024-06-03", "2024-06-16")

	count := WeeklyCount(existing, Candidate{Teacher: "X", WeekDates: week})
	assert.Zero(t, count)
}
