package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zad-edu/masadr2040/internal/models"
)

func sample(id, day string, period int) models.Booking {
	return models.Booking{
		ID: id, Day: day, Period: period,
		Teacher: "Ahmed Al-Busaidi", Subject: "Science", Lesson: "Cells",
		Grade: "7", Class: "7/1",
	}
}

func TestUpsertAppendsNewAndReplacesInPlace(t *testing.T) {
	s := New()
	s.Upsert(sample("a", "2024-06-09", 1))
	s.Upsert(sample("b", "2024-06-09", 2))
	s.Upsert(sample("c", "2024-06-10", 1))

	edited := sample("b", "2024-06-09", 2)
	edited.Lesson = "Photosynthesis"
	s.Upsert(edited)

	list := s.List()
	require.Len(t, list, 3)
	// Edit keeps the collection order.
	assert.Equal(t, []string{"a", "b", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "Photosynthesis", list[1].Lesson)
}

func TestRemove(t *testing.T) {
	s := New()
	s.Upsert(sample("a", "2024-06-09", 1))
	s.Upsert(sample("b", "2024-06-09", 2))

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("missing"))

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)
}

func TestFindBySlot(t *testing.T) {
	s := New()
	s.Upsert(sample("a", "2024-06-09", 3))

	b, ok := s.FindBySlot("2024-06-09", 3)
	require.True(t, ok)
	assert.Equal(t, "a", b.ID)

	_, ok = s.FindBySlot("2024-06-09", 4)
	assert.False(t, ok)
}

func TestListenersSeeEveryMutation(t *testing.T) {
	s := New()
	var sizes []int
	s.Subscribe(func(snap []models.Booking) {
		sizes = append(sizes, len(snap))
	})

	s.Upsert(sample("a", "2024-06-09", 1))
	s.Upsert(sample("b", "2024-06-09", 2))
	s.Remove("a")

	assert.Equal(t, []int{1, 2, 1}, sizes)
}

func TestLoadDoesNotNotify(t *testing.T) {
	s := New()
	notified := false
	s.Subscribe(func([]models.Booking) { notified = true })

	s.Load([]models.Booking{sample("a", "2024-06-09", 1)})

	assert.False(t, notified)
	assert.Equal(t, 1, s.Len())
}

func TestReplaceNotifiesAndCopies(t *testing.T) {
	s := New()
	count := 0
	s.Subscribe(func([]models.Booking) { count++ })

	incoming := []models.Booking{sample("x", "2024-06-10", 5)}
	s.Replace(incoming)
	incoming[0].Lesson = "mutated by caller"

	require.Equal(t, 1, count)
	assert.Equal(t, "Cells", s.List()[0].Lesson)
}

func TestEqualByValue(t *testing.T) {
	s := New()
	s.Load([]models.Booking{sample("a", "2024-06-09", 1), sample("b", "2024-06-09", 2)})

	assert.True(t, s.Equal([]models.Booking{sample("a", "2024-06-09", 1), sample("b", "2024-06-09", 2)}))
	assert.False(t, s.Equal([]models.Booking{sample("b", "2024-06-09", 2), sample("a", "2024-06-09", 1)}))
	assert.False(t, s.Equal(nil))
}

func TestListSnapshotIsDetached(t *testing.T) {
	s := New()
	s.Upsert(sample("a", "2024-06-09", 1))

	list := s.List()
	list[0].Lesson = "changed"

	assert.Equal(t, "Cells", s.List()[0].Lesson)
}
