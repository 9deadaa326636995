package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(t *testing.T, date, start, end string) TimeWindow {
	t.Helper()
	clock := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	w, err := Validate(date, start, end, clock, DefaultHours)
	require.NoError(t, err)
	return w
}

func reserved(t *testing.T, id, roomID, date, start, end string, status ReservationStatus) Reservation {
	t.Helper()
	return Reservation{ID: id, RoomID: roomID, Window: window(t, date, start, end), Status: status}
}

func TestOverlaps(t *testing.T) {
	base := window(t, "2026-03-05", "10:00", "11:00")

	tests := []struct {
		name             string
		date, start, end string
		want             bool
	}{
		{"identical window", "2026-03-05", "10:00", "11:00", true},
		{"contained", "2026-03-05", "10:15", "10:45", true},
		{"straddles start", "2026-03-05", "09:30", "10:30", true},
		{"straddles end", "2026-03-05", "10:30", "11:30", true},
		{"covers entirely", "2026-03-05", "09:00", "12:00", true},
		{"back-to-back after", "2026-03-05", "11:00", "12:00", false},
		{"back-to-back before", "2026-03-05", "09:00", "10:00", false},
		{"clearly apart", "2026-03-05", "14:00", "15:00", false},
		{"same times next day", "2026-03-06", "10:00", "11:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := window(t, tt.date, tt.start, tt.end)
			assert.Equal(t, tt.want, Overlaps(base, other))
			assert.Equal(t, tt.want, Overlaps(other, base), "overlap must be symmetric")
		})
	}
}

func TestHasConflict_StatusFiltering(t *testing.T) {
	w := window(t, "2026-03-05", "10:00", "11:00")

	cancelled := reserved(t, "r1", "R101", "2026-03-05", "10:00", "11:00", StatusCancelled)
	assert.False(t, HasConflict(w, []Reservation{cancelled}),
		"cancelled reservations never block")

	confirmed := reserved(t, "r2", "R101", "2026-03-05", "10:30", "11:30", StatusConfirmed)
	assert.True(t, HasConflict(w, []Reservation{confirmed}))

	// Completed blocks the same as confirmed; past windows are normally
	// rejected upstream so this only matters for same-day edge cases.
	completed := reserved(t, "r3", "R101", "2026-03-05", "10:30", "11:30", StatusCompleted)
	assert.True(t, HasConflict(w, []Reservation{completed}))
}

func TestHasConflict_OrderIndependent(t *testing.T) {
	w := window(t, "2026-03-05", "10:00", "11:00")
	a := reserved(t, "a", "R101", "2026-03-05", "09:00", "10:00", StatusConfirmed)
	b := reserved(t, "b", "R101", "2026-03-05", "10:30", "11:00", StatusConfirmed)
	c := reserved(t, "c", "R101", "2026-03-05", "13:00", "14:00", StatusConfirmed)

	assert.True(t, HasConflict(w, []Reservation{a, b, c}))
	assert.True(t, HasConflict(w, []Reservation{c, b, a}))
	assert.False(t, HasConflict(w, []Reservation{a, c}))
}

func TestHasConflict_Empty(t *testing.T) {
	w := window(t, "2026-03-05", "10:00", "11:00")
	assert.False(t, HasConflict(w, nil))
}

func TestConflictingReservation_Exclude(t *testing.T) {
	w := window(t, "2026-03-05", "10:00", "11:00")
	moving := reserved(t, "old", "R101", "2026-03-05", "10:00", "11:00", StatusConfirmed)
	other := reserved(t, "other", "R101", "2026-03-05", "10:30", "11:30", StatusConfirmed)

	// Excluding the reservation being rescheduled leaves the window free.
	_, found := ConflictingReservation(w, []Reservation{moving}, "old")
	assert.False(t, found)

	hit, found := ConflictingReservation(w, []Reservation{moving, other}, "old")
	require.True(t, found)
	assert.Equal(t, "other", hit.ID)
}
