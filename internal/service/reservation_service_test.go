package service_test

import (
	"sync"
	"testing"
	"time"

	"roomreserve/internal/booking"
	"roomreserve/internal/repository"
	"roomreserve/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The clock is pinned to a Wednesday morning; "tomorrow" in the tests is
// 2026-03-05.
var testNow = time.Date(2026, time.March, 4, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestService(t *testing.T) (*service.ReservationService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	catalog := repository.NewMemoryCatalog(repository.SeedRooms())
	svc := service.NewReservationService(catalog, store, booking.DefaultHours, fixedClock)
	return svc, store
}

func mustWindow(t *testing.T, svc *service.ReservationService, date, start, end string) booking.TimeWindow {
	t.Helper()
	w, err := svc.ValidateWindow(date, start, end)
	require.NoError(t, err)
	return w
}

func verdictByRoom(verdicts []booking.Verdict) map[string]booking.Verdict {
	out := make(map[string]booking.Verdict, len(verdicts))
	for _, v := range verdicts {
		out[v.Room.ID] = v
	}
	return out
}

func TestSearchBookThenConflict(t *testing.T) {
	svc, _ := newTestService(t)
	w := mustWindow(t, svc, "2026-03-05", "10:00", "11:00")

	verdicts, err := svc.Search(booking.LocationAll, 0, &w)
	require.NoError(t, err)
	require.Equal(t, booking.ReasonOK, verdictByRoom(verdicts)["R101"].Reason)

	res, err := svc.Book("R101", w)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, res.Status)
	assert.Len(t, res.Code, 8)
	assert.NotEmpty(t, res.ID)

	// A second overlapping booking on the same room loses.
	overlapping := mustWindow(t, svc, "2026-03-05", "10:30", "11:30")
	_, err = svc.Book("R101", overlapping)
	var conflictErr *booking.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "R101", conflictErr.RoomID)
	assert.Equal(t, res.ID, conflictErr.Conflicting.ID)

	// Search now reports the conflict too; other rooms stay bookable.
	verdicts, err = svc.Search(booking.LocationAll, 0, &overlapping)
	require.NoError(t, err)
	byRoom := verdictByRoom(verdicts)
	assert.Equal(t, booking.ReasonConflict, byRoom["R101"].Reason)
	assert.Equal(t, booking.ReasonOK, byRoom["R102"].Reason)
}

func TestBook_BackToBackWindows(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Book("R101", mustWindow(t, svc, "2026-03-05", "10:00", "11:00"))
	require.NoError(t, err)
	_, err = svc.Book("R101", mustWindow(t, svc, "2026-03-05", "11:00", "12:00"))
	assert.NoError(t, err, "back-to-back bookings must not conflict")
}

func TestBook_MaintenanceRoom(t *testing.T) {
	svc, _ := newTestService(t)

	// R103 is under maintenance and holds zero reservations.
	_, err := svc.Book("R103", mustWindow(t, svc, "2026-03-05", "10:00", "11:00"))
	var maintErr *booking.MaintenanceError
	require.ErrorAs(t, err, &maintErr)
	assert.Equal(t, "R103", maintErr.RoomID)
}

func TestBook_UnknownRoom(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Book("R999", mustWindow(t, svc, "2026-03-05", "10:00", "11:00"))
	assert.ErrorIs(t, err, booking.ErrRoomNotFound)
}

func TestCancel_ReleasesWindow(t *testing.T) {
	svc, _ := newTestService(t)
	w := mustWindow(t, svc, "2026-03-05", "10:00", "11:00")

	res, err := svc.Book("R101", w)
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(res.ID))

	got, err := svc.Get(res.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, got.Status)

	// The identical window is free again: cancelled reservations never block.
	_, err = svc.Book("R101", w)
	assert.NoError(t, err)

	// Cancelling twice is rejected.
	assert.ErrorIs(t, svc.Cancel(res.ID), booking.ErrAlreadyFinalized)
	assert.ErrorIs(t, svc.Cancel("nope"), booking.ErrReservationNotFound)
}

func TestReschedule(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Book("R101", mustWindow(t, svc, "2026-03-05", "10:00", "11:00"))
	require.NoError(t, err)

	// The new window overlaps the old one; the recheck excludes the
	// reservation being moved so this succeeds.
	moved, err := svc.Reschedule(res.ID, mustWindow(t, svc, "2026-03-05", "10:30", "11:30"))
	require.NoError(t, err)
	assert.NotEqual(t, res.ID, moved.ID, "reschedule creates a new reservation")
	assert.Equal(t, res.Code, moved.Code)
	assert.Equal(t, "10:30", moved.Window.StartString())

	old, err := svc.Get(res.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, old.Status, "old reservation stays on record as cancelled")

	// Rescheduling the already-cancelled original is rejected.
	_, err = svc.Reschedule(res.ID, mustWindow(t, svc, "2026-03-05", "14:00", "15:00"))
	assert.ErrorIs(t, err, booking.ErrAlreadyFinalized)
}

func TestReschedule_ConflictKeepsOriginal(t *testing.T) {
	svc, _ := newTestService(t)

	a, err := svc.Book("R101", mustWindow(t, svc, "2026-03-05", "10:00", "11:00"))
	require.NoError(t, err)
	_, err = svc.Book("R101", mustWindow(t, svc, "2026-03-05", "12:00", "13:00"))
	require.NoError(t, err)

	_, err = svc.Reschedule(a.ID, mustWindow(t, svc, "2026-03-05", "12:30", "13:30"))
	var conflictErr *booking.ConflictError
	require.ErrorAs(t, err, &conflictErr)

	got, err := svc.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, got.Status, "failed reschedule must not cancel the original")
}

func TestBook_ConcurrentOverlap(t *testing.T) {
	svc, _ := newTestService(t)
	first := mustWindow(t, svc, "2026-03-05", "10:00", "11:00")
	second := mustWindow(t, svc, "2026-03-05", "10:30", "11:30")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, w := range []booking.TimeWindow{first, second} {
		wg.Add(1)
		go func(i int, w booking.TimeWindow) {
			defer wg.Done()
			_, errs[i] = svc.Book("R101", w)
		}(i, w)
	}
	wg.Wait()

	var conflicts, successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var conflictErr *booking.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		conflicts++
	}
	assert.Equal(t, 1, successes, "exactly one concurrent booking must win")
	assert.Equal(t, 1, conflicts)
}

func TestList_Filters(t *testing.T) {
	svc, _ := newTestService(t)

	r1, err := svc.Book("R101", mustWindow(t, svc, "2026-03-05", "10:00", "11:00"))
	require.NoError(t, err)
	_, err = svc.Book("R102", mustWindow(t, svc, "2026-03-06", "10:00", "11:00"))
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(r1.ID))

	all, err := svc.List(service.ReservationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cancelled, err := svc.List(service.ReservationFilter{Status: booking.StatusCancelled})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, r1.ID, cancelled[0].ID)

	byDate, err := svc.List(service.ReservationFilter{Date: "2026-03-06"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "R102", byDate[0].RoomID)
}

func TestJobService_CompleteElapsedReservations(t *testing.T) {
	svc, store := newTestService(t)

	res, err := svc.Book("R101", mustWindow(t, svc, "2026-03-05", "10:00", "11:00"))
	require.NoError(t, err)
	later, err := svc.Book("R101", mustWindow(t, svc, "2026-03-06", "10:00", "11:00"))
	require.NoError(t, err)

	// Two days later the first window has elapsed, the second has not.
	dayAfter := testNow.Add(48 * time.Hour)
	jobSvc := service.NewJobService(store, func() time.Time { return dayAfter })
	require.NoError(t, jobSvc.CompleteElapsedReservations())

	got, err := svc.Get(res.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCompleted, got.Status)

	stillOpen, err := svc.Get(later.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, stillOpen.Status)
}
