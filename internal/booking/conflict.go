package booking

// Overlaps reports whether two windows on the same date overlap. Windows are
// half-open [start, end): two bookings that are exactly back-to-back do not
// overlap.
func Overlaps(a, b TimeWindow) bool {
	return a.SameDate(b) && a.start < b.end && b.start < a.end
}

// HasConflict reports whether any non-cancelled reservation overlaps the
// window. Iteration short-circuits on the first hit; the verdict is the same
// whatever order the reservations arrive in.
func HasConflict(w TimeWindow, existing []Reservation) bool {
	_, found := ConflictingReservation(w, existing, "")
	return found
}

// ConflictingReservation returns the first non-cancelled reservation that
// overlaps the window, skipping the reservation with excludeID. The exclusion
// lets a reschedule recheck a room without colliding with the reservation
// being moved.
func ConflictingReservation(w TimeWindow, existing []Reservation, excludeID string) (Reservation, bool) {
	for _, r := range existing {
		if r.Status == StatusCancelled {
			continue
		}
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if Overlaps(w, r.Window) {
			return r, true
		}
	}
	return Reservation{}, false
}
