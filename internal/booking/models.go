package booking

import (
	"fmt"
	"strings"
	"time"
)

// RoomStatus is the room-level operational flag, independent of bookings.
type RoomStatus string

const (
	StatusAvailable   RoomStatus = "available"
	StatusMaintenance RoomStatus = "maintenance"
)

// ParseRoomStatus normalizes the loosely-cased status strings found in room
// records ("Available", "AVAILABLE", "booked", ...) into the closed enum.
// Normalization happens once, at the catalog adapter, never at comparison
// sites. A "booked" room status is a legacy value that conflated operational
// state with reservation state; operationally such a room is available.
func ParseRoomStatus(raw string) (RoomStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "available", "booked":
		return StatusAvailable, nil
	case "maintenance":
		return StatusMaintenance, nil
	default:
		return "", fmt.Errorf("unknown room status %q", raw)
	}
}

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

func ParseReservationStatus(raw string) (ReservationStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "confirmed":
		return StatusConfirmed, nil
	case "completed":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", raw)
	}
}

type Room struct {
	ID        string
	Name      string
	Location  string
	Capacity  int
	Amenities []string
	Status    RoomStatus
}

// Reservation is a room's claim on a time window. Reservations transition
// confirmed -> completed once their window's end has passed, or
// confirmed -> cancelled on explicit cancellation. A reschedule cancels the
// old reservation and creates a new one, never mutates the window in place.
type Reservation struct {
	ID        string
	Code      string
	RoomID    string
	Window    TimeWindow
	Status    ReservationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Elapsed reports whether the reservation's window has fully passed.
func (r Reservation) Elapsed(now time.Time) bool {
	return r.Window.EndAt().Before(now)
}
