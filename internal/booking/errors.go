package booking

import (
	"errors"
	"fmt"
)

// ValidationKind classifies why a raw time-window request was rejected.
type ValidationKind string

const (
	KindMissingField  ValidationKind = "MISSING_FIELD"
	KindInvalidFormat ValidationKind = "INVALID_FORMAT"
	KindPastDate      ValidationKind = "PAST_DATE"
	KindPastTime      ValidationKind = "PAST_TIME"
	KindInvalidRange  ValidationKind = "INVALID_RANGE"
	KindOutsideHours  ValidationKind = "OUTSIDE_OPERATING_HOURS"
)

// ValidationError reports the first rule a request broke. Validation fails
// fast: one error per request, never a list.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConflictError means an overlapping reservation already holds the window.
// At commit time it also signals a lost race: another booking was inserted
// between the caller's search and its book call.
type ConflictError struct {
	RoomID      string
	Conflicting Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %s is already reserved for %s", e.RoomID, e.Conflicting.Window)
}

// MaintenanceError means the room is not operational, independent of any
// reservations it may hold.
type MaintenanceError struct {
	RoomID string
}

func (e *MaintenanceError) Error() string {
	return fmt.Sprintf("room %s is under maintenance", e.RoomID)
}

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrAlreadyFinalized rejects cancel/reschedule of a reservation that is
	// no longer confirmed.
	ErrAlreadyFinalized = errors.New("reservation already cancelled or completed")
)
