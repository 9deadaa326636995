package service

import (
	"fmt"
	"time"

	"roomreserve/internal/booking"

	"github.com/google/uuid"
)

// RoomCatalog supplies rooms with their operational status already normalized
// to the booking enums.
type RoomCatalog interface {
	ListRooms(location string, minCapacity int) ([]booking.Room, error)
	GetRoom(id string) (booking.Room, error)
}

// ReservationFilter narrows a reservation listing. Zero values match
// everything.
type ReservationFilter struct {
	RoomID string
	Date   string // YYYY-MM-DD, matched against the window's date
	Status booking.ReservationStatus
}

// ReservationStore owns reservation records. Insert and Reschedule must run
// their conflict recheck and the write as one atomic unit per room, so that
// of two concurrent bookings for overlapping windows exactly one succeeds
// and the loser gets a *booking.ConflictError.
type ReservationStore interface {
	ListActive(roomID string) ([]booking.Reservation, error)
	Get(id string) (booking.Reservation, error)
	List(filter ReservationFilter) ([]booking.Reservation, error)
	Insert(res *booking.Reservation) error
	Reschedule(oldID string, res *booking.Reservation) error
	Cancel(id string, now time.Time) error
	CompleteElapsed(now time.Time) (int64, error)
}

type ReservationService struct {
	catalog RoomCatalog
	store   ReservationStore
	hours   booking.OperatingHours
	now     func() time.Time
}

func NewReservationService(catalog RoomCatalog, store ReservationStore, hours booking.OperatingHours, now func() time.Time) *ReservationService {
	if now == nil {
		now = time.Now
	}
	return &ReservationService{catalog: catalog, store: store, hours: hours, now: now}
}

func (s *ReservationService) Hours() booking.OperatingHours { return s.hours }

// ValidateWindow runs the time-window validator against the service clock
// and configured operating hours.
func (s *ReservationService) ValidateWindow(date, startTime, endTime string) (booking.TimeWindow, error) {
	return booking.Validate(date, startTime, endTime, s.now(), s.hours)
}

// Search returns a bookability verdict per matching room. A nil window is a
// browse query; a non-nil window must come from ValidateWindow.
func (s *ReservationService) Search(location string, minCapacity int, w *booking.TimeWindow) ([]booking.Verdict, error) {
	rooms, err := s.catalog.ListRooms(location, minCapacity)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}

	var reservationsByRoom map[string][]booking.Reservation
	if w != nil {
		reservationsByRoom = make(map[string][]booking.Reservation, len(rooms))
		for _, room := range rooms {
			existing, err := s.store.ListActive(room.ID)
			if err != nil {
				return nil, fmt.Errorf("listing reservations for room %s: %w", room.ID, err)
			}
			reservationsByRoom[room.ID] = existing
		}
	}

	req := booking.SearchRequest{Location: location, MinCapacity: minCapacity, Window: w}
	return booking.Search(req, rooms, reservationsByRoom), nil
}

// Book commits a reservation for the window. The store re-runs the conflict
// check atomically with the insert, so a booking that raced past search still
// fails here with a *booking.ConflictError rather than double-booking the
// room.
func (s *ReservationService) Book(roomID string, w booking.TimeWindow) (*booking.Reservation, error) {
	room, err := s.catalog.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	if room.Status == booking.StatusMaintenance {
		return nil, &booking.MaintenanceError{RoomID: room.ID}
	}

	now := s.now().UTC()
	res := &booking.Reservation{
		ID:        uuid.NewString(),
		Code:      s.newCode(),
		RoomID:    room.ID,
		Window:    w,
		Status:    booking.StatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ReservationService) Get(id string) (booking.Reservation, error) {
	return s.store.Get(id)
}

func (s *ReservationService) List(filter ReservationFilter) ([]booking.Reservation, error) {
	return s.store.List(filter)
}

// Cancel marks a confirmed reservation cancelled. Cancelled reservations stay
// on record and never participate in conflict checks again.
func (s *ReservationService) Cancel(id string) error {
	return s.store.Cancel(id, s.now().UTC())
}

// Reschedule moves a confirmed reservation to a new validated window by
// cancelling it and creating a replacement, never by mutating the window in
// place, so the overlap history stays auditable. The conflict recheck
// excludes the reservation being moved and both writes happen in the store's
// atomic scope.
func (s *ReservationService) Reschedule(id string, w booking.TimeWindow) (*booking.Reservation, error) {
	old, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if old.Status != booking.StatusConfirmed {
		return nil, booking.ErrAlreadyFinalized
	}

	room, err := s.catalog.GetRoom(old.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status == booking.StatusMaintenance {
		return nil, &booking.MaintenanceError{RoomID: room.ID}
	}

	now := s.now().UTC()
	res := &booking.Reservation{
		ID:        uuid.NewString(),
		Code:      old.Code, // the confirmation code follows the booking
		RoomID:    old.RoomID,
		Window:    w,
		Status:    booking.StatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Reschedule(old.ID, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ReservationService) newCode() string {
	return fmt.Sprintf("%08X", s.now().UnixNano()%100000000)
}
