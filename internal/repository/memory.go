package repository

import (
	"sync"
	"time"

	"roomreserve/internal/booking"
	"roomreserve/internal/service"
)

// MemoryCatalog is a fixed in-memory room catalog, used in tests and when no
// database is configured.
type MemoryCatalog struct {
	rooms []booking.Room
}

func NewMemoryCatalog(rooms []booking.Room) *MemoryCatalog {
	return &MemoryCatalog{rooms: rooms}
}

func (c *MemoryCatalog) ListRooms(location string, minCapacity int) ([]booking.Room, error) {
	out := make([]booking.Room, 0, len(c.rooms))
	for _, room := range c.rooms {
		if location != "" && location != booking.LocationAll && room.Location != location {
			continue
		}
		if minCapacity > 0 && room.Capacity < minCapacity {
			continue
		}
		out = append(out, room)
	}
	return out, nil
}

func (c *MemoryCatalog) GetRoom(id string) (booking.Room, error) {
	for _, room := range c.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return booking.Room{}, booking.ErrRoomNotFound
}

// SeedRooms returns the demo room catalog.
func SeedRooms() []booking.Room {
	return []booking.Room{
		{ID: "R101", Name: "Executive Suite", Location: "Pune_Baner", Capacity: 12, Amenities: []string{"Projector", "Whiteboard", "Video Conference"}, Status: booking.StatusAvailable},
		{ID: "R102", Name: "Brainstorm Room", Location: "Pune_Baner", Capacity: 8, Amenities: []string{"Whiteboard", "TV Screen"}, Status: booking.StatusAvailable},
		{ID: "R103", Name: "Conference Hall", Location: "Pune_Wadgaonsheri", Capacity: 20, Amenities: []string{"Projector", "Sound System", "Video Conference"}, Status: booking.StatusMaintenance},
		{ID: "R104", Name: "Focus Room", Location: "Pune_Wadgaonsheri", Capacity: 6, Amenities: []string{"TV Screen", "Whiteboard"}, Status: booking.StatusAvailable},
		{ID: "R105", Name: "Meeting Pod", Location: "Hyderabad", Capacity: 4, Amenities: []string{"TV Screen"}, Status: booking.StatusAvailable},
		{ID: "R106", Name: "Training Room", Location: "Hyderabad", Capacity: 15, Amenities: []string{"Projector", "Whiteboard", "Sound System"}, Status: booking.StatusMaintenance},
	}
}

// MemoryStore keeps reservations in process memory. A single mutex makes the
// conflict recheck and the write one atomic unit, which is the contract
// ReservationStore demands of every implementation.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]*booking.Reservation
	all  []*booking.Reservation // insertion order, for stable listings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]*booking.Reservation)}
}

func (s *MemoryStore) ListActive(roomID string) ([]booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked(roomID), nil
}

func (s *MemoryStore) activeLocked(roomID string) []booking.Reservation {
	var out []booking.Reservation
	for _, r := range s.all {
		if r.RoomID == roomID && r.Status != booking.StatusCancelled {
			out = append(out, *r)
		}
	}
	return out
}

func (s *MemoryStore) Get(id string) (booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	if !ok {
		return booking.Reservation{}, booking.ErrReservationNotFound
	}
	return *r, nil
}

func (s *MemoryStore) List(filter service.ReservationFilter) ([]booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []booking.Reservation
	for _, r := range s.all {
		if filter.RoomID != "" && r.RoomID != filter.RoomID {
			continue
		}
		if filter.Date != "" && r.Window.DateString() != filter.Date {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *MemoryStore) Insert(res *booking.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(res, "")
}

func (s *MemoryStore) insertLocked(res *booking.Reservation, excludeID string) error {
	existing := s.activeLocked(res.RoomID)
	if conflicting, found := booking.ConflictingReservation(res.Window, existing, excludeID); found {
		return &booking.ConflictError{RoomID: res.RoomID, Conflicting: conflicting}
	}
	stored := *res
	s.byID[stored.ID] = &stored
	s.all = append(s.all, &stored)
	return nil
}

func (s *MemoryStore) Reschedule(oldID string, res *booking.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[oldID]
	if !ok {
		return booking.ErrReservationNotFound
	}
	if old.Status != booking.StatusConfirmed {
		return booking.ErrAlreadyFinalized
	}
	if err := s.insertLocked(res, oldID); err != nil {
		return err
	}
	old.Status = booking.StatusCancelled
	old.UpdatedAt = res.CreatedAt
	return nil
}

func (s *MemoryStore) Cancel(id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return booking.ErrReservationNotFound
	}
	if r.Status != booking.StatusConfirmed {
		return booking.ErrAlreadyFinalized
	}
	r.Status = booking.StatusCancelled
	r.UpdatedAt = now
	return nil
}

func (s *MemoryStore) CompleteElapsed(now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var updated int64
	for _, r := range s.all {
		if r.Status == booking.StatusConfirmed && r.Elapsed(now) {
			r.Status = booking.StatusCompleted
			r.UpdatedAt = now
			updated++
		}
	}
	return updated, nil
}
