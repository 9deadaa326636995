package booking

// Reason classifies a room's bookability verdict for a query.
type Reason string

const (
	ReasonOK           Reason = "OK"
	ReasonOutsideHours Reason = "OUTSIDE_HOURS"
	ReasonPast         Reason = "PAST"
	ReasonMaintenance  Reason = "MAINTENANCE"
	ReasonConflict     Reason = "CONFLICT"
)

// LocationAll matches every room when used as a location filter.
const LocationAll = "All"

// SearchRequest filters candidate rooms. Window is nil for a browse query,
// otherwise it must be a window produced by Validate; the resolver never
// re-derives or re-checks it.
type SearchRequest struct {
	Location    string
	MinCapacity int
	Window      *TimeWindow
}

// Verdict is the per-room answer to a search. Computed fresh per query,
// never stored.
type Verdict struct {
	Room     Room
	Bookable bool
	Reason   Reason
}

// Search produces a bookability verdict for every room matching the request
// filters. Output order follows the input room order; callers wanting a
// ranking sort the verdicts themselves.
//
// For a browse query (nil window) the verdict only reflects operational
// status. With a window, maintenance always wins over conflicts, and the
// conflict check runs against the room's reservation set from
// reservationsByRoom.
func Search(req SearchRequest, rooms []Room, reservationsByRoom map[string][]Reservation) []Verdict {
	verdicts := make([]Verdict, 0, len(rooms))
	for _, room := range rooms {
		if !matchesLocation(req.Location, room.Location) {
			continue
		}
		if req.MinCapacity > 0 && room.Capacity < req.MinCapacity {
			continue
		}
		verdicts = append(verdicts, verdictFor(room, req.Window, reservationsByRoom[room.ID]))
	}
	return verdicts
}

// CheckBookable is the commit-time form of a verdict: nil when the room can
// take the window, a typed error otherwise. Book re-runs this inside the
// store's atomic scope so a concurrent booking cannot slip between check and
// insert.
func CheckBookable(room Room, w TimeWindow, existing []Reservation) error {
	if room.Status == StatusMaintenance {
		return &MaintenanceError{RoomID: room.ID}
	}
	if conflicting, found := ConflictingReservation(w, existing, ""); found {
		return &ConflictError{RoomID: room.ID, Conflicting: conflicting}
	}
	return nil
}

func verdictFor(room Room, w *TimeWindow, existing []Reservation) Verdict {
	if room.Status == StatusMaintenance {
		return Verdict{Room: room, Bookable: false, Reason: ReasonMaintenance}
	}
	if w == nil {
		return Verdict{Room: room, Bookable: true, Reason: ReasonOK}
	}
	if HasConflict(*w, existing) {
		return Verdict{Room: room, Bookable: false, Reason: ReasonConflict}
	}
	return Verdict{Room: room, Bookable: true, Reason: ReasonOK}
}

func matchesLocation(filter, location string) bool {
	return filter == "" || filter == LocationAll || filter == location
}
