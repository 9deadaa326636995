package entities

import "roomreserve/internal/booking"

// RoomVerdictResponse is one room's bookability answer for a search query.
type RoomVerdictResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Capacity   int      `json:"capacity"`
	Amenities  []string `json:"amenities"`
	Status     string   `json:"status"`
	IsBookable bool     `json:"is_bookable"`
	Reason     string   `json:"reason"`
}

func NewRoomVerdictResponse(v booking.Verdict) RoomVerdictResponse {
	return RoomVerdictResponse{
		ID:         v.Room.ID,
		Name:       v.Room.Name,
		Location:   v.Room.Location,
		Capacity:   v.Room.Capacity,
		Amenities:  v.Room.Amenities,
		Status:     string(v.Room.Status),
		IsBookable: v.Bookable,
		Reason:     string(v.Reason),
	}
}

func NewRoomVerdictResponses(verdicts []booking.Verdict) []RoomVerdictResponse {
	out := make([]RoomVerdictResponse, 0, len(verdicts))
	for _, v := range verdicts {
		out = append(out, NewRoomVerdictResponse(v))
	}
	return out
}
