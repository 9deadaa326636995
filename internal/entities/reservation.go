package entities

import (
	"time"

	"roomreserve/internal/booking"
)

type ReservationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	RoomID    string    `json:"room_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewReservationResponse(res booking.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        res.ID,
		Code:      res.Code,
		RoomID:    res.RoomID,
		Date:      res.Window.DateString(),
		StartTime: res.Window.StartString(),
		EndTime:   res.Window.EndString(),
		Status:    string(res.Status),
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
}

func NewReservationResponses(reservations []booking.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, NewReservationResponse(res))
	}
	return out
}
