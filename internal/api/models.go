package api

// Booking
type CreateReservationRequest struct {
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Reschedule carries only the new window; the room stays the same.
type RescheduleReservationRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
