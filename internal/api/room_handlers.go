package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"roomreserve/internal/booking"
	"roomreserve/internal/entities"
	apierrors "roomreserve/internal/errors"
	"roomreserve/internal/service"
)

type RoomHandler struct {
	Service *service.ReservationService
}

func NewRoomHandler(svc *service.ReservationService) *RoomHandler {
	return &RoomHandler{Service: svc}
}

// SearchRooms answers both browse and availability queries. With no window
// parameters it lists rooms by location; with date, start_time and end_time
// it validates the window first and returns a per-room bookability verdict.
func (h *RoomHandler) SearchRooms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	location := q.Get("location")

	minCapacity := 0
	if raw := q.Get("min_capacity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "Invalid min_capacity", http.StatusBadRequest)
			return
		}
		minCapacity = n
	}

	date, startTime, endTime := q.Get("date"), q.Get("start_time"), q.Get("end_time")

	var window *booking.TimeWindow
	if date != "" || startTime != "" || endTime != "" {
		validated, err := h.Service.ValidateWindow(date, startTime, endTime)
		if err != nil {
			apierrors.Write(w, err)
			return
		}
		window = &validated
	}

	verdicts, err := h.Service.Search(location, minCapacity, window)
	if err != nil {
		apierrors.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entities.NewRoomVerdictResponses(verdicts))
}
