package api

import (
	"encoding/json"
	"net/http"

	"roomreserve/internal/booking"
	"roomreserve/internal/entities"
	apierrors "roomreserve/internal/errors"
	"roomreserve/internal/service"

	"github.com/gorilla/mux"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.RoomID == "" {
		apierrors.Write(w, &booking.ValidationError{
			Kind: booking.KindMissingField, Field: "room_id", Message: "room id is required",
		})
		return
	}

	window, err := h.Service.ValidateWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		apierrors.Write(w, err)
		return
	}

	res, err := h.Service.Book(req.RoomID, window)
	if err != nil {
		apierrors.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entities.NewReservationResponse(*res))
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res, err := h.Service.Get(id)
	if err != nil {
		apierrors.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entities.NewReservationResponse(res))
}

func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.ReservationFilter{
		RoomID: q.Get("room_id"),
		Date:   q.Get("date"),
	}
	if raw := q.Get("status"); raw != "" {
		status, err := booking.ParseReservationStatus(raw)
		if err != nil {
			http.Error(w, "Invalid status", http.StatusBadRequest)
			return
		}
		filter.Status = status
	}

	reservations, err := h.Service.List(filter)
	if err != nil {
		apierrors.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entities.NewReservationResponses(reservations))
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Service.Cancel(id); err != nil {
		apierrors.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MessageResponse{Message: "Reservation cancelled"})
}

func (h *ReservationHandler) RescheduleReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req RescheduleReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	window, err := h.Service.ValidateWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		apierrors.Write(w, err)
		return
	}

	res, err := h.Service.Reschedule(id, window)
	if err != nil {
		apierrors.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entities.NewReservationResponse(*res))
}
