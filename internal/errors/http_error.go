package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"roomreserve/internal/booking"
)

// HTTPError carries the status code and machine-readable reason a domain
// error maps to at the API boundary.
type HTTPError struct {
	Code    int    `json:"-"`
	Reason  string `json:"reason"`
	Message string `json:"error"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(code int, reason, message string) *HTTPError {
	return &HTTPError{Code: code, Reason: reason, Message: message}
}

// FromError maps the engine's typed errors onto HTTP semantics: validation
// failures are the caller's input (400), unknown records 404, a room under
// maintenance 422, and a lost booking race 409. Anything unrecognized is a
// 500 with the detail kept out of the response body.
func FromError(err error) *HTTPError {
	var verr *booking.ValidationError
	if stderrors.As(err, &verr) {
		return NewHTTPError(http.StatusBadRequest, reasonForKind(verr.Kind), verr.Error())
	}
	var cerr *booking.ConflictError
	if stderrors.As(err, &cerr) {
		return NewHTTPError(http.StatusConflict, string(booking.ReasonConflict), cerr.Error())
	}
	var merr *booking.MaintenanceError
	if stderrors.As(err, &merr) {
		return NewHTTPError(http.StatusUnprocessableEntity, string(booking.ReasonMaintenance), merr.Error())
	}
	switch {
	case stderrors.Is(err, booking.ErrRoomNotFound),
		stderrors.Is(err, booking.ErrReservationNotFound):
		return NewHTTPError(http.StatusNotFound, "NOT_FOUND", err.Error())
	case stderrors.Is(err, booking.ErrAlreadyFinalized):
		return NewHTTPError(http.StatusConflict, "ALREADY_FINALIZED", err.Error())
	}
	return NewHTTPError(http.StatusInternalServerError, "INTERNAL", "internal server error")
}

func reasonForKind(kind booking.ValidationKind) string {
	switch kind {
	case booking.KindPastDate, booking.KindPastTime:
		return string(booking.ReasonPast)
	case booking.KindOutsideHours:
		return string(booking.ReasonOutsideHours)
	default:
		return string(kind)
	}
}

// Write sends the error as a JSON body with the mapped status code.
func Write(w http.ResponseWriter, err error) {
	herr := FromError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(herr.Code)
	json.NewEncoder(w).Encode(herr)
}
