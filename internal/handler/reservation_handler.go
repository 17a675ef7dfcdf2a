package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/booking"
	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/middleware"
	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/model"
)

type reservationRequest struct {
	RoomID string `json:"sala"`
	Start  string `json:"fechaInicio"`
	End    string `json:"fechaFin"`
	Reason string `json:"motivo"`
}

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req reservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RoomID == "" || req.Start == "" || req.End == "" {
		respondError(w, http.StatusBadRequest, "sala, fechaInicio and fechaFin are required")
		return
	}
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fechaInicio, expected RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fechaFin, expected RFC3339")
		return
	}

	detail, err := h.booking.RequestBooking(r.Context(), req.RoomID, start, end, middleware.UserID(r.Context()), req.Reason)
	if err != nil {
		h.writeBookingError(w, "create reservation", err)
		return
	}
	respondData(w, http.StatusCreated, detail)
}

func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	list, err := h.booking.ListBookings(ctx, middleware.UserID(ctx), middleware.Role(ctx))
	if err != nil {
		h.respondInternal(w, "list reservations", err)
		return
	}
	if list == nil {
		list = []model.ReservationDetail{}
	}
	respondList(w, list, len(list))
}

func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	detail, err := h.booking.GetBooking(ctx, ps.ByName("id"), middleware.UserID(ctx), middleware.Role(ctx))
	if err != nil {
		h.writeBookingError(w, "get reservation", err)
		return
	}
	respondData(w, http.StatusOK, detail)
}

func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	res, err := h.booking.CancelBooking(ctx, ps.ByName("id"), middleware.UserID(ctx), middleware.Role(ctx))
	if err != nil {
		h.writeBookingError(w, "cancel reservation", err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "reservation cancelled", Data: res})
}

// writeBookingError maps the admission controller's taxonomy onto HTTP.
// Business-rule rejections (including conflicts, as the original API) are
// 400s; only storage faults become 500s.
func (h *Handler) writeBookingError(w http.ResponseWriter, op string, err error) {
	var conflict *booking.ConflictError
	switch {
	case errors.Is(err, booking.ErrRoomNotFound):
		respondError(w, http.StatusNotFound, "room not found")
	case errors.Is(err, booking.ErrReservationNotFound):
		respondError(w, http.StatusNotFound, "reservation not found")
	case errors.Is(err, booking.ErrForbidden):
		respondError(w, http.StatusForbidden, "not authorized for this reservation")
	case errors.Is(err, booking.ErrRoomUnavailable),
		errors.Is(err, booking.ErrPastStart),
		errors.Is(err, booking.ErrInvalidWindow):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &conflict):
		respondError(w, http.StatusBadRequest, conflict.Error())
	default:
		h.respondInternal(w, op, err)
	}
}
