package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/booking"
	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/model"
	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/store"
)

type roomRequest struct {
	Name        string   `json:"nombre"`
	Capacity    int      `json:"capacidad"`
	Location    string   `json:"ubicacion"`
	Description string   `json:"descripcion"`
	Equipment   []string `json:"equipamiento"`
	Available   *bool    `json:"disponible"`
}

func (r *roomRequest) validate() string {
	if r.Name == "" {
		return "nombre is required"
	}
	if r.Capacity < 1 {
		return "capacidad must be at least 1"
	}
	if r.Location == "" {
		return "ubicacion is required"
	}
	return ""
}

func (r *roomRequest) toModel(id string) *model.Room {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	equipment := r.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	return &model.Room{
		ID:          id,
		Name:        r.Name,
		Capacity:    r.Capacity,
		Location:    r.Location,
		Description: r.Description,
		Equipment:   equipment,
		Available:   available,
	}
}

func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.store.Rooms(r.Context())
	if err != nil {
		h.respondInternal(w, "list rooms", err)
		return
	}
	if rooms == nil {
		rooms = []model.Room{}
	}
	respondList(w, rooms, len(rooms))
}

func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.store.RoomByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "room not found")
			return
		}
		h.respondInternal(w, "get room", err)
		return
	}
	respondData(w, http.StatusOK, room)
}

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	room := req.toModel(uuid.New().String())
	if err := h.store.CreateRoom(r.Context(), room); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondError(w, http.StatusBadRequest, "room name already exists")
			return
		}
		h.respondInternal(w, "create room", err)
		return
	}
	respondData(w, http.StatusCreated, room)
}

func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	room := req.toModel(ps.ByName("id"))
	if err := h.store.UpdateRoom(r.Context(), room); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondError(w, http.StatusNotFound, "room not found")
		case errors.Is(err, store.ErrDuplicate):
			respondError(w, http.StatusBadRequest, "room name already exists")
		default:
			h.respondInternal(w, "update room", err)
		}
		return
	}
	respondData(w, http.StatusOK, room)
}

func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.store.DeleteRoom(r.Context(), ps.ByName("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "room not found")
			return
		}
		h.respondInternal(w, "delete room", err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "room deleted", Data: struct{}{}})
}

// availabilityResponse mirrors the disponibilidad payload: room name, the
// verdict, and the conflicting set for transparency.
type availabilityResponse struct {
	Room      string              `json:"sala"`
	Available bool                `json:"disponible"`
	Count     int                 `json:"reservasConflictivas"`
	Conflicts []model.Reservation `json:"reservas"`
}

func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	q := r.URL.Query()
	rawStart, rawEnd := q.Get("fechaInicio"), q.Get("fechaFin")
	if rawStart == "" || rawEnd == "" {
		respondError(w, http.StatusBadRequest, "fechaInicio and fechaFin are required")
		return
	}
	start, err := time.Parse(time.RFC3339, rawStart)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fechaInicio, expected RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, rawEnd)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fechaFin, expected RFC3339")
		return
	}

	av, err := h.booking.CheckAvailability(r.Context(), ps.ByName("id"), start, end)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrRoomNotFound):
			respondError(w, http.StatusNotFound, "room not found")
		case errors.Is(err, booking.ErrInvalidWindow):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.respondInternal(w, "check availability", err)
		}
		return
	}

	conflicts := av.Conflicts
	if conflicts == nil {
		conflicts = []model.Reservation{}
	}
	respondData(w, http.StatusOK, availabilityResponse{
		Room:      av.RoomName,
		Available: av.Available,
		Count:     len(conflicts),
		Conflicts: conflicts,
	})
}
