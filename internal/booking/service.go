// Package booking is the admission controller: it decides whether a
// candidate reservation may be persisted and owns the cancellation and
// availability rules.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/interval"
	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/model"
	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/store"
)

// Store is the slice of the access layer the controller needs.
type Store interface {
	RoomByID(ctx context.Context, id string) (*model.Room, error)
	ActiveReservationsByRoom(ctx context.Context, roomID string) ([]model.Reservation, error)
	CreateReservation(ctx context.Context, r *model.Reservation) error
	ReservationByID(ctx context.Context, id string) (*model.Reservation, error)
	SetReservationStatus(ctx context.Context, id, status string) error
	ReservationDetail(ctx context.Context, id string) (*model.ReservationDetail, error)
	ListReservationDetails(ctx context.Context, userID string) ([]model.ReservationDetail, error)
}

type Service struct {
	store Store
}

func NewService(st Store) *Service {
	return &Service{store: st}
}

// RequestBooking validates a candidate reservation and persists it as
// confirmed. Checks run in a fixed order and the first failure wins:
// room exists, room available, start not in the past, end after start,
// no overlap with the room's active reservations.
func (s *Service) RequestBooking(ctx context.Context, roomID string, start, end time.Time, userID, reason string) (*model.ReservationDetail, error) {
	room, err := s.store.RoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.Available {
		return nil, ErrRoomUnavailable
	}
	if start.Before(time.Now()) {
		return nil, ErrPastStart
	}

	candidate := interval.Window{Start: start, End: end}
	if !candidate.Valid() {
		return nil, ErrInvalidWindow
	}

	existing, err := s.store.ActiveReservationsByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if conflicts := overlapping(existing, candidate); len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	r := &model.Reservation{
		ID:     uuid.New().String(),
		UserID: userID,
		RoomID: roomID,
		Start:  start,
		End:    end,
		Status: model.StatusConfirmed,
		Reason: reason,
	}
	if err := s.store.CreateReservation(ctx, r); err != nil {
		// a concurrent booking won the window between check and insert
		if errors.Is(err, store.ErrConflict) {
			return nil, &ConflictError{}
		}
		if errors.Is(err, store.ErrInvalidWindow) {
			return nil, ErrInvalidWindow
		}
		return nil, err
	}

	return s.store.ReservationDetail(ctx, r.ID)
}

// CancelBooking marks the reservation cancelled without deleting it.
// Only the owner or an admin may cancel; cancelling an already-cancelled
// reservation succeeds.
func (s *Service) CancelBooking(ctx context.Context, id, userID, role string) (*model.Reservation, error) {
	r, err := s.store.ReservationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if r.UserID != userID && role != model.RoleAdmin {
		return nil, ErrForbidden
	}

	if err := s.store.SetReservationStatus(ctx, id, model.StatusCancelled); err != nil {
		return nil, err
	}
	r.Status = model.StatusCancelled
	return r, nil
}

// Availability is the read-only answer for a candidate window.
type Availability struct {
	RoomName  string
	Available bool
	Conflicts []model.Reservation
}

// CheckAvailability reports whether the window is free: no overlapping
// active reservations and the room's availability flag set. Persists
// nothing.
func (s *Service) CheckAvailability(ctx context.Context, roomID string, start, end time.Time) (*Availability, error) {
	room, err := s.store.RoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	candidate := interval.Window{Start: start, End: end}
	if !candidate.Valid() {
		return nil, ErrInvalidWindow
	}

	existing, err := s.store.ActiveReservationsByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	conflicts := overlapping(existing, candidate)

	return &Availability{
		RoomName:  room.Name,
		Available: len(conflicts) == 0 && room.Available,
		Conflicts: conflicts,
	}, nil
}

// GetBooking returns the denormalized reservation, owner or admin only.
func (s *Service) GetBooking(ctx context.Context, id, userID, role string) (*model.ReservationDetail, error) {
	d, err := s.store.ReservationDetail(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if d.User.ID != userID && role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return d, nil
}

// ListBookings returns the caller's reservations, or every reservation
// for admins.
func (s *Service) ListBookings(ctx context.Context, userID, role string) ([]model.ReservationDetail, error) {
	if role == model.RoleAdmin {
		return s.store.ListReservationDetails(ctx, "")
	}
	return s.store.ListReservationDetails(ctx, userID)
}

func overlapping(existing []model.Reservation, candidate interval.Window) []model.Reservation {
	var out []model.Reservation
	for _, r := range existing {
		w := interval.Window{Start: r.Start, End: r.End}
		if interval.Overlaps(w, candidate) {
			out = append(out, r)
		}
	}
	return out
}
