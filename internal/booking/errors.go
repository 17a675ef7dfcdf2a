package booking

import (
	"errors"
	"fmt"

	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/model"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrRoomUnavailable     = errors.New("room is not available")
	ErrPastStart           = errors.New("start time cannot be in the past")
	ErrInvalidWindow       = errors.New("end time must be after start time")
	ErrForbidden           = errors.New("not authorized for this reservation")
)

// ConflictError reports a rejected booking along with the reservations it
// clashed with. Conflicts is empty when the overlap was caught by the
// database gate rather than the admission check.
type ConflictError struct {
	Conflicts []model.Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room already booked in that window (%d conflicting reservations)", len(e.Conflicts))
}
