package store

import (
	"context"

	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/model"
)

const detailColumns = `
	res.id, res.user_id, res.room_id, res.start_time, res.end_time,
	res.status, res.reason, res.created_at,
	COALESCE(u.name, ''), COALESCE(u.email, ''),
	COALESCE(rm.name, ''), COALESCE(rm.capacity, 0), COALESCE(rm.location, '')`

const detailJoins = `
	FROM reservations res
	LEFT JOIN users u ON u.id = res.user_id
	LEFT JOIN rooms rm ON rm.id = res.room_id`

// CreateReservation persists a new reservation. The table's CHECK and
// exclusion constraints re-validate the window and serialize concurrent
// bookings; violations come back as ErrInvalidWindow and ErrConflict.
func (s *Store) CreateReservation(ctx context.Context, r *model.Reservation) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO reservations (id, user_id, room_id, start_time, end_time, status, reason)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING created_at`,
		r.ID, r.UserID, r.RoomID, r.Start, r.End, r.Status, r.Reason,
	).Scan(&r.CreatedAt)
	return translate(err)
}

// ActiveReservationsByRoom returns the room's non-cancelled reservations,
// the candidate conflict set for admission checks.
func (s *Store) ActiveReservationsByRoom(ctx context.Context, roomID string) ([]model.Reservation, error) {
	if !validID(roomID) {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, room_id, start_time, end_time, status, reason, created_at
		 FROM reservations
		 WHERE room_id = $1 AND status <> $2
		 ORDER BY start_time`, roomID, model.StatusCancelled,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		var r model.Reservation
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.RoomID, &r.Start, &r.End,
			&r.Status, &r.Reason, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ReservationByID(ctx context.Context, id string) (*model.Reservation, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	r := &model.Reservation{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, room_id, start_time, end_time, status, reason, created_at
		 FROM reservations WHERE id = $1`, id,
	).Scan(&r.ID, &r.UserID, &r.RoomID, &r.Start, &r.End, &r.Status, &r.Reason, &r.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return r, nil
}

// SetReservationStatus updates the status in place. Setting the current
// status again succeeds, which makes cancellation idempotent.
func (s *Store) SetReservationStatus(ctx context.Context, id, status string) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE reservations SET status = $1 WHERE id = $2`, status, id,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ReservationDetail(ctx context.Context, id string) (*model.ReservationDetail, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	d := &model.ReservationDetail{}
	err := s.pool.QueryRow(ctx,
		`SELECT`+detailColumns+detailJoins+` WHERE res.id = $1`, id,
	).Scan(
		&d.ID, &d.User.ID, &d.Room.ID, &d.Start, &d.End,
		&d.Status, &d.Reason, &d.CreatedAt,
		&d.User.Name, &d.User.Email,
		&d.Room.Name, &d.Room.Capacity, &d.Room.Location,
	)
	if err != nil {
		return nil, translate(err)
	}
	return d, nil
}

// ListReservationDetails returns denormalized reservations newest first.
// An empty userID lists every reservation (admin view).
func (s *Store) ListReservationDetails(ctx context.Context, userID string) ([]model.ReservationDetail, error) {
	q := `SELECT` + detailColumns + detailJoins
	args := []any{}
	if userID != "" {
		if !validID(userID) {
			return nil, nil
		}
		q += ` WHERE res.user_id = $1`
		args = append(args, userID)
	}
	q += ` ORDER BY res.created_at DESC`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.ReservationDetail
	for rows.Next() {
		var d model.ReservationDetail
		if err := rows.Scan(
			&d.ID, &d.User.ID, &d.Room.ID, &d.Start, &d.End,
			&d.Status, &d.Reason, &d.CreatedAt,
			&d.User.Name, &d.User.Email,
			&d.Room.Name, &d.Room.Capacity, &d.Room.Location,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
