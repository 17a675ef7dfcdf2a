package store

import (
	"context"

	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/model"
)

func (s *Store) CreateRoom(ctx context.Context, r *model.Room) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO rooms (id, name, capacity, location, description, equipment, available)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		r.ID, r.Name, r.Capacity, r.Location, r.Description, r.Equipment, r.Available,
	)
	return translate(err)
}

func (s *Store) Rooms(ctx context.Context) ([]model.Room, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, capacity, location, description, equipment, available, created_at, updated_at
		 FROM rooms ORDER BY name`,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.Room
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Capacity, &r.Location, &r.Description,
			&r.Equipment, &r.Available, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) RoomByID(ctx context.Context, id string) (*model.Room, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	r := &model.Room{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, capacity, location, description, equipment, available, created_at, updated_at
		 FROM rooms WHERE id = $1`, id,
	).Scan(&r.ID, &r.Name, &r.Capacity, &r.Location, &r.Description,
		&r.Equipment, &r.Available, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return r, nil
}

func (s *Store) UpdateRoom(ctx context.Context, r *model.Room) error {
	if !validID(r.ID) {
		return ErrNotFound
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE rooms
		 SET name=$1, capacity=$2, location=$3, description=$4, equipment=$5, available=$6, updated_at=NOW()
		 WHERE id=$7`,
		r.Name, r.Capacity, r.Location, r.Description, r.Equipment, r.Available, r.ID,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRoom removes the room row only. Reservation history keeps its
// room_id reference and survives; read-side joins degrade to an empty
// room summary.
func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
