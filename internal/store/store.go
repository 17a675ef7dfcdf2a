// Package store is the pgx access layer. Every method returns the
// package sentinels below for the failure modes callers branch on;
// anything else is a storage fault.
package store

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate value for unique field")
	ErrConflict      = errors.New("overlapping reservation")
	ErrInvalidWindow = errors.New("end must be after start")
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrDuplicate
		case "23P01": // exclusion_violation (reservation window race)
			return ErrConflict
		case "23514": // check_violation (end_time > start_time)
			return ErrInvalidWindow
		}
	}
	return err
}

// validID rejects malformed identifiers up front; Postgres would fail the
// uuid cast with a type error instead of reporting no rows.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
