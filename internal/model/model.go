package model

import "time"

// Role values stored on users and carried in the token's role claim.
const (
	RoleUser  = "usuario"
	RoleAdmin = "admin"
)

// Reservation status values. StatusPending is part of the enum but the
// booking flow always creates reservations as StatusConfirmed; no code
// path produces it today.
const (
	StatusPending   = "pendiente"
	StatusConfirmed = "confirmada"
	StatusCancelled = "cancelada"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"nombre"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"rol"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

type Room struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Capacity    int       `json:"capacidad"`
	Location    string    `json:"ubicacion"`
	Description string    `json:"descripcion"`
	Equipment   []string  `json:"equipamiento"`
	Available   bool      `json:"disponible"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}

type Reservation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"usuario"`
	RoomID    string    `json:"sala"`
	Start     time.Time `json:"fechaInicio"`
	End       time.Time `json:"fechaFin"`
	Status    string    `json:"estado"`
	Reason    string    `json:"motivo"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoomSummary and UserSummary are the read-side projections attached to
// reservations for display. Zero-valued when the referenced row is gone.
type RoomSummary struct {
	ID       string `json:"id"`
	Name     string `json:"nombre"`
	Capacity int    `json:"capacidad"`
	Location string `json:"ubicacion"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
}

// ReservationDetail is a Reservation denormalized with its room and user
// summaries, the shape returned by the list/get endpoints.
type ReservationDetail struct {
	ID        string      `json:"id"`
	User      UserSummary `json:"usuario"`
	Room      RoomSummary `json:"sala"`
	Start     time.Time   `json:"fechaInicio"`
	End       time.Time   `json:"fechaFin"`
	Status    string      `json:"estado"`
	Reason    string      `json:"motivo"`
	CreatedAt time.Time   `json:"createdAt"`
}
