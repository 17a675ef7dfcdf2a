// Package handler exposes the HTTP/JSON surface. Every response uses the
// {success, data, count, message, error} envelope; business failures from
// the booking service are mapped to status codes here and nothing below
// this layer writes HTTP.
package handler

import (
	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/booking"
	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/store"
)

type Handler struct {
	store   *store.Store
	booking *booking.Service
	secret  string
	dev     bool
}

// New builds the handler set. dev controls whether internal error detail
// is included in responses.
func New(st *store.Store, svc *booking.Service, secret string, dev bool) *Handler {
	return &Handler{store: st, booking: svc, secret: secret, dev: dev}
}
