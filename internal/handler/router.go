package handler

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/middleware"
)

// Router wires the full route table. Shared by cmd/server and the
// integration tests.
func Router(h *Handler, secret string, rl *middleware.RateLimiter) *httprouter.Router {
	r := httprouter.New()

	r.GET("/", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		respondData(w, http.StatusOK, map[string]string{
			"message": "Reservas Biblioteca API",
			"version": "1.0.0",
		})
	})
	r.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		fmt.Fprint(w, "200")
	})

	// auth
	r.POST("/api/auth/register", middleware.RateLimit(rl, h.Register))
	r.POST("/api/auth/login", middleware.RateLimit(rl, h.Login))
	r.GET("/api/auth/me", middleware.Authenticate(secret, h.Me))

	// rooms: reads are public, mutations admin-only
	r.GET("/api/salas", h.ListRooms)
	r.GET("/api/salas/:id", h.GetRoom)
	r.GET("/api/salas/:id/disponibilidad", h.CheckAvailability)
	r.POST("/api/salas", middleware.Authenticate(secret, middleware.RequireAdmin(h.CreateRoom)))
	r.PUT("/api/salas/:id", middleware.Authenticate(secret, middleware.RequireAdmin(h.UpdateRoom)))
	r.DELETE("/api/salas/:id", middleware.Authenticate(secret, middleware.RequireAdmin(h.DeleteRoom)))

	// reservations
	r.GET("/api/reservas", middleware.Authenticate(secret, h.ListReservations))
	r.POST("/api/reservas", middleware.Authenticate(secret, h.CreateReservation))
	r.GET("/api/reservas/:id", middleware.Authenticate(secret, h.GetReservation))
	r.DELETE("/api/reservas/:id", middleware.Authenticate(secret, h.CancelReservation))

	return r
}
