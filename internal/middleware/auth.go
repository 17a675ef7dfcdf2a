package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/auth"
	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/model"
)

type ctxKey string

const (
	UserIDKey ctxKey = "uid"
	RoleKey   ctxKey = "rol"
)

func deny(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}

// Authenticate requires a valid bearer token and stores the caller's id
// and role in the request context.
func Authenticate(secret string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		raw := r.Header.Get("Authorization")
		if raw == "" {
			deny(w, http.StatusUnauthorized, "missing token")
			return
		}
		if !strings.HasPrefix(raw, "Bearer ") {
			deny(w, http.StatusUnauthorized, "invalid token format")
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(raw, "Bearer "), secret)
		if err != nil {
			deny(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireAdmin sits behind Authenticate and gates admin-only routes.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if Role(r.Context()) != model.RoleAdmin {
			deny(w, http.StatusForbidden, "admin role required")
			return
		}
		next(w, r, ps)
	}
}

func UserID(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDKey).(string)
	return uid
}

func Role(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}
