package handler

import (
	"encoding/json"
	"log"
	"net/http"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Token   string `json:"token,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func respondData(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, envelope{Success: true, Data: data})
}

// respondList attaches the element count the way list endpoints do.
func respondList(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

func respondError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, envelope{Success: false, Message: msg})
}

// respondInternal logs the real error server-side and answers generically;
// the detail goes to the client only in dev mode.
func (h *Handler) respondInternal(w http.ResponseWriter, op string, err error) {
	log.Printf("%s: %v", op, err)
	env := envelope{Success: false, Message: "server error"}
	if h.dev {
		env.Error = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, env)
}
