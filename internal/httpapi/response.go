package httpapi

import (
	"encoding/json"
	"net/http"
)

// SolveResponse is the JSON-friendly solution for a solve query.
type SolveResponse struct {
	Start  string   `json:"start"`
	Goal   string   `json:"goal"`
	Moves  int      `json:"moves"`
	Cached bool     `json:"cached,omitempty"`
	Trace  []string `json:"trace"` // each entry: nine symbols, slot order
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
