// Package httpapi exposes the solver over HTTP.
package httpapi

import (
	"errors"
	"net/http"
	"net/http/pprof"

	"github.com/rs/zerolog"

	"github.com/tilegraph/api/internal/board"
	"github.com/tilegraph/api/internal/rank"
	"github.com/tilegraph/api/internal/search"
	"github.com/tilegraph/api/internal/store"
)

// Handler serves solve requests, consulting the trace cache first.
type Handler struct {
	solver *search.Solver
	traces *store.Store
	log    zerolog.Logger
}

// NewRouter builds the HTTP handler chain. traces is optional; without
// it every request runs a fresh search.
func NewRouter(log zerolog.Logger, solver *search.Solver, traces *store.Store) http.Handler {
	h := &Handler{
		solver: solver,
		traces: traces,
		log:    log,
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", http.HandlerFunc(h.health))
	mux.Handle("/readyz", http.HandlerFunc(h.health))
	mux.Handle("/v1/solve", http.HandlerFunc(h.solve))
	mux.Handle("/v1/stats", http.HandlerFunc(h.stats))

	// pprof endpoints
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return CORS(RequestID(AccessLog(log, mux)))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	solver := h.solver.Stats()
	body := map[string]any{
		"solves":     solver.Solves,
		"unsolvable": solver.Unsolvable,
	}
	if h.traces != nil {
		cache := h.traces.Stats()
		body["cache_entries"] = cache.Entries
		body["cache_hits"] = cache.Hits
		body["cache_misses"] = cache.Misses
		body["cache_writes"] = cache.Writes
	}
	writeJSON(w, body)
}

// solve handles GET /v1/solve?start=...&goal=...&blank=...
// start and goal are nine-symbol sequences; blank designates the empty
// slot's symbol and defaults to "0".
func (h *Handler) solve(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("start")
	goalParam := r.URL.Query().Get("goal")
	if startParam == "" || goalParam == "" {
		writeError(w, http.StatusBadRequest, "missing start or goal parameter")
		return
	}
	blankParam := r.URL.Query().Get("blank")
	if blankParam == "" {
		blankParam = "0"
	}
	blankRunes := []rune(blankParam)
	if len(blankRunes) != 1 {
		writeError(w, http.StatusBadRequest, "blank must be a single symbol")
		return
	}

	alpha, err := board.NewAlphabet([]rune(startParam), blankRunes[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := alpha.Translate([]rune(startParam))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, err := alpha.Translate([]rune(goalParam))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trace, cached, err := h.lookup(start, goal)
	if err != nil {
		switch {
		case errors.Is(err, board.ErrUnsolvable):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	resp := SolveResponse{
		Start:  startParam,
		Goal:   goalParam,
		Moves:  trace.Moves(),
		Cached: cached,
		Trace:  make([]string, 0, len(trace.States())),
	}
	for _, b := range trace.Boards() {
		resp.Trace = append(resp.Trace, alpha.Flatten(b))
	}
	writeJSON(w, resp)
}

// lookup serves from the trace cache when possible, solving and caching
// otherwise.
func (h *Handler) lookup(start, goal board.Board) (*search.Trace, bool, error) {
	if h.traces == nil {
		t, err := h.solver.Solve(start, goal)
		return t, false, err
	}

	startRank, goalRank := rank.Rank(start), rank.Rank(goal)
	if states := h.traces.Get(startRank, goalRank); states != nil {
		return search.NewTrace(states), true, nil
	}

	t, err := h.solver.Solve(start, goal)
	if err != nil {
		return nil, false, err
	}
	h.traces.Put(startRank, goalRank, t.States())
	return t, false, nil
}

// CORS allows browser clients from any origin; the API is read-only.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
