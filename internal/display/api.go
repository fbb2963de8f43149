package display

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/saaga0h/jeeves-clock/internal/berlinclock"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 1000
)

// RegisterRoutes mounts the display's read API on r:
//
//	GET /api/state            latest stored lamp state
//	GET /api/history?limit=N  recent lamp states, newest first
//	GET /api/convert/{time}   lamp state for an HH:MM:SS time
func (a *Agent) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/state", a.handleState).Methods(http.MethodGet)
	r.HandleFunc("/api/history", a.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/api/convert/{time}", a.handleConvertRequest).Methods(http.MethodGet)
}

func (a *Agent) handleState(w http.ResponseWriter, r *http.Request) {
	state, err := a.storage.LoadState(r.Context(), a.cfg.DisplayID)
	if err != nil {
		a.logger.Error("Failed to load lamp state", "error", err)
		a.writeError(w, http.StatusServiceUnavailable, "lamp state unavailable")
		return
	}
	if state == nil {
		a.writeError(w, http.StatusNotFound, "no lamp state stored")
		return
	}
	a.writeJSON(w, http.StatusOK, state)
}

func (a *Agent) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			a.writeError(w, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = n
	}

	history, err := a.storage.LoadHistory(r.Context(), a.cfg.DisplayID, limit)
	if err != nil {
		a.logger.Error("Failed to load lamp history", "error", err)
		a.writeError(w, http.StatusServiceUnavailable, "lamp history unavailable")
		return
	}
	a.writeJSON(w, http.StatusOK, history)
}

func (a *Agent) handleConvertRequest(w http.ResponseWriter, r *http.Request) {
	input := mux.Vars(r)["time"]

	t, err := berlinclock.ParseTime(input)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	grid, err := berlinclock.Convert(t)
	if errors.Is(err, berlinclock.ErrInvalidTime) {
		a.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.writeJSON(w, http.StatusOK, NewStatePayload(a.cfg.DisplayID, t, grid, a.timeManager.Now()))
}

func (a *Agent) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]string{"error": message})
}

func (a *Agent) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Error("Failed to encode API response", "error", err)
	}
}
