package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/abhisek/mapquiz/internal/progress"
)

type errorBody struct {
	Error string `json:"error"`
}

// respondWithError logs err (when set) and writes a JSON error body.
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	writeJSON(w, status, errorBody{Error: userMsg})
}

// respondWithEngineError maps engine errors onto HTTP statuses.
func respondWithEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, progress.ErrRegionNotFound):
		respondWithError(w, http.StatusNotFound, "invalid region", "", nil)
	case errors.Is(err, progress.ErrRegionLocked):
		respondWithError(w, http.StatusForbidden, "region locked", "", nil)
	case errors.Is(err, progress.ErrPersistence):
		respondWithError(w, http.StatusServiceUnavailable, "progress could not be saved, try again", "persist progress", err)
	case errors.Is(err, progress.ErrNotReady):
		respondWithError(w, http.StatusServiceUnavailable, "not ready", "engine", err)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error", "", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
