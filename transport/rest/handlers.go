package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rocketscienceinc/gridgame-engine/internal/apperror"
)

type handlers struct {
	sessions sessionReader
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// sessionState - serves a read-only snapshot of one session.
func (that *handlers) sessionState(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/session/")
	if id == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return
	}

	state, err := that.sessions.GetState(r.Context(), id)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(state); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
