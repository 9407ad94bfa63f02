package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rocketscienceinc/gridgame-engine/internal/gridgame"
)

type sessionReader interface {
	GetState(ctx context.Context, id string) (gridgame.State, error)
}

// Start - starts the read-only HTTP surface: liveness plus session snapshots.
// Moves never travel over HTTP; this is an observability endpoint only.
func Start(port string, sessions sessionReader) error {
	h := &handlers{sessions: sessions}

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/session/", h.sessionState)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
