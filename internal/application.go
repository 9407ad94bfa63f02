package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/gridgame-engine/internal/board"
	"github.com/rocketscienceinc/gridgame-engine/internal/config"
	"github.com/rocketscienceinc/gridgame-engine/internal/repository"
	"github.com/rocketscienceinc/gridgame-engine/internal/repository/storage"
	"github.com/rocketscienceinc/gridgame-engine/internal/usecase"
	"github.com/rocketscienceinc/gridgame-engine/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sessionRepo := repository.NewSessionRepository(redisStorage.Connection)
	sessionManager := usecase.NewSessionManager(logger, sessionRepo)

	state, err := sessionManager.CreateSession(ctx, conf.Board.Rows, conf.Board.Cols,
		board.NewPlayer(board.RolePlayer1, "Player 1"),
		board.NewPlayer(board.RolePlayer2, "Player 2"),
	)
	if err != nil {
		return fmt.Errorf("could not create session: %w", err)
	}

	log.Info("session ready", "session_id", state.ID, "turn", state.Turn)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort, sessionManager); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
