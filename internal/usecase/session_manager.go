package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gridgame-engine/internal/apperror"
	"github.com/rocketscienceinc/gridgame-engine/internal/board"
	"github.com/rocketscienceinc/gridgame-engine/internal/gridgame"
	"github.com/rocketscienceinc/gridgame-engine/internal/pkg"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, state gridgame.State) error
	GetByID(ctx context.Context, id string) (gridgame.State, error)
	DeleteByID(ctx context.Context, id string) error
}

// ConfirmFunc answers whether the user allows discarding a game still in
// progress. It is the presentation layer's confirmation hook.
type ConfirmFunc func() bool

// SessionManager is the engine-facing surface handed to presentation layers.
// It owns the live sessions, funnels every move through them and publishes
// each new authoritative state to the snapshot repository.
type SessionManager struct {
	logger *slog.Logger
	repo   sessionRepo

	mu       sync.RWMutex
	sessions map[string]*gridgame.Session
}

func NewSessionManager(logger *slog.Logger, repo sessionRepo) *SessionManager {
	return &SessionManager{
		logger:   logger,
		repo:     repo,
		sessions: make(map[string]*gridgame.Session),
	}
}

// CreateSession starts a fresh rows×cols game and publishes its initial
// state.
func (that *SessionManager) CreateSession(ctx context.Context, rows, cols int, players ...board.Player) (gridgame.State, error) {
	log := that.logger.With("method", "CreateSession")

	session := gridgame.NewSession(pkg.GenerateSessionID(), rows, cols, players...)

	that.mu.Lock()
	that.sessions[session.ID()] = session
	that.mu.Unlock()

	state := session.Snapshot()
	if err := that.publish(ctx, state); err != nil {
		return gridgame.State{}, err
	}

	log.Info("session created", "session_id", session.ID(), "rows", rows, "cols", cols)

	return state, nil
}

// GetState returns a read-only snapshot of the session. Sessions not live in
// this manager are looked up among the published snapshots.
func (that *SessionManager) GetState(ctx context.Context, id string) (gridgame.State, error) {
	if session, ok := that.session(id); ok {
		return session.Snapshot(), nil
	}

	state, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return gridgame.State{}, fmt.Errorf("failed to get session state: %w", err)
	}

	return state, nil
}

// SubmitMove applies a move for role and publishes the new authoritative
// state. Rejections leave the session untouched.
func (that *SessionManager) SubmitMove(ctx context.Context, id string, move board.Move, role board.Role) (gridgame.State, error) {
	log := that.logger.With("method", "SubmitMove")

	session, ok := that.session(id)
	if !ok {
		return gridgame.State{}, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	state, err := session.SubmitMove(move, role)
	if err != nil {
		return gridgame.State{}, fmt.Errorf("failed to submit move: %w", err)
	}

	if err = that.publish(ctx, state); err != nil {
		return gridgame.State{}, err
	}

	if state.IsTerminal() {
		log.Info("game finished", "session_id", id, "status", state.Status)
	}

	return state, nil
}

// ResetSession unconditionally replaces the game with a fresh one and
// publishes it. It is always legal, whatever the current status.
func (that *SessionManager) ResetSession(ctx context.Context, id string) (gridgame.State, error) {
	log := that.logger.With("method", "ResetSession")

	session, ok := that.session(id)
	if !ok {
		return gridgame.State{}, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	state := session.Reset()
	if err := that.publish(ctx, state); err != nil {
		return gridgame.State{}, err
	}

	log.Info("session reset", "session_id", id)

	return state, nil
}

// GuardedReset resets the session, consulting confirm first when the game is
// still in progress. A terminal game resets immediately without confirmation.
func (that *SessionManager) GuardedReset(ctx context.Context, id string, confirm ConfirmFunc) (gridgame.State, error) {
	session, ok := that.session(id)
	if !ok {
		return gridgame.State{}, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	if !session.Snapshot().IsTerminal() && confirm != nil && !confirm() {
		return gridgame.State{}, apperror.ErrResetDeclined
	}

	return that.ResetSession(ctx, id)
}

// CloseSession drops the live session and its published snapshot.
func (that *SessionManager) CloseSession(ctx context.Context, id string) error {
	log := that.logger.With("method", "CloseSession")

	that.mu.Lock()
	_, ok := that.sessions[id]
	delete(that.sessions, id)
	that.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	if err := that.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session snapshot: %w", err)
	}

	log.Info("session closed", "session_id", id)

	return nil
}

func (that *SessionManager) session(id string) (*gridgame.Session, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]

	return session, ok
}

func (that *SessionManager) publish(ctx context.Context, state gridgame.State) error {
	if err := that.repo.CreateOrUpdate(ctx, state); err != nil {
		return fmt.Errorf("failed to publish session state: %w", err)
	}

	return nil
}
