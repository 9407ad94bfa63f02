package usecase

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gridgame-engine/internal/apperror"
	bd "github.com/rocketscienceinc/gridgame-engine/internal/board"
	"github.com/rocketscienceinc/gridgame-engine/internal/gridgame"
)

// memoryRepo is an in-memory stand-in for the redis-backed repository.
type memoryRepo struct {
	mu        sync.Mutex
	snapshots map[string]gridgame.State
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{snapshots: make(map[string]gridgame.State)}
}

func (that *memoryRepo) CreateOrUpdate(_ context.Context, state gridgame.State) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.snapshots[state.ID] = state

	return nil
}

func (that *memoryRepo) GetByID(_ context.Context, id string) (gridgame.State, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	state, ok := that.snapshots[id]
	if !ok {
		return gridgame.State{}, apperror.ErrSessionNotFound
	}

	return state, nil
}

func (that *memoryRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.snapshots[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.snapshots, id)

	return nil
}

func newTestManager() (*SessionManager, *memoryRepo) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	repo := newMemoryRepo()

	return NewSessionManager(logger, repo), repo
}

func TestSessionManager_CreateSession(t *testing.T) {
	ctx := context.Background()

	// Given: a manager over an empty repository
	manager, repo := newTestManager()

	// When: creating a session
	state, err := manager.CreateSession(ctx, 3, 3,
		bd.NewPlayer(bd.RolePlayer1, "Left"),
		bd.NewPlayer(bd.RolePlayer2, "Right"),
	)

	// Then: the session starts fresh and its snapshot is published
	require.NoError(t, err)
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, bd.RolePlayer1, state.Turn)
	assert.Equal(t, gridgame.StatusInProgress, state.Status)

	published, err := repo.GetByID(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, state.ID, published.ID)
}

func TestSessionManager_GetState(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the live session snapshot", func(t *testing.T) {
		// Given: a live session
		manager, _ := newTestManager()
		created, err := manager.CreateSession(ctx, 3, 3)
		require.NoError(t, err)

		// When: reading its state
		state, err := manager.GetState(ctx, created.ID)

		// Then: it matches the created session
		require.NoError(t, err)
		assert.Equal(t, created, state)
	})

	t.Run("Unknown session yields ErrSessionNotFound", func(t *testing.T) {
		// Given: a manager with no sessions
		manager, _ := newTestManager()

		// When: reading an unknown id
		_, err := manager.GetState(ctx, "missing")

		// Then: the not-found sentinel comes back
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionManager_SubmitMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies the move and publishes the new state", func(t *testing.T) {
		// Given: a live session
		manager, repo := newTestManager()
		created, err := manager.CreateSession(ctx, 3, 3)
		require.NoError(t, err)

		// When: player one moves
		state, err := manager.SubmitMove(ctx, created.ID, bd.Move{Piece: bd.X, Location: 0}, bd.RolePlayer1)

		// Then: the state advanced and the snapshot was re-published
		require.NoError(t, err)
		assert.Equal(t, bd.RolePlayer2, state.Turn)

		published, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, bd.X, published.Board.CellAt(0))
	})

	t.Run("Rejections pass through as illegal moves", func(t *testing.T) {
		// Given: a live session
		manager, _ := newTestManager()
		created, err := manager.CreateSession(ctx, 3, 3)
		require.NoError(t, err)

		// When: player two moves out of turn
		_, err = manager.SubmitMove(ctx, created.ID, bd.Move{Piece: bd.O, Location: 0}, bd.RolePlayer2)

		// Then: the rejection is classified as an illegal move
		require.Error(t, err)
		assert.True(t, apperror.IsIllegalMove(err))
	})

	t.Run("Unknown session yields ErrSessionNotFound", func(t *testing.T) {
		manager, _ := newTestManager()

		_, err := manager.SubmitMove(ctx, "missing", bd.Move{Piece: bd.X, Location: 0}, bd.RolePlayer1)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionManager_ResetSession(t *testing.T) {
	ctx := context.Background()

	// Given: a session with moves played
	manager, repo := newTestManager()
	created, err := manager.CreateSession(ctx, 3, 3)
	require.NoError(t, err)

	_, err = manager.SubmitMove(ctx, created.ID, bd.Move{Piece: bd.X, Location: 4}, bd.RolePlayer1)
	require.NoError(t, err)

	// When: resetting
	state, err := manager.ResetSession(ctx, created.ID)

	// Then: the session is fresh again and the fresh snapshot published
	require.NoError(t, err)
	assert.Equal(t, gridgame.StatusInProgress, state.Status)
	assert.Equal(t, bd.RolePlayer1, state.Turn)
	assert.Equal(t, bd.Empty, state.Board.CellAt(4))

	published, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, bd.Empty, published.Board.CellAt(4))
}

func TestSessionManager_GuardedReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Consults the hook while the game is in progress", func(t *testing.T) {
		// Given: an in-progress session and a declining confirmation hook
		manager, _ := newTestManager()
		created, err := manager.CreateSession(ctx, 3, 3)
		require.NoError(t, err)

		asked := false
		decline := func() bool {
			asked = true
			return false
		}

		// When: asking for a guarded reset
		_, err = manager.GuardedReset(ctx, created.ID, decline)

		// Then: the hook was consulted and the reset declined
		assert.True(t, asked)
		require.ErrorIs(t, err, apperror.ErrResetDeclined)

		state, err := manager.GetState(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, gridgame.StatusInProgress, state.Status)
	})

	t.Run("Resets a terminal game without asking", func(t *testing.T) {
		// Given: a finished game
		manager, _ := newTestManager()
		created, err := manager.CreateSession(ctx, 3, 3)
		require.NoError(t, err)

		moves := []struct {
			role  bd.Role
			index int
		}{
			{bd.RolePlayer1, 0},
			{bd.RolePlayer2, 3},
			{bd.RolePlayer1, 1},
			{bd.RolePlayer2, 4},
			{bd.RolePlayer1, 2},
		}
		for _, move := range moves {
			_, err = manager.SubmitMove(ctx, created.ID, bd.Move{Piece: move.role.Piece(), Location: move.index}, move.role)
			require.NoError(t, err)
		}

		// When: asking for a guarded reset with a hook that must not fire
		state, err := manager.GuardedReset(ctx, created.ID, func() bool {
			t.Fatal("confirmation hook must not run for a terminal game")
			return false
		})

		// Then: the reset went through immediately
		require.NoError(t, err)
		assert.Equal(t, gridgame.StatusInProgress, state.Status)
	})
}

func TestSessionManager_CloseSession(t *testing.T) {
	ctx := context.Background()

	// Given: a live session
	manager, repo := newTestManager()
	created, err := manager.CreateSession(ctx, 3, 3)
	require.NoError(t, err)

	// When: closing it
	err = manager.CloseSession(ctx, created.ID)

	// Then: both the live session and its snapshot are gone
	require.NoError(t, err)

	_, err = manager.GetState(ctx, created.ID)
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)

	_, err = repo.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
