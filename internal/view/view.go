package view

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/gridgame-engine/internal/apperror"
	"github.com/rocketscienceinc/gridgame-engine/internal/board"
	"github.com/rocketscienceinc/gridgame-engine/internal/gridgame"
)

// DefaultLatency is the simulated round trip between staging a move locally
// and the engine applying it.
const DefaultLatency = 300 * time.Millisecond

// SubmitFunc submits a move to the authoritative engine on behalf of a role.
type SubmitFunc func(ctx context.Context, move board.Move, role board.Role) (gridgame.State, error)

// SubmitResult carries the engine's answer to an asynchronous submission.
type SubmitResult struct {
	State gridgame.State
	Err   error
}

// PlayerView is one player's client-side staging area. It holds an
// uncommitted move and a local mirror of whose turn it is. The mirror is
// optimistic: EndTurn flips it before the engine answers, and any
// authoritative turn change unconditionally overwrites it. A view is owned by
// a single player and never shared.
type PlayerView struct {
	mu sync.Mutex

	player  board.Player
	submit  SubmitFunc
	latency time.Duration

	observed  gridgame.State
	localTurn board.Role
	staged    board.Move
	inFlight  bool
}

// New returns a view for player, seeded with the initial authoritative state.
// A latency of zero or less falls back to DefaultLatency; the submission
// delay must stay above zero so a second move cannot sneak in before the
// first resolves.
func New(player board.Player, submit SubmitFunc, latency time.Duration, initial gridgame.State) *PlayerView {
	if latency <= 0 {
		latency = DefaultLatency
	}

	return &PlayerView{
		player:    player,
		submit:    submit,
		latency:   latency,
		observed:  initial,
		localTurn: initial.Turn,
		staged:    board.NoMove(),
	}
}

func (that *PlayerView) Player() board.Player {
	return that.player
}

// LocalTurn returns the view's turn mirror, which may run ahead of the
// authoritative turn after an optimistic flip.
func (that *PlayerView) LocalTurn() board.Role {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.localTurn
}

// StagedMove returns the currently staged move, or the no-move sentinel.
func (that *PlayerView) StagedMove() board.Move {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.staged
}

// StageMove stages this player's piece at index. It is legal only on the
// player's own turn, on an authoritatively empty cell, with no submission in
// flight. Staging again before the turn ends simply moves the piece.
func (that *PlayerView) StageMove(index int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.observed.IsTerminal() {
		return apperror.ErrGameFinished
	}

	if that.localTurn != that.player.Role {
		return apperror.ErrNotYourTurn
	}

	if that.inFlight {
		return apperror.ErrMoveInFlight
	}

	if !that.observed.Board.InBounds(index) {
		return apperror.ErrIndexOutOfRange
	}

	if that.observed.Board.CellAt(index) != board.Empty {
		return apperror.ErrCellOccupied
	}

	that.staged = board.Move{Piece: that.player.Piece, Location: index}

	return nil
}

// EndTurn commits the staged move. The submission is asynchronous and not
// cancelable: after the configured latency the move is handed to the engine
// and the result delivered on the returned channel. The local turn mirror
// flips immediately; the authoritative update corrects it if the engine
// rejects the move.
func (that *PlayerView) EndTurn(ctx context.Context) (<-chan SubmitResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.staged.IsNone() {
		return nil, apperror.ErrNothingStaged
	}

	if that.inFlight {
		return nil, apperror.ErrMoveInFlight
	}

	move := that.staged
	that.inFlight = true
	that.localTurn = that.player.Role.Other()

	done := make(chan SubmitResult, 1)

	time.AfterFunc(that.latency, func() {
		state, err := that.submit(ctx, move, that.player.Role)

		that.mu.Lock()
		that.inFlight = false
		that.mu.Unlock()

		done <- SubmitResult{State: state, Err: err}
	})

	return done, nil
}

// Observe ingests a new authoritative snapshot. When the authoritative turn
// changed (this player's move was committed or the opponent's turn began),
// the staged move is cleared and the local mirror overwritten.
func (that *PlayerView) Observe(state gridgame.State) {
	that.mu.Lock()
	defer that.mu.Unlock()

	turnChanged := state.Turn != that.observed.Turn
	that.observed = state

	if turnChanged {
		that.staged = board.NoMove()
		that.localTurn = state.Turn
	}
}

// CellAt applies the rendering rule: the cell this player has staged shows
// their piece ahead of the authoritative update; every other cell reflects
// the authoritative board.
func (that *PlayerView) CellAt(index int) board.Cell {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.staged.IsNone() && that.staged.Location == index {
		return that.staged.Piece
	}

	return that.observed.Board.CellAt(index)
}
