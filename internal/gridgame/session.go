package gridgame

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/gridgame-engine/internal/apperror"
	"github.com/rocketscienceinc/gridgame-engine/internal/board"
)

const (
	StatusInProgress = "in_progress"
	StatusPlayer1Won = "player1_won"
	StatusPlayer2Won = "player2_won"
	StatusDraw       = "draw"
)

// State is a read-only snapshot of a session.
type State struct {
	ID      string         `json:"id"`
	Board   board.Board    `json:"board"`
	Turn    board.Role     `json:"turn"`
	Status  string         `json:"status"`
	Players []board.Player `json:"players,omitempty"`
}

// IsTerminal reports whether the game has ended. A terminal status is
// monotonic: it only goes away on an explicit reset.
func (that State) IsTerminal() bool {
	return that.Status != StatusInProgress
}

// Session owns one game's authoritative board, turn and status. It is the
// single writer: every change to the board funnels through SubmitMove or
// Reset, and a mutex serializes applies so each move validates against the
// board produced by the previous one.
type Session struct {
	mu sync.Mutex

	id      string
	rows    int
	cols    int
	board   board.Board
	turn    board.Role
	status  string
	players []board.Player
}

// NewSession returns a fresh in-progress session with an empty rows×cols
// board and player one to move.
func NewSession(id string, rows, cols int, players ...board.Player) *Session {
	return &Session{
		id:      id,
		rows:    rows,
		cols:    cols,
		board:   board.New(rows, cols),
		turn:    board.RolePlayer1,
		status:  StatusInProgress,
		players: players,
	}
}

func (that *Session) ID() string {
	return that.id
}

// Snapshot returns the current authoritative state.
func (that *Session) Snapshot() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// SubmitMove validates the move against the very latest state, applies it,
// evaluates the result and advances the turn. On any rejection the session is
// left exactly as it was; a move is never partially applied.
func (that *Session) SubmitMove(move board.Move, role board.Role) (State, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status != StatusInProgress {
		return State{}, apperror.ErrGameFinished
	}

	if !that.board.InBounds(move.Location) {
		return State{}, fmt.Errorf("%w: cell %d", apperror.ErrIndexOutOfRange, move.Location)
	}

	if that.turn != role {
		return State{}, apperror.ErrNotYourTurn
	}

	if move.Piece != role.Piece() {
		return State{}, apperror.ErrWrongPiece
	}

	if that.board.CellAt(move.Location) != board.Empty {
		return State{}, apperror.ErrCellOccupied
	}

	next, err := that.board.WithCellSet(move.Location, move.Piece)
	if err != nil {
		return State{}, fmt.Errorf("failed to place piece: %w", err)
	}

	that.board = next

	switch {
	case Evaluate(next, move).Win:
		that.status = winStatus(role)
	case next.IsFull():
		that.status = StatusDraw
	}

	// The turn flips even on a terminal result. Status, not turn, gates
	// further submissions.
	that.turn = role.Other()

	return that.snapshotLocked(), nil
}

// Reset unconditionally replaces the game with a fresh one: empty board,
// player one to move, in progress. It is always legal.
func (that *Session) Reset() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.board = board.New(that.rows, that.cols)
	that.turn = board.RolePlayer1
	that.status = StatusInProgress

	return that.snapshotLocked()
}

func (that *Session) snapshotLocked() State {
	players := make([]board.Player, len(that.players))
	copy(players, that.players)

	return State{
		ID:      that.id,
		Board:   that.board,
		Turn:    that.turn,
		Status:  that.status,
		Players: players,
	}
}

func winStatus(role board.Role) string {
	if role == board.RolePlayer1 {
		return StatusPlayer1Won
	}

	return StatusPlayer2Won
}
