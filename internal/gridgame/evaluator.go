package gridgame

import "github.com/rocketscienceinc/gridgame-engine/internal/board"

// Line names the board line a winning move completed.
type Line string

const (
	LineNone             Line = ""
	LineColumn           Line = "column"
	LineRow              Line = "row"
	LineForwardDiagonal  Line = "forward_diagonal"
	LineBackwardDiagonal Line = "backward_diagonal"
)

// Outcome is the evaluator's verdict on the most recent move.
type Outcome struct {
	Win  bool
	Line Line
}

// Evaluate checks whether lastMove completed a line. It is incremental: it
// assumes the board held no win before lastMove, so only the lines through
// lastMove.Location are inspected: its column, its row, and, on square
// boards only, the two full-length diagonals, in that order. It must run
// after every applied move, not only at the end of a game.
//
// Diagonal geometry is only correct when rows == cols; non-square boards are
// unsupported there and the diagonal checks are skipped.
func Evaluate(b board.Board, lastMove board.Move) Outcome {
	if lastMove.IsNone() || lastMove.Piece == board.Empty || !b.InBounds(lastMove.Location) {
		return Outcome{}
	}

	row := b.RowOf(lastMove.Location)
	col := b.ColOf(lastMove.Location)

	if lineFilledWith(b, b.ColumnLine(col), lastMove.Piece) {
		return Outcome{Win: true, Line: LineColumn}
	}

	if lineFilledWith(b, b.RowLine(row), lastMove.Piece) {
		return Outcome{Win: true, Line: LineRow}
	}

	if !b.IsSquare() {
		return Outcome{}
	}

	if row == col && lineFilledWith(b, b.ForwardDiagonal(), lastMove.Piece) {
		return Outcome{Win: true, Line: LineForwardDiagonal}
	}

	if row+col == b.Cols()-1 && lineFilledWith(b, b.BackwardDiagonal(), lastMove.Piece) {
		return Outcome{Win: true, Line: LineBackwardDiagonal}
	}

	return Outcome{}
}

// IsDraw reports a draw: the board is full and the move that filled the last
// cell produced no win. Win is always checked before draw.
func IsDraw(b board.Board, lastMove board.Move) bool {
	if !b.IsFull() {
		return false
	}

	return !Evaluate(b, lastMove).Win
}

// lineFilledWith reports whether every cell on the line holds piece. Empty
// never matches.
func lineFilledWith(b board.Board, line []int, piece board.Cell) bool {
	for _, index := range line {
		if b.CellAt(index) != piece {
			return false
		}
	}

	return true
}
