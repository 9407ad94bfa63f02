package board

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gridgame-engine/internal/apperror"
)

// Board is a fixed-size grid of cells. Index i maps to row i/cols and column
// i%cols. A board handed out to a caller is never mutated: every update goes
// through WithCellSet, which returns a fresh copy.
type Board struct {
	rows  int
	cols  int
	cells []Cell
}

// New returns a rows×cols board with every cell Empty.
func New(rows, cols int) Board {
	return Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

func (that Board) Rows() int { return that.rows }

func (that Board) Cols() int { return that.cols }

// Size returns the number of cells on the board.
func (that Board) Size() int { return that.rows * that.cols }

func (that Board) InBounds(index int) bool {
	return index >= 0 && index < len(that.cells)
}

// CellAt returns the cell at index, or Empty when index is out of range.
func (that Board) CellAt(index int) Cell {
	if !that.InBounds(index) {
		return Empty
	}

	return that.cells[index]
}

// WithCellSet returns a copy of the board with index holding piece. The
// receiver is left untouched.
func (that Board) WithCellSet(index int, piece Cell) (Board, error) {
	if !that.InBounds(index) {
		return Board{}, fmt.Errorf("%w: cell %d", apperror.ErrIndexOutOfRange, index)
	}

	next := Board{
		rows:  that.rows,
		cols:  that.cols,
		cells: make([]Cell, len(that.cells)),
	}
	copy(next.cells, that.cells)
	next.cells[index] = piece

	return next, nil
}

// IsFull reports whether no cell is Empty.
func (that Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == Empty {
			return false
		}
	}

	return true
}

func (that Board) IsSquare() bool {
	return that.rows == that.cols
}

// RowOf returns the row of the given cell index.
func (that Board) RowOf(index int) int { return index / that.cols }

// ColOf returns the column of the given cell index.
func (that Board) ColOf(index int) int { return index % that.cols }

// RowLine returns the indices of every cell in the given row.
func (that Board) RowLine(row int) []int {
	line := make([]int, that.cols)
	for col := range line {
		line[col] = row*that.cols + col
	}

	return line
}

// ColumnLine returns the indices of every cell in the given column.
func (that Board) ColumnLine(col int) []int {
	line := make([]int, that.rows)
	for row := range line {
		line[row] = row*that.cols + col
	}

	return line
}

// ForwardDiagonal returns the top-left to bottom-right diagonal. Only
// meaningful on square boards.
func (that Board) ForwardDiagonal() []int {
	line := make([]int, that.rows)
	for row := range line {
		line[row] = row*that.cols + row
	}

	return line
}

// BackwardDiagonal returns the top-right to bottom-left diagonal. Only
// meaningful on square boards.
func (that Board) BackwardDiagonal() []int {
	line := make([]int, that.rows)
	for row := range line {
		line[row] = row*that.cols + (that.cols - 1 - row)
	}

	return line
}

type boardJSON struct {
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Cells []Cell `json:"cells"`
}

func (that Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Rows:  that.rows,
		Cols:  that.cols,
		Cells: that.cells,
	})
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if len(raw.Cells) != raw.Rows*raw.Cols {
		return fmt.Errorf("board has %d cells, want %d", len(raw.Cells), raw.Rows*raw.Cols)
	}

	that.rows = raw.Rows
	that.cols = raw.Cols
	that.cells = raw.Cells

	return nil
}
