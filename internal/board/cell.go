package board

import (
	"encoding/json"
	"fmt"
)

// Cell is one slot on the board.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

var cellGlyphs = map[Cell]string{
	Empty: "",
	X:     "X",
	O:     "O",
}

// Glyph returns the display text for the cell. The mapping is explicit; it is
// the only place display text for a cell comes from.
func (that Cell) Glyph() string {
	return cellGlyphs[that]
}

func (that Cell) String() string {
	return that.Glyph()
}

func (that Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Glyph())
}

func (that *Cell) UnmarshalJSON(data []byte) error {
	var glyph string
	if err := json.Unmarshal(data, &glyph); err != nil {
		return fmt.Errorf("failed to unmarshal cell: %w", err)
	}

	for cell, known := range cellGlyphs {
		if glyph == known {
			*that = cell
			return nil
		}
	}

	return fmt.Errorf("unknown cell glyph %q", glyph)
}
