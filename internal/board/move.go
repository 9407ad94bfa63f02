package board

// NoMoveLocation is the location carried by the no-move sentinel. It is out of
// range on every board, so a sentinel can never collide with a legal move.
const NoMoveLocation = -1

// Move is a proposed or committed placement of a piece at a cell index.
type Move struct {
	Piece    Cell `json:"piece"`
	Location int  `json:"location"`
}

// NoMove returns the "nothing staged" sentinel.
func NoMove() Move {
	return Move{Piece: Empty, Location: NoMoveLocation}
}

// IsNone reports whether the move is the no-move sentinel.
func (that Move) IsNone() bool {
	return that.Piece == Empty && that.Location == NoMoveLocation
}
