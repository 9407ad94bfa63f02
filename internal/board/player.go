package board

// Role identifies one of the two seats in a game. Roles and pieces are fixed
// at game start: player one always plays X, player two always plays O.
type Role string

const (
	RolePlayer1 Role = "player1"
	RolePlayer2 Role = "player2"
)

// Piece returns the piece fixed to the role.
func (that Role) Piece() Cell {
	if that == RolePlayer1 {
		return X
	}

	return O
}

// Other returns the opposing role.
func (that Role) Other() Role {
	if that == RolePlayer1 {
		return RolePlayer2
	}

	return RolePlayer1
}

// Player is immutable for the session; exactly two exist per game.
type Player struct {
	Role        Role   `json:"role"`
	Piece       Cell   `json:"piece"`
	DisplayName string `json:"display_name,omitempty"`
}

func NewPlayer(role Role, displayName string) Player {
	return Player{
		Role:        role,
		Piece:       role.Piece(),
		DisplayName: displayName,
	}
}
