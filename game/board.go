package game

import "fmt"

// Player identifies one of the two sides.
type Player string

const (
	PlayerX Player = "X"
	PlayerO Player = "O"
)

// Other returns the opposing player.
func (p Player) Other() Player {
	if p == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Valid reports whether p is one of the two known players.
func (p Player) Valid() bool {
	return p == PlayerX || p == PlayerO
}

// Cell is one square of the board: a player's mark or Empty.
type Cell string

const Empty Cell = ""

// Move is a board index 0-8, row-major (row = m/3, col = m%3).
type Move int

// Turn records one move by one player.
type Turn struct {
	Player Player `json:"player"`
	Move   Move   `json:"turn"`
}

// History is an ordered sequence of turns from an empty board.
type History []Turn

// Board is the 3x3 grid as 9 row-major cells.
type Board [9]Cell

// BoardAt replays the first n turns of history onto an empty board.
func BoardAt(history History, n int) Board {
	var board Board
	for i := 0; i < n && i < len(history); i++ {
		board[history[i].Move] = Cell(history[i].Player)
	}
	return board
}

// ValidMoves returns the indices of all empty cells.
func ValidMoves(board Board) []Move {
	moves := []Move{}
	for i, cell := range board {
		if cell == Empty {
			moves = append(moves, Move(i))
		}
	}
	return moves
}

// Full reports whether no empty cell remains.
func Full(board Board) bool {
	for _, cell := range board {
		if cell == Empty {
			return false
		}
	}
	return true
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// Winner returns the player holding three in a row, or "" if there is none.
func Winner(board Board) Player {
	for _, line := range lines {
		c := board[line[0]]
		if c != Empty && c == board[line[1]] && c == board[line[2]] {
			return Player(c)
		}
	}
	return ""
}

// Validate checks that history is playable: each move lands on a cell
// empty at that point and players alternate.
func Validate(history History) error {
	var board Board
	for i, turn := range history {
		if turn.Move < 0 || turn.Move > 8 {
			return fmt.Errorf("turn %d: move %d out of range", i, turn.Move)
		}
		if !turn.Player.Valid() {
			return fmt.Errorf("turn %d: unknown player %q", i, turn.Player)
		}
		if board[turn.Move] != Empty {
			return fmt.Errorf("turn %d: cell %d already occupied", i, turn.Move)
		}
		if i > 0 && history[i-1].Player == turn.Player {
			return fmt.Errorf("turn %d: player %s moved twice", i, turn.Player)
		}
		board[turn.Move] = Cell(turn.Player)
	}
	return nil
}

// NextPlayer returns who moves after the given history. X opens.
func NextPlayer(history History) Player {
	if len(history) == 0 {
		return PlayerX
	}
	return history[len(history)-1].Player.Other()
}
