package game

// The square board has 8 symmetries: 4 clockwise rotations, each with or
// without a column reflection. TransformId 0-3 are the pure rotations,
// 4-7 reflect first and then rotate id mod 4 times.

// NumTransforms is the size of the dihedral symmetry group.
const NumTransforms = 8

// apply maps a (row, col) position through transform id: reflection
// first, then id mod 4 clockwise rotations.
func apply(row, col, id int) (int, int) {
	if id >= 4 {
		col = 2 - col
	}
	for i := 0; i < id%4; i++ {
		row, col = col, 2-row
	}
	return row, col
}

// Transform relocates every mark on the board through transform id.
func Transform(board Board, id int) Board {
	var out Board
	for i, cell := range board {
		row, col := apply(i/3, i%3, id)
		out[row*3+col] = cell
	}
	return out
}

// TransformMove maps a move into the coordinates of transform id.
func TransformMove(move Move, id int) Move {
	row, col := apply(int(move)/3, int(move)%3, id)
	return Move(row*3 + col)
}

// InverseTransformMove maps a move in transform id's coordinates back to
// the natural orientation: the rotation is undone first, then the
// reflection (which is its own inverse).
func InverseTransformMove(move Move, id int) Move {
	row, col := int(move)/3, int(move)%3
	for i := 0; i < id%4; i++ {
		row, col = 2-col, row
	}
	if id >= 4 {
		col = 2 - col
	}
	return Move(row*3 + col)
}

// serialize renders a board for lexicographic comparison. Empty sorts
// after both marks so emptier prefixes never win the minimum.
func serialize(board Board) string {
	buf := make([]byte, 9)
	for i, cell := range board {
		switch cell {
		case Empty:
			buf[i] = '~'
		default:
			buf[i] = cell[0]
		}
	}
	return string(buf)
}

// Canonicalize returns the lexicographically minimal image of the board
// under all 8 symmetries, together with the lowest transform id that
// produces it. The lowest-id tie break keeps the result deterministic
// for boards with internal symmetry.
func Canonicalize(board Board) (Board, int) {
	best := board
	bestID := 0
	bestKey := serialize(board)
	for id := 1; id < NumTransforms; id++ {
		image := Transform(board, id)
		key := serialize(image)
		if key < bestKey {
			best, bestID, bestKey = image, id, key
		}
	}
	return best, bestID
}

// StateKey encodes a board relative to the acting player: '1' for the
// player's own marks, '0' for the opponent's, '.' for empty.
func StateKey(board Board, player Player) string {
	buf := make([]byte, 9)
	for i, cell := range board {
		switch {
		case cell == Empty:
			buf[i] = '.'
		case cell == Cell(player):
			buf[i] = '1'
		default:
			buf[i] = '0'
		}
	}
	return string(buf)
}
