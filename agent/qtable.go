package agent

import "tictac/game"

// QTable maps a player-relative canonical state key to the estimated
// value of each move from that state. It serializes as a plain nested
// string-keyed JSON map, which is the durable format.
type QTable map[string]map[game.Move]float64

// NewQTable returns an empty table.
func NewQTable() QTable {
	return QTable{}
}

// Lookup returns the value for (key, move), defaulting to 0 for pairs
// that were never updated. The neutral default keeps unseen moves
// competitive with known-neutral ones.
func (t QTable) Lookup(key string, move game.Move) float64 {
	return t[key][move]
}

// Set stores a value, materializing the state's move map on first use.
func (t QTable) Set(key string, move game.Move, value float64) {
	moves, ok := t[key]
	if !ok {
		moves = map[game.Move]float64{}
		t[key] = moves
	}
	moves[move] = value
}

// Add accumulates delta into the (key, move) entry.
func (t QTable) Add(key string, move game.Move, delta float64) {
	t.Set(key, move, t.Lookup(key, move)+delta)
}

// Best returns the highest stored value for key and whether any entry
// exists. Unmaterialized states report no entry.
func (t QTable) Best(key string) (float64, bool) {
	moves, ok := t[key]
	if !ok || len(moves) == 0 {
		return 0, false
	}
	first := true
	best := 0.0
	for _, v := range moves {
		if first || v > best {
			best = v
			first = false
		}
	}
	return best, true
}

// Clone returns a deep copy of the table.
func (t QTable) Clone() QTable {
	out := make(QTable, len(t))
	for key, moves := range t {
		copied := make(map[game.Move]float64, len(moves))
		for move, value := range moves {
			copied[move] = value
		}
		out[key] = copied
	}
	return out
}
