package agent

import (
	"tictac/game"

	"golang.org/x/exp/rand"
)

// Policy selects moves epsilon-greedily against a Q-table. The rand
// source is injected so tie-breaking and exploration are reproducible
// under test.
type Policy struct {
	rng *rand.Rand
}

func NewPolicy(rng *rand.Rand) *Policy {
	if rng == nil {
		panic("policy requires a rand source")
	}
	return &Policy{rng: rng}
}

// ChooseAction returns a move from validMoves. With probability
// exploration it explores uniformly at random without touching the
// table; otherwise it exploits the canonicalized state's values,
// breaking ties uniformly. The result is always a member of validMoves.
func (p *Policy) ChooseAction(table QTable, board game.Board, validMoves []game.Move, player game.Player, exploration float64) game.Move {
	if len(validMoves) == 0 {
		panic("cannot choose from zero valid moves")
	}

	if p.rng.Float64() < exploration {
		return validMoves[p.rng.Intn(len(validMoves))]
	}

	canonical, id := game.Canonicalize(board)
	key := game.StateKey(canonical, player)

	// Compare values in canonical coordinates, then map the winner back
	best := make([]game.Move, 0, len(validMoves))
	bestValue := 0.0
	for _, move := range validMoves {
		cm := game.TransformMove(move, id)
		value := table.Lookup(key, cm)
		switch {
		case len(best) == 0 || value > bestValue:
			best = append(best[:0], cm)
			bestValue = value
		case value == bestValue:
			best = append(best, cm)
		}
	}
	if len(best) == 0 {
		// Exploitation must still return a legal move
		return validMoves[p.rng.Intn(len(validMoves))]
	}

	chosen := best[p.rng.Intn(len(best))]
	return game.InverseTransformMove(chosen, id)
}
