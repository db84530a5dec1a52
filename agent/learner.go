package agent

import "tictac/game"

// Outcome is the result of a finished game: the winning player's
// identity, or Draw.
type Outcome string

const Draw Outcome = "draw"

// Win wraps a winning player as an outcome.
func Win(player game.Player) Outcome {
	return Outcome(player)
}

// Winner returns the winning player, or false for a draw.
func (o Outcome) Winner() (game.Player, bool) {
	if o == Draw {
		return "", false
	}
	return game.Player(o), true
}

// Valid reports whether the outcome names a known player or a draw.
func (o Outcome) Valid() bool {
	return o == Draw || game.Player(o).Valid()
}

// Learner assigns credit for a finished game to the Q-table entries its
// moves touched. Implementations mutate the table in place and leave
// persistence to the caller.
type Learner interface {
	ApplyEpisode(table QTable, history game.History, outcome Outcome)
}

// MonteCarloLearner is the reference credit-assignment rule: it walks
// the episode backwards, decaying the terminal reward at every step so
// late moves receive more credit or blame than early ones.
type MonteCarloLearner struct {
	LearningRate float64
	RewardDecay  float64
}

func (l *MonteCarloLearner) ApplyEpisode(table QTable, history game.History, outcome Outcome) {
	winner, decisive := outcome.Winner()
	if !decisive {
		// Draws carry zero reward; leave the table untouched
		return
	}

	reward := 1.0
	for i := len(history) - 1; i >= 0; i-- {
		reward *= l.RewardDecay
		turn := history[i]

		board := game.BoardAt(history, i)
		canonical, id := game.Canonicalize(board)
		key := game.StateKey(canonical, turn.Player)
		move := game.TransformMove(turn.Move, id)

		sign := 1.0
		if turn.Player != winner {
			sign = -1
		}
		table.Add(key, move, l.LearningRate*reward*sign)
	}
}

// BellmanLearner is the minimax-flavored one-step backup: each
// transition's continuation value penalizes the mover for leaving the
// opponent a strong reply, and is otherwise the mover's own best
// estimate.
type BellmanLearner struct {
	LearningRate   float64
	DiscountFactor float64
}

func (l *BellmanLearner) ApplyEpisode(table QTable, history game.History, outcome Outcome) {
	winner, decisive := outcome.Winner()
	n := len(history)
	for i, turn := range history {
		// The mover's next state is the board after the opponent's
		// reply; past the end of the episode the transition is terminal.
		next := i + 2
		if next > n {
			next = n
		}
		terminal := next == n

		reward := 0.0
		if terminal && decisive {
			if turn.Player == winner {
				reward = 1
			} else {
				reward = -1
			}
		}

		l.ApplyTransition(table, game.BoardAt(history, i), turn.Move, game.BoardAt(history, next), reward, terminal, turn.Player)
	}
}

// ApplyTransition performs one backup for (state, move) by player.
// States and moves are canonicalized the same way the Monte-Carlo rule
// canonicalizes them, so both rules key one table identically.
func (l *BellmanLearner) ApplyTransition(table QTable, state game.Board, move game.Move, next game.Board, reward float64, terminal bool, player game.Player) {
	canonical, id := game.Canonicalize(state)
	key := game.StateKey(canonical, player)
	cm := game.TransformMove(move, id)

	continuation := 0.0
	if !terminal {
		nextCanonical, _ := game.Canonicalize(next)
		opponentBest, ok := table.Best(game.StateKey(nextCanonical, player.Other()))
		if ok && opponentBest > 0 {
			continuation = -opponentBest
		} else if own, ok := table.Best(game.StateKey(nextCanonical, player)); ok {
			continuation = own
		}
	}

	prior := table.Lookup(key, cm)
	updated := (1-l.LearningRate)*prior + l.LearningRate*(reward+l.DiscountFactor*continuation)
	table.Set(key, cm, updated)
}
