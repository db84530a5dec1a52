package agent

import (
	"testing"

	"tictac/game"

	"github.com/stretchr/testify/require"
)

// entryAt returns the table value for the turn at history index i, keyed
// the way the learners key it.
func entryAt(table QTable, history game.History, i int) float64 {
	board := game.BoardAt(history, i)
	canonical, id := game.Canonicalize(board)
	key := game.StateKey(canonical, history[i].Player)
	return table.Lookup(key, game.TransformMove(history[i].Move, id))
}

// hasEntryAt reports whether the turn at history index i materialized a
// table entry.
func hasEntryAt(table QTable, history game.History, i int) bool {
	board := game.BoardAt(history, i)
	canonical, id := game.Canonicalize(board)
	moves, ok := table[game.StateKey(canonical, history[i].Player)]
	if !ok {
		return false
	}
	_, ok = moves[game.TransformMove(history[i].Move, id)]
	return ok
}

// topRowWin is X completing the top row: X0 O4 X1 O5 X2.
func topRowWin() game.History {
	return game.History{
		{Player: game.PlayerX, Move: 0},
		{Player: game.PlayerO, Move: 4},
		{Player: game.PlayerX, Move: 1},
		{Player: game.PlayerO, Move: 5},
		{Player: game.PlayerX, Move: 2},
	}
}

func TestMonteCarloLearner(t *testing.T) {
	newLearner := func() *MonteCarloLearner {
		return &MonteCarloLearner{LearningRate: 0.1, RewardDecay: 0.6}
	}

	t.Run("reinforces the winner and penalizes the loser", func(t *testing.T) {
		history := topRowWin()
		table := NewQTable()

		newLearner().ApplyEpisode(table, history, Win(game.PlayerX))

		require.Greater(t, entryAt(table, history, 4), 0.0,
			"X's winning move should gain value")
		require.Greater(t, entryAt(table, history, 2), 0.0)
		require.Greater(t, entryAt(table, history, 0), 0.0)
		require.Less(t, entryAt(table, history, 3), 0.0,
			"O's moves should lose value")
		require.Less(t, entryAt(table, history, 1), 0.0)
	})

	t.Run("decays credit toward earlier moves", func(t *testing.T) {
		history := topRowWin()
		table := NewQTable()

		newLearner().ApplyEpisode(table, history, Win(game.PlayerX))

		// The final move gets learning_rate * decay^1
		require.InDelta(t, 0.1*0.6, entryAt(table, history, 4), 1e-12)
		require.InDelta(t, -0.1*0.6*0.6, entryAt(table, history, 3), 1e-12)
		require.InDelta(t, 0.1*0.6*0.6*0.6, entryAt(table, history, 2), 1e-12)
	})

	t.Run("updates accumulate across episodes", func(t *testing.T) {
		history := topRowWin()
		table := NewQTable()
		learner := newLearner()

		learner.ApplyEpisode(table, history, Win(game.PlayerX))
		after := entryAt(table, history, 4)
		learner.ApplyEpisode(table, history, Win(game.PlayerX))

		require.InDelta(t, 2*after, entryAt(table, history, 4), 1e-12,
			"Repeating the episode should double the accumulated credit")
	})

	t.Run("losses decrease previously gained value", func(t *testing.T) {
		history := topRowWin()
		table := NewQTable()
		learner := newLearner()

		learner.ApplyEpisode(table, history, Win(game.PlayerX))
		before := entryAt(table, history, 4)
		learner.ApplyEpisode(table, history, Win(game.PlayerO))

		require.Less(t, entryAt(table, history, 4), before,
			"The same move should lose value when its player loses")
	})

	t.Run("draws leave the table untouched", func(t *testing.T) {
		table := NewQTable()

		newLearner().ApplyEpisode(table, topRowWin(), Draw)

		require.Empty(t, table, "A draw carries zero reward and materializes nothing")
	})
}

func TestBellmanLearner(t *testing.T) {
	newLearner := func() *BellmanLearner {
		return &BellmanLearner{LearningRate: 0.1, DiscountFactor: 0.9}
	}

	t.Run("terminal win backs up the full reward", func(t *testing.T) {
		history := topRowWin()
		table := NewQTable()
		state := game.BoardAt(history, 4)

		newLearner().ApplyTransition(table, state, 2, game.BoardAt(history, 5), 1, true, game.PlayerX)

		// (1-a)*0 + a*(1 + g*0) = 0.1
		require.InDelta(t, 0.1, entryAt(table, history, 4), 1e-12)
	})

	t.Run("a strong opponent reply penalizes the mover", func(t *testing.T) {
		history := topRowWin()
		table := NewQTable()
		state := game.BoardAt(history, 0)
		next := game.BoardAt(history, 2)

		nextCanonical, _ := game.Canonicalize(next)
		opponentKey := game.StateKey(nextCanonical, game.PlayerO)
		table.Set(opponentKey, 0, 0.5)

		newLearner().ApplyTransition(table, state, history[0].Move, next, 0, false, game.PlayerX)

		// Continuation is -0.5: (1-a)*0 + a*(0 + 0.9*-0.5)
		require.InDelta(t, 0.1*0.9*-0.5, entryAt(table, history, 0), 1e-12)
	})

	t.Run("falls back to the mover's own estimate", func(t *testing.T) {
		history := topRowWin()
		table := NewQTable()
		state := game.BoardAt(history, 0)
		next := game.BoardAt(history, 2)

		nextCanonical, _ := game.Canonicalize(next)
		table.Set(game.StateKey(nextCanonical, game.PlayerO), 0, -0.3)
		table.Set(game.StateKey(nextCanonical, game.PlayerX), 1, 0.2)

		newLearner().ApplyTransition(table, state, history[0].Move, next, 0, false, game.PlayerX)

		// Opponent has no positive reply, so the mover's 0.2 carries
		require.InDelta(t, 0.1*0.9*0.2, entryAt(table, history, 0), 1e-12)
	})

	t.Run("episode application touches every turn", func(t *testing.T) {
		history := topRowWin()
		table := NewQTable()

		newLearner().ApplyEpisode(table, history, Win(game.PlayerX))

		for i := range history {
			require.True(t, hasEntryAt(table, history, i),
				"Turn %d should have received a backup", i)
		}
	})

	t.Run("terminal rewards have winner and loser signs", func(t *testing.T) {
		history := topRowWin()
		table := NewQTable()

		newLearner().ApplyEpisode(table, history, Win(game.PlayerX))

		require.Greater(t, entryAt(table, history, 4), 0.0,
			"The winning terminal move should back up a positive reward")
		require.Less(t, entryAt(table, history, 3), 0.0,
			"The loser's final move should back up a negative reward")
	})
}
