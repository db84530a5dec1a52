package agent

import (
	"errors"
	"fmt"
	"time"

	"tictac/game"

	"golang.org/x/exp/rand"
)

var (
	// ErrNoValidMoves reports a decision request against a full board.
	ErrNoValidMoves = errors.New("no valid moves available")
	// ErrEmptyHistory reports a learning request without any turns.
	ErrEmptyHistory = errors.New("history is empty")
)

// Agent bundles the policy, the learning rule and their hyperparameters
// into one explicit context. Independent agents (per test, per game
// variant) can coexist; the Q-table itself is passed into every call and
// owned by the caller.
type Agent struct {
	LearningRate     float64
	DiscountFactor   float64
	RewardDecay      float64
	ExplorationRate  float64
	ExplorationDecay float64
	ExplorationFloor float64

	policy  *Policy
	learner Learner
	rng     *rand.Rand
}

type Option func(a *Agent)

func WithLearningRate(rate float64) Option {
	return func(a *Agent) {
		a.LearningRate = rate
	}
}

func WithExplorationRate(rate float64) Option {
	return func(a *Agent) {
		a.ExplorationRate = rate
	}
}

// WithRand injects the randomness source used for exploration and
// tie-breaking.
func WithRand(rng *rand.Rand) Option {
	return func(a *Agent) {
		a.rng = rng
	}
}

// WithLearner swaps the credit-assignment rule.
func WithLearner(learner Learner) Option {
	return func(a *Agent) {
		a.learner = learner
	}
}

// New creates an agent with the reference hyperparameters: learning rate
// 0.1, discount 0.9, reward decay 0.6, exploration 1.0 decaying by 0.99
// per episode down to a floor of 0.01.
func New(options ...Option) *Agent {
	a := &Agent{
		LearningRate:     0.1,
		DiscountFactor:   0.9,
		RewardDecay:      0.6,
		ExplorationRate:  1.0,
		ExplorationDecay: 0.99,
		ExplorationFloor: 0.01,
	}
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if a.learner == nil {
		a.learner = &MonteCarloLearner{LearningRate: a.LearningRate, RewardDecay: a.RewardDecay}
	}
	a.policy = NewPolicy(a.rng)
	return a
}

// Decide reconstructs the board from history and selects a move for the
// player to act, who is the opponent of the last mover (X opens).
func (a *Agent) Decide(table QTable, history game.History) (game.Move, game.Player, error) {
	if err := game.Validate(history); err != nil {
		return 0, "", fmt.Errorf("invalid history: %w", err)
	}

	board := game.BoardAt(history, len(history))
	player := game.NextPlayer(history)
	validMoves := game.ValidMoves(board)
	if len(validMoves) == 0 {
		return 0, player, ErrNoValidMoves
	}

	move := a.policy.ChooseAction(table, board, validMoves, player, a.ExplorationRate)
	return move, player, nil
}

// Learn applies one finished episode to the table and decays the
// exploration rate. The caller persists the table afterwards.
func (a *Agent) Learn(table QTable, history game.History, outcome Outcome) error {
	if len(history) == 0 {
		return ErrEmptyHistory
	}
	if err := game.Validate(history); err != nil {
		return fmt.Errorf("invalid history: %w", err)
	}
	if !outcome.Valid() {
		return fmt.Errorf("unknown outcome %q", outcome)
	}

	a.learner.ApplyEpisode(table, history, outcome)
	a.decayExploration()
	return nil
}

func (a *Agent) decayExploration() {
	a.ExplorationRate *= a.ExplorationDecay
	if a.ExplorationRate < a.ExplorationFloor {
		a.ExplorationRate = a.ExplorationFloor
	}
}
