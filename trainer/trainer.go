// Package trainer runs offline self-play training: the agent plays both
// sides of the board, learns from every finished episode and persists
// the table through the store.
package trainer

import (
	"fmt"
	"time"

	"tictac/agent"
	"tictac/game"
	"tictac/store"

	"github.com/rs/zerolog/log"
)

type Trainer struct {
	agent     *agent.Agent
	store     store.Store
	episodes  int
	saveEvery int
}

type Option func(t *Trainer)

func WithEpisodes(episodes int) Option {
	return func(t *Trainer) {
		if episodes > 0 {
			t.episodes = episodes
		}
	}
}

// WithSaveEvery sets how many episodes elapse between snapshots.
func WithSaveEvery(interval int) Option {
	return func(t *Trainer) {
		if interval > 0 {
			t.saveEvery = interval
		}
	}
}

func New(a *agent.Agent, s store.Store, options ...Option) *Trainer {
	t := &Trainer{
		agent:     a,
		store:     s,
		episodes:  1000,
		saveEvery: 100,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Run plays the configured number of self-play episodes and returns one
// record per episode. The table is loaded once up front; this loop is
// the sole writer for its duration.
func (t *Trainer) Run() ([]EpisodeRecord, error) {
	table, err := t.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load table: %w", err)
	}

	log.Info().Int("episodes", t.episodes).Msg("starting self-play training")

	records := make([]EpisodeRecord, 0, t.episodes)
	for i := 0; i < t.episodes; i++ {
		start := time.Now()
		history, outcome, err := t.playEpisode(table)
		if err != nil {
			return records, fmt.Errorf("episode %d failed: %w", i+1, err)
		}

		if err := t.agent.Learn(table, history, outcome); err != nil {
			return records, fmt.Errorf("episode %d failed to learn: %w", i+1, err)
		}

		records = append(records, EpisodeRecord{
			Episode:     i + 1,
			Outcome:     string(outcome),
			Moves:       len(history),
			Exploration: t.agent.ExplorationRate,
			Duration:    time.Since(start),
		})

		if (i+1)%t.saveEvery == 0 {
			if err := t.store.Save(table); err != nil {
				return records, fmt.Errorf("failed to save after episode %d: %w", i+1, err)
			}
			log.Info().Int("episode", i+1).Int("states", len(table)).
				Float64("exploration", t.agent.ExplorationRate).Msg("training progress")
		}
	}

	if err := t.store.Save(table); err != nil {
		return records, fmt.Errorf("failed to save final table: %w", err)
	}

	log.Info().Int("episodes", t.episodes).Int("states", len(table)).Msg("completed self-play training")
	return records, nil
}

// playEpisode plays one full game, the agent moving for both sides.
func (t *Trainer) playEpisode(table agent.QTable) (game.History, agent.Outcome, error) {
	history := game.History{}
	for {
		board := game.BoardAt(history, len(history))
		if winner := game.Winner(board); winner != "" {
			return history, agent.Win(winner), nil
		}
		if game.Full(board) {
			return history, agent.Draw, nil
		}

		move, player, err := t.agent.Decide(table, history)
		if err != nil {
			return history, "", err
		}
		history = append(history, game.Turn{Player: player, Move: move})
	}
}
