package trainer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"tictac/agent"
	"tictac/store"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newTestTrainer(t *testing.T, episodes int) (*Trainer, *store.FileStore) {
	t.Helper()
	fileStore := store.NewFileStore(filepath.Join(t.TempDir(), "agent_state.json"))
	a := agent.New(agent.WithRand(rand.New(rand.NewSource(42))))
	return New(a, fileStore, WithEpisodes(episodes), WithSaveEvery(3)), fileStore
}

func TestTrainerRun(t *testing.T) {
	trainer, fileStore := newTestTrainer(t, 10)

	records, err := trainer.Run()
	require.NoError(t, err)

	t.Run("produces one record per episode", func(t *testing.T) {
		require.Len(t, records, 10)
		for _, record := range records {
			require.GreaterOrEqual(t, record.Moves, 5, "The fastest win takes five moves")
			require.LessOrEqual(t, record.Moves, 9)
			require.Contains(t, []string{"X", "O", "draw"}, record.Outcome)
		}
	})

	t.Run("decays exploration monotonically", func(t *testing.T) {
		for i := 1; i < len(records); i++ {
			require.LessOrEqual(t, records[i].Exploration, records[i-1].Exploration)
		}
	})

	t.Run("persists the final table", func(t *testing.T) {
		table, err := fileStore.Load()
		require.NoError(t, err)
		require.NotNil(t, table)
	})
}

func TestTrainerLearnsFromDecisiveGames(t *testing.T) {
	trainer, fileStore := newTestTrainer(t, 50)

	records, err := trainer.Run()
	require.NoError(t, err)

	decisive := 0
	for _, record := range records {
		if record.Outcome != "draw" {
			decisive++
		}
	}
	require.Greater(t, decisive, 0,
		"Fully exploratory self-play should produce decisive games")

	table, err := fileStore.Load()
	require.NoError(t, err)
	require.NotEmpty(t, table, "Decisive games should leave values in the table")
}

func TestWriter(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriter(dir)
	require.NoError(t, err)

	records := []EpisodeRecord{
		{Episode: 1, Outcome: "X", Moves: 7, Exploration: 0.99},
		{Episode: 2, Outcome: "draw", Moves: 9, Exploration: 0.9801},
	}
	require.NoError(t, writer.WriteEpisodeRecords(records))

	f, err := os.Open(filepath.Join(writer.Dir(), "episode_records.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "Header plus one row per record")
	require.Equal(t, []string{"episode", "outcome", "moves", "exploration", "duration"}, rows[0])
	require.Equal(t, "draw", rows[2][1])
}

func TestWriterCreatesDistinctRuns(t *testing.T) {
	dir := t.TempDir()

	first, err := NewWriter(dir)
	require.NoError(t, err)
	second, err := NewWriter(dir)
	require.NoError(t, err)

	require.NotEqual(t, first.Dir(), second.Dir(), "Each run gets its own directory")
}
