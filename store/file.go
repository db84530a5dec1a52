package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tictac/agent"

	"github.com/rs/zerolog/log"
)

// FileStore keeps the Q-table as a JSON snapshot on disk: state key to
// stringified move to value.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (agent.QTable, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		log.Info().Str("path", s.path).Msg("no snapshot found, starting with an empty table")
		return agent.NewQTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", s.path, err)
	}

	table := agent.NewQTable()
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("corrupt snapshot %s: %w", s.path, err)
	}
	log.Debug().Str("path", s.path).Int("states", len(table)).Msg("loaded snapshot")
	return table, nil
}

func (s *FileStore) Save(table agent.QTable) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", s.path, err)
	}
	log.Debug().Str("path", s.path).Int("states", len(table)).Msg("saved snapshot")
	return nil
}
