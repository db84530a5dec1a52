package trainer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type EpisodeRecord struct {
	Episode     int
	Outcome     string
	Moves       int
	Exploration float64
	Duration    time.Duration
}

type Writer struct {
	baseDir string
}

// NewWriter creates a run directory named by a fresh run id under dir.
func NewWriter(dir string) (*Writer, error) {
	baseDir := filepath.Join(dir, fmt.Sprintf("run-%s", uuid.NewString()))
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir returns the run directory records are written into.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteEpisodeRecords(records []EpisodeRecord) error {
	path := filepath.Join(w.baseDir, "episode_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create episode records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"episode", "outcome", "moves", "exploration", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write episode records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Episode),
			record.Outcome,
			strconv.Itoa(record.Moves),
			strconv.FormatFloat(record.Exploration, 'f', -1, 64),
			record.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write episode record row: %w", err)
		}
	}

	return nil
}
