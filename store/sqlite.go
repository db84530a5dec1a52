package store

import (
	"database/sql"
	"fmt"

	"tictac/agent"
	"tictac/game"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS qvalues (
	state TEXT NOT NULL,
	move  INTEGER NOT NULL,
	value REAL NOT NULL,
	PRIMARY KEY (state, move)
)`

// SQLiteStore keeps the Q-table in an embedded SQLite database, one row
// per (state, move) entry. It satisfies the same full-overwrite contract
// as the file store.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load() (agent.QTable, error) {
	rows, err := s.db.Query(`SELECT state, move, value FROM qvalues`)
	if err != nil {
		return nil, fmt.Errorf("failed to query qvalues: %w", err)
	}
	defer rows.Close()

	table := agent.NewQTable()
	for rows.Next() {
		var state string
		var move int
		var value float64
		if err := rows.Scan(&state, &move, &value); err != nil {
			return nil, fmt.Errorf("failed to scan qvalue row: %w", err)
		}
		table.Set(state, game.Move(move), value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read qvalues: %w", err)
	}
	return table, nil
}

func (s *SQLiteStore) Save(table agent.QTable) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM qvalues`); err != nil {
		return fmt.Errorf("failed to clear qvalues: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO qvalues (state, move, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for state, moves := range table {
		for move, value := range moves {
			if _, err := stmt.Exec(state, int(move), value); err != nil {
				return fmt.Errorf("failed to insert qvalue: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
