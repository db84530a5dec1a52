// Package store persists the agent's Q-table. A store loads the full
// table at the start of an operation and overwrites it in full at the
// end; the snapshot is the sole durable state. Missing state is not an
// error, a present-but-unreadable snapshot is.
package store

import "tictac/agent"

type Store interface {
	// Load returns the durable table, or an empty table if no snapshot
	// exists yet.
	Load() (agent.QTable, error)
	// Save overwrites the durable snapshot with the full table. The
	// write is not atomic and not merged: concurrent savers race with
	// last-writer-wins semantics over the whole table.
	Save(table agent.QTable) error
}
