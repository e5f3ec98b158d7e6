package game

import "context"

// SaveStore defines the persistence operations for saved games. Records are
// keyed by player name.
type SaveStore interface {
	// Upsert overwrites the record with the same Joueur or appends a new one.
	// A failed upsert leaves the stored record untouched.
	Upsert(ctx context.Context, snap Snapshot) error

	// List returns every record in an order that does not change between
	// calls unless a new player is saved.
	List(ctx context.Context) ([]Snapshot, error)

	// GetByIndex returns the record at a 0-based position of List.
	// Returns ErrSaveNotFound when the index is out of range.
	GetByIndex(ctx context.Context, index int) (Snapshot, error)

	Close() error
}
