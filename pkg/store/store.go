// Package store persists board snapshots under user-chosen names so a
// session can be saved and resumed later.
//
// Two backends are provided:
//   - [FileStore]: one JSON file per save in a config directory (CLI default)
//   - [SQLiteStore]: a single SQLite database, for hosts keeping many saves
//
// A [Save] records the configuration file it belongs to. Restoring a save onto
// a board built from a different configuration fails in [board.Board.Restore]
// with INVALID_SNAPSHOT, so stores do not check it themselves.
//
// # Usage
//
//	st, err := store.NewFileStore("")  // ~/.config/dragdrop/saves/
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	err = st.Set(ctx, &store.Save{Name: "monday", Board: path, Snapshot: b.Snapshot()})
//
//	save, err := st.Get(ctx, "monday")
//	if save == nil {
//	    // no such save
//	}
package store

import (
	"context"
	"time"

	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/errors"
	"github.com/matzehuels/dragdrop/pkg/observability"
)

// Save is a named snapshot.
type Save struct {
	Name     string         `json:"name"`
	Board    string         `json:"board,omitempty"`
	Snapshot board.Snapshot `json:"snapshot"`
	SavedAt  time.Time      `json:"savedAt"`
}

// Summary describes a save without its snapshot.
type Summary struct {
	Name    string
	Board   string
	Items   int
	Placed  int
	SavedAt time.Time
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Get retrieves a save by name.
	// Returns nil, nil if the save doesn't exist.
	Get(ctx context.Context, name string) (*Save, error)

	// Set stores a save, replacing any save of the same name. A zero SavedAt
	// is set to the current time.
	Set(ctx context.Context, save *Save) error

	// Delete removes a save. Deleting a missing save is not an error.
	Delete(ctx context.Context, name string) error

	// List returns all saves, most recent first.
	List(ctx context.Context) ([]Summary, error)

	Close() error
}

func summarize(s *Save) Summary {
	placed := 0
	for _, it := range s.Snapshot.Items {
		if it.Area != "" {
			placed++
		}
	}
	return Summary{
		Name:    s.Name,
		Board:   s.Board,
		Items:   len(s.Snapshot.Items),
		Placed:  placed,
		SavedAt: s.SavedAt,
	}
}

func checkSave(s *Save) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil save")
	}
	return errors.ValidateSaveName(s.Name)
}

// observeLoad reports a Get to the store hooks.
func observeLoad(ctx context.Context, backend, name string, start time.Time, s *Save, err error) {
	observability.Store().OnLoad(ctx, backend, name, s != nil, time.Since(start), err)
}

func observeSave(ctx context.Context, backend, name string, start time.Time, err error) {
	observability.Store().OnSave(ctx, backend, name, time.Since(start), err)
}
