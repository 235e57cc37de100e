// Package sqlite implements the SQLite backend of the rule-set store.
package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/shelfwatch/shelfwatch/pkg/types"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "shelfwatch.db"

var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface on a SQLite database file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance. The backend is not
// attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens the database under the configured data directory, creating
// the directory and the schema if needed. Saved rule sets survive across
// attach/detach cycles.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent: multiple calls succeed.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	b.attached = false
	return err
}

// handle returns the open database handle, or ErrStoreDetached.
func (b *Backend) handle() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.db, nil
}
