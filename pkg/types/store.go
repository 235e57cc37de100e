package types

import "errors"

// Config holds backend selection and parameters for Store.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// Store persists rule sets per user and tracks which one is active.
// Callers attach to a backend, operate, and detach when done.
type Store interface {
	// Attach connects the store to the backend described by config.
	// Creates the DataDir if it does not exist.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, operations return ErrStoreDetached.
	Detach() error

	// Save creates or updates a rule set for the user. When RuleSetID is
	// empty a new UUID is generated. Returns the ID used.
	// Returns ErrNotFound when the ID belongs to another user's rule set.
	Save(userID string, rs *RuleSet) (string, error)

	// Get retrieves a rule set by ID.
	// Returns ErrNotFound if no rule set exists with that ID.
	Get(userID, ruleSetID string) (*RuleSet, error)

	// List returns all of the user's rule sets ordered by name.
	// Returns an empty slice (not nil) if the user has none.
	List(userID string) ([]*RuleSet, error)

	// Delete removes a rule set.
	// Returns ErrNotFound if no rule set exists with that ID.
	Delete(userID, ruleSetID string) error

	// SetActive marks the given rule set as the user's active one,
	// clearing any previous selection.
	// Returns ErrNotFound if no rule set exists with that ID.
	SetActive(userID, ruleSetID string) error

	// Active returns the user's active rule set.
	// Returns ErrNoActiveRuleSet if the user has none.
	Active(userID string) (*RuleSet, error)
}

// Store lifecycle and lookup errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotFound        = errors.New("rule set not found")
	ErrNoActiveRuleSet = errors.New("no active rule set")
)
