package rename

// State is the executor's lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateExecuting  State = "executing"
	StateCommitted  State = "committed"
	StateRolledBack State = "rolled_back"
)

// Result reports what an execution did. It is a value, not a handle on any
// resource.
type Result struct {
	Operations []Operation `json:"-" yaml:"-"`

	Success bool     `json:"success" yaml:"success"`
	Message string   `json:"message" yaml:"message"`
	Errors  []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	DryRun  bool  `json:"dry_run" yaml:"dry_run"`
	Applied int   `json:"applied" yaml:"applied"`
	State   State `json:"state" yaml:"state"`

	// Preview holds the dry-run text, also written to the preview writer.
	Preview string `json:"preview,omitempty" yaml:"preview,omitempty"`

	// RollbackErrors lists backups that could not be restored.
	RollbackErrors []string `json:"rollback_errors,omitempty" yaml:"rollback_errors,omitempty"`

	// Leftovers lists paths created or moved into during a failed execution
	// that rollback does not remove. Rollback restores captured file content
	// only; it does not undo creates or completed moves.
	Leftovers []string `json:"leftovers,omitempty" yaml:"leftovers,omitempty"`

	// Err is the error that stopped execution.
	Err error `json:"-" yaml:"-"`
}
