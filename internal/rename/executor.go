package rename

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/modforge/modforge/internal/atomicfile"
	"github.com/modforge/modforge/internal/paths"
)

// Executor applies an operation list with capture-before-mutate backups and
// restores them if any operation fails.
//
// There is no filesystem transaction underneath. Rollback restores the bytes
// of every file whose content was captured; it does not delete files made by
// FileCreate and does not move renamed directories back. Those paths are
// reported in Result.Leftovers.
//
// An Executor is not safe for concurrent use, and two executors must not run
// against the same project at once.
type Executor struct {
	root        string
	logger      *log.Logger
	preview     io.Writer
	beforeApply func(index int, op Operation) error

	state     State
	backups   map[string]backup
	captured  []string
	leftovers []string
}

type backup struct {
	data []byte
	mode fs.FileMode
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for per-operation debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPreviewWriter sets where dry-run previews are written.
func WithPreviewWriter(w io.Writer) Option {
	return func(e *Executor) {
		if w != nil {
			e.preview = w
		}
	}
}

// WithBeforeApply installs a hook called before each operation is applied.
// A non-nil error aborts execution as if the operation itself had failed.
func WithBeforeApply(fn func(index int, op Operation) error) Option {
	return func(e *Executor) {
		e.beforeApply = fn
	}
}

// NewExecutor creates an executor for the project at root.
func NewExecutor(root string, opts ...Option) *Executor {
	e := &Executor{
		root:    root,
		logger:  log.New(io.Discard),
		preview: io.Discard,
		state:   StateIdle,
		backups: make(map[string]backup),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the executor's lifecycle state.
func (e *Executor) State() State {
	return e.state
}

// Execute applies ops in order, or only previews them when dryRun is set.
func (e *Executor) Execute(ops []Operation, dryRun bool) *Result {
	if dryRun {
		text := Preview(e.root, ops)
		_, _ = io.WriteString(e.preview, text)
		return &Result{
			Operations: ops,
			Success:    true,
			Message:    fmt.Sprintf("dry run: %d operation(s) planned, nothing changed", len(ops)),
			DryRun:     true,
			State:      e.state,
			Preview:    text,
		}
	}

	e.backups = make(map[string]backup)
	e.captured = nil
	e.leftovers = nil
	e.state = StateExecuting

	for i, op := range ops {
		if e.beforeApply != nil {
			if err := e.beforeApply(i, op); err != nil {
				return e.fail(ops, i, &IOError{Index: i, Op: op.Kind(), Path: e.rel(op.Target()), Err: err})
			}
		}
		if err := e.apply(i, op); err != nil {
			return e.fail(ops, i, err)
		}
		e.logger.Debug("applied", "op", op.Kind(), "path", e.rel(op.Target()))
	}

	e.state = StateCommitted
	return &Result{
		Operations: ops,
		Success:    true,
		Message:    fmt.Sprintf("applied %d operation(s)", len(ops)),
		Applied:    len(ops),
		State:      e.state,
	}
}

func (e *Executor) apply(i int, op Operation) error {
	if err := e.checkWithinRoot(i, op); err != nil {
		return err
	}
	switch o := op.(type) {
	case FileRename:
		return e.applyRename(i, o)
	case ContentReplace:
		return e.applyReplace(i, o)
	case FileDelete:
		return e.applyDelete(i, o)
	case FileCreate:
		return e.applyCreate(i, o)
	default:
		return &PreconditionError{Index: i, Op: op.Kind(), Reason: fmt.Sprintf("unsupported operation %T", op)}
	}
}

func (e *Executor) applyRename(i int, o FileRename) error {
	info, err := os.Lstat(o.OldPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &PreconditionError{Index: i, Op: o.Kind(), Path: e.rel(o.OldPath), Reason: "source does not exist"}
		}
		return &IOError{Index: i, Op: o.Kind(), Path: e.rel(o.OldPath), Err: err}
	}
	if _, err := os.Lstat(o.NewPath); err == nil {
		return &PreconditionError{Index: i, Op: o.Kind(), Path: e.rel(o.NewPath), Reason: "destination already exists"}
	}

	if info.Mode().IsRegular() {
		if err := e.capture(o.OldPath); err != nil {
			return &IOError{Index: i, Op: o.Kind(), Path: e.rel(o.OldPath), Err: err}
		}
	}

	e.trackNewDirs(filepath.Dir(o.NewPath))
	if err := os.MkdirAll(filepath.Dir(o.NewPath), atomicfile.DirPerm); err != nil {
		return &IOError{Index: i, Op: o.Kind(), Path: e.rel(o.NewPath), Err: err}
	}
	if err := os.Rename(o.OldPath, o.NewPath); err != nil {
		return &IOError{Index: i, Op: o.Kind(), Path: e.rel(o.OldPath), Err: err}
	}
	e.leftovers = append(e.leftovers, o.NewPath)
	return nil
}

func (e *Executor) applyReplace(i int, o ContentReplace) error {
	if o.Old == "" {
		return &PreconditionError{Index: i, Op: o.Kind(), Path: e.rel(o.File), Reason: "empty search text"}
	}
	info, err := os.Stat(o.File)
	if err != nil {
		if os.IsNotExist(err) {
			return &PreconditionError{Index: i, Op: o.Kind(), Path: e.rel(o.File), Reason: "file does not exist"}
		}
		return &IOError{Index: i, Op: o.Kind(), Path: e.rel(o.File), Err: err}
	}
	if !info.Mode().IsRegular() {
		return &PreconditionError{Index: i, Op: o.Kind(), Path: e.rel(o.File), Reason: "not a regular file"}
	}

	if err := e.capture(o.File); err != nil {
		return &IOError{Index: i, Op: o.Kind(), Path: e.rel(o.File), Err: err}
	}

	content, err := os.ReadFile(o.File)
	if err != nil {
		return &IOError{Index: i, Op: o.Kind(), Path: e.rel(o.File), Err: err}
	}
	updated := strings.ReplaceAll(string(content), o.Old, o.New)
	if updated == string(content) {
		e.logger.Debug("no occurrences", "path", e.rel(o.File), "old", o.Old)
		return nil
	}
	if err := atomicfile.WriteFile(o.File, []byte(updated), 0); err != nil {
		return &IOError{Index: i, Op: o.Kind(), Path: e.rel(o.File), Err: err}
	}
	return nil
}

func (e *Executor) applyDelete(i int, o FileDelete) error {
	info, err := os.Lstat(o.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &IOError{Index: i, Op: o.Kind(), Path: e.rel(o.File), Err: err}
	}
	if info.Mode().IsRegular() {
		if err := e.capture(o.File); err != nil {
			return &IOError{Index: i, Op: o.Kind(), Path: e.rel(o.File), Err: err}
		}
	}
	if err := os.Remove(o.File); err != nil {
		return &IOError{Index: i, Op: o.Kind(), Path: e.rel(o.File), Err: err}
	}
	return nil
}

func (e *Executor) applyCreate(i int, o FileCreate) error {
	if _, err := os.Lstat(o.File); err == nil {
		return &PreconditionError{Index: i, Op: o.Kind(), Path: e.rel(o.File), Reason: "file already exists"}
	}
	e.trackNewDirs(filepath.Dir(o.File))
	if err := atomicfile.WriteFileAll(o.File, []byte(o.Content), 0o644); err != nil {
		return &IOError{Index: i, Op: o.Kind(), Path: e.rel(o.File), Err: err}
	}
	e.leftovers = append(e.leftovers, o.File)
	return nil
}

// checkWithinRoot rejects operations whose paths resolve outside the project.
func (e *Executor) checkWithinRoot(i int, op Operation) error {
	targets := []string{op.Target()}
	if r, ok := op.(FileRename); ok {
		targets = append(targets, r.OldPath)
	}
	for _, p := range targets {
		if err := paths.ValidateWithinProject(e.root, p); err != nil {
			return &PreconditionError{Index: i, Op: op.Kind(), Path: e.rel(p), Reason: "outside the project"}
		}
	}
	return nil
}

// trackNewDirs records the topmost missing ancestor of dir, which the
// coming MkdirAll creates and rollback does not remove.
func (e *Executor) trackNewDirs(dir string) {
	top := ""
	for p := dir; ; p = filepath.Dir(p) {
		if _, err := os.Lstat(p); err == nil {
			break
		}
		top = p
		if filepath.Dir(p) == p {
			break
		}
	}
	if top != "" {
		e.leftovers = append(e.leftovers, top)
	}
}

// capture records the pre-execution content of path. Only the first capture
// of a path is kept, so a file edited twice is restored to its original bytes.
func (e *Executor) capture(path string) error {
	if _, ok := e.backups[path]; ok {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	e.backups[path] = backup{data: data, mode: info.Mode().Perm()}
	e.captured = append(e.captured, path)
	return nil
}

// fail rolls back and builds the failure result.
func (e *Executor) fail(ops []Operation, failedAt int, cause error) *Result {
	e.logger.Warn("operation failed, rolling back", "index", failedAt+1, "err", cause)

	rollbackErrs := e.rollback()
	e.state = StateRolledBack

	var leftovers []string
	for _, p := range e.leftovers {
		if _, err := os.Lstat(p); err == nil {
			leftovers = append(leftovers, e.rel(p))
		}
	}
	for _, p := range leftovers {
		e.logger.Warn("not reverted by rollback", "path", p)
	}

	errs := []string{cause.Error()}
	for _, re := range rollbackErrs {
		errs = append(errs, re.Error())
	}

	return &Result{
		Operations:     ops,
		Success:        false,
		Message:        fmt.Sprintf("rename failed at operation %d of %d and was rolled back: %v", failedAt+1, len(ops), cause),
		Errors:         errs,
		Applied:        failedAt,
		State:          e.state,
		RollbackErrors: errorStrings(rollbackErrs),
		Leftovers:      leftovers,
		Err:            cause,
	}
}

// rollback restores every captured file, newest capture first. Restore
// failures are collected, never returned early.
func (e *Executor) rollback() []error {
	var errs []error
	for i := len(e.captured) - 1; i >= 0; i-- {
		path := e.captured[i]
		b := e.backups[path]
		if err := atomicfile.WriteFileAll(path, b.data, b.mode); err != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", e.rel(path), err))
			continue
		}
		e.logger.Debug("restored", "path", e.rel(path))
	}
	return errs
}

func (e *Executor) rel(p string) string {
	if p == "" {
		return p
	}
	return paths.Rel(e.root, p)
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}

