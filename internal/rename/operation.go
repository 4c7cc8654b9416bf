package rename

import (
	"github.com/modforge/modforge/internal/paths"
)

// OpKind names an operation variant in reports.
type OpKind string

const (
	OpFileRename     OpKind = "rename"
	OpContentReplace OpKind = "replace"
	OpFileDelete     OpKind = "delete"
	OpFileCreate     OpKind = "create"
)

// Operation is one step of a rename plan.
//
// The set of variants is closed: FileRename, ContentReplace, FileDelete and
// FileCreate are the only implementations, enforced by the unexported marker
// method. Consumers dispatch with a type switch over exactly these four.
type Operation interface {
	Kind() OpKind
	// Target is the path the operation writes to once it has run.
	Target() string
	operation()
}

// FileRename moves a file or a whole directory.
type FileRename struct {
	OldPath string
	NewPath string
}

// ContentReplace replaces every literal occurrence of Old with New in File.
type ContentReplace struct {
	File        string
	Old         string
	New         string
	Description string
}

// FileDelete removes a file. Deleting a missing file is a no-op.
type FileDelete struct {
	File string
}

// FileCreate writes a new file. The file must not exist.
type FileCreate struct {
	File    string
	Content string
}

func (FileRename) Kind() OpKind     { return OpFileRename }
func (ContentReplace) Kind() OpKind { return OpContentReplace }
func (FileDelete) Kind() OpKind     { return OpFileDelete }
func (FileCreate) Kind() OpKind     { return OpFileCreate }

func (o FileRename) Target() string     { return o.NewPath }
func (o ContentReplace) Target() string { return o.File }
func (o FileDelete) Target() string     { return o.File }
func (o FileCreate) Target() string     { return o.File }

func (FileRename) operation()     {}
func (ContentReplace) operation() {}
func (FileDelete) operation()     {}
func (FileCreate) operation()     {}

// OperationView is the serializable form of an operation, with paths made
// relative to the project root.
type OperationView struct {
	Kind        OpKind `json:"kind" yaml:"kind"`
	Path        string `json:"path" yaml:"path"`
	NewPath     string `json:"new_path,omitempty" yaml:"new_path,omitempty"`
	Old         string `json:"old,omitempty" yaml:"old,omitempty"`
	New         string `json:"new,omitempty" yaml:"new,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Bytes       int    `json:"bytes,omitempty" yaml:"bytes,omitempty"`
}

// View converts an operation for reporting.
func View(root string, op Operation) OperationView {
	switch o := op.(type) {
	case FileRename:
		return OperationView{Kind: o.Kind(), Path: paths.Rel(root, o.OldPath), NewPath: paths.Rel(root, o.NewPath)}
	case ContentReplace:
		return OperationView{Kind: o.Kind(), Path: paths.Rel(root, o.File), Old: o.Old, New: o.New, Description: o.Description}
	case FileDelete:
		return OperationView{Kind: o.Kind(), Path: paths.Rel(root, o.File)}
	case FileCreate:
		return OperationView{Kind: o.Kind(), Path: paths.Rel(root, o.File), Bytes: len(o.Content)}
	}
	return OperationView{}
}

// Views converts a list of operations for reporting.
func Views(root string, ops []Operation) []OperationView {
	out := make([]OperationView, len(ops))
	for i, op := range ops {
		out[i] = View(root, op)
	}
	return out
}
