package rename

import (
	"fmt"

	"github.com/modforge/modforge/internal/paths"
)

// Plan is an ordered list of operations under construction.
//
// Order is load-bearing: an edit must come after the move that puts its file
// in place, and must not target a path a previous move already vacated.
// Verify checks both rules so planners fail loudly instead of producing a plan
// the executor would reject halfway through.
type Plan struct {
	ops  []Operation
	seen map[string]bool
}

// NewPlan returns an empty plan.
func NewPlan() *Plan {
	return &Plan{seen: make(map[string]bool)}
}

// Add appends op. An operation identical to one already in the plan is dropped.
func (p *Plan) Add(op Operation) {
	if p.seen == nil {
		p.seen = make(map[string]bool)
	}
	key := fmt.Sprintf("%#v", op)
	if p.seen[key] {
		return
	}
	p.seen[key] = true
	p.ops = append(p.ops, op)
}

// Rename appends a FileRename.
func (p *Plan) Rename(oldPath, newPath string) {
	p.Add(FileRename{OldPath: oldPath, NewPath: newPath})
}

// Replace appends a ContentReplace.
func (p *Plan) Replace(file, old, new, description string) {
	p.Add(ContentReplace{File: file, Old: old, New: new, Description: description})
}

// Delete appends a FileDelete.
func (p *Plan) Delete(file string) {
	p.Add(FileDelete{File: file})
}

// Create appends a FileCreate.
func (p *Plan) Create(file, content string) {
	p.Add(FileCreate{File: file, Content: content})
}

// Len returns the number of operations.
func (p *Plan) Len() int {
	return len(p.ops)
}

// Operations returns a copy of the ordered operation list.
func (p *Plan) Operations() []Operation {
	out := make([]Operation, len(p.ops))
	copy(out, p.ops)
	return out
}

// Verify checks the ordering rules for every ContentReplace.
func (p *Plan) Verify() error {
	return VerifyOrder(p.ops)
}

// VerifyOrder checks that each ContentReplace in ops
//   - is not followed by a FileRename that produces its target, and
//   - does not target a path moved away or deleted by an earlier operation
//     (unless a later move put something back there).
func VerifyOrder(ops []Operation) error {
	for i, op := range ops {
		edit, ok := op.(ContentReplace)
		if !ok {
			continue
		}

		for j := i + 1; j < len(ops); j++ {
			if mv, ok := ops[j].(FileRename); ok && paths.IsUnder(edit.File, mv.NewPath) {
				return &PlanOrderError{
					Index:  i,
					Path:   edit.File,
					Reason: fmt.Sprintf("edit precedes operation %d which moves the file into place", j+1),
				}
			}
		}

		// Walk backwards: the most recent operation touching the path decides
		// whether it is present when the edit runs.
	history:
		for j := i - 1; j >= 0; j-- {
			switch prev := ops[j].(type) {
			case FileRename:
				if paths.IsUnder(edit.File, prev.NewPath) {
					break history
				}
				if paths.IsUnder(edit.File, prev.OldPath) {
					return &PlanOrderError{
						Index:  i,
						Path:   edit.File,
						Reason: fmt.Sprintf("file was moved away by operation %d", j+1),
					}
				}
			case FileDelete:
				if paths.IsUnder(edit.File, prev.File) {
					return &PlanOrderError{
						Index:  i,
						Path:   edit.File,
						Reason: fmt.Sprintf("file was deleted by operation %d", j+1),
					}
				}
			case FileCreate:
				if edit.File == prev.File {
					break history
				}
			}
		}
	}
	return nil
}
