package renamers

import (
	"github.com/modforge/modforge/internal/rename"
)

// Outcome is everything one rename run produced, for reporting.
type Outcome struct {
	Kind      rename.Kind        `json:"kind" yaml:"kind"`
	OldName   string             `json:"old_name" yaml:"old_name"`
	NewName   string             `json:"new_name" yaml:"new_name"`
	DryRun    bool               `json:"dry_run" yaml:"dry_run"`
	Conflicts []string           `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Forced    bool               `json:"forced,omitempty" yaml:"forced,omitempty"`
	Validated *bool              `json:"validated,omitempty" yaml:"validated,omitempty"`
	Ops       []rename.Operation `json:"-" yaml:"-"`
	Result    *rename.Result     `json:"-" yaml:"-"`
}

// RunOptions control the optional steps of Run.
type RunOptions struct {
	// SkipValidate disables the post-execution Validate call.
	SkipValidate bool
}

// Run drives one rename: context check, conflict check, planning, ordering
// check, execution and, after a real run, validation.
//
// Conflicts abort before anything is planned unless ctx.Force is set.
// A failed validation is reported as *rename.ValidationError; the changes
// are kept.
func Run(ctx *rename.Context, r ComponentRenamer, exec *rename.Executor, opts RunOptions) (*Outcome, error) {
	out := &Outcome{Kind: ctx.Kind, OldName: ctx.OldName, NewName: ctx.NewName, DryRun: ctx.DryRun}

	if err := ctx.Check(); err != nil {
		return out, err
	}

	conflicts, err := r.CheckConflicts(ctx)
	if err != nil {
		return out, err
	}
	out.Conflicts = conflicts
	if len(conflicts) > 0 {
		if !ctx.Force {
			return out, &rename.ConflictError{Kind: ctx.Kind, NewName: ctx.NewName, Conflicts: conflicts}
		}
		out.Forced = true
	}

	ops, err := r.PlanRename(ctx)
	if err != nil {
		return out, err
	}
	if err := rename.VerifyOrder(ops); err != nil {
		return out, err
	}
	out.Ops = ops

	res := exec.Execute(ops, ctx.DryRun)
	out.Result = res
	if !res.Success {
		return out, res.Err
	}
	if ctx.DryRun || opts.SkipValidate {
		return out, nil
	}

	ok, err := r.Validate(ctx)
	if err != nil {
		return out, err
	}
	out.Validated = &ok
	if !ok {
		return out, &rename.ValidationError{Kind: ctx.Kind, OldName: ctx.OldName, NewName: ctx.NewName}
	}
	return out, nil
}
