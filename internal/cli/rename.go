package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/modforge/modforge/internal/history"
	"github.com/modforge/modforge/internal/rename"
	"github.com/modforge/modforge/internal/renamers"
	"github.com/modforge/modforge/internal/ui"
)

type renameOptions struct {
	contextOptions
	noValidate bool
	noHistory  bool
}

// renameReport is the structured result of the rename command.
type renameReport struct {
	Kind       rename.Kind            `json:"kind" yaml:"kind"`
	OldName    string                 `json:"old_name" yaml:"old_name"`
	NewName    string                 `json:"new_name" yaml:"new_name"`
	DryRun     bool                   `json:"dry_run" yaml:"dry_run"`
	Forced     bool                   `json:"forced,omitempty" yaml:"forced,omitempty"`
	Conflicts  []string               `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Validated  *bool                  `json:"validated,omitempty" yaml:"validated,omitempty"`
	Operations []rename.OperationView `json:"operations,omitempty" yaml:"operations,omitempty"`
	Result     *rename.Result         `json:"result,omitempty" yaml:"result,omitempty"`
	HistoryID  int64                  `json:"history_id,omitempty" yaml:"history_id,omitempty"`
}

func newRenameReport(root string, out *renamers.Outcome) *renameReport {
	return &renameReport{
		Kind:       out.Kind,
		OldName:    out.OldName,
		NewName:    out.NewName,
		DryRun:     out.DryRun,
		Forced:     out.Forced,
		Conflicts:  out.Conflicts,
		Validated:  out.Validated,
		Operations: rename.Views(root, out.Ops),
		Result:     out.Result,
	}
}

func newRenameCmd(g *globalOptions) *cobra.Command {
	var opts renameOptions

	cmd := &cobra.Command{
		Use:   "rename <kind> <old> <new>",
		Short: "Rename a component, the mod ID, or a package",
		Long: `Rename a component and every reference to it.

Kinds:
  item, block, entity, enchantment, biome   registry IDs such as ruby_sword
  mod                                       the mod ID, including its pack directories and package segment
  package                                   a fully qualified package such as com.example.util

Conflicts with existing files abort the rename unless --force is given.
With --dry-run the planned operations are printed and nothing is changed.`,
		Example: `  modforge rename item ruby_sword ruby_blade
  modforge rename block ruby_ore sapphire_ore --version-scope 1.21
  modforge rename mod oldmod newmod --dry-run
  modforge rename package com.example.util com.example.common`,
		Args: cobra.ExactArgs(3),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return kindNames(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, g, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Print the planned operations without changing anything")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Rename even if the new name conflicts with existing files")
	cmd.Flags().StringVar(&opts.versionScope, "version-scope", "", "Only touch assets and data under versions/<scope>")
	cmd.Flags().BoolVar(&opts.noValidate, "no-validate", false, "Skip the consistency check after renaming")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record this rename in the history database")
	return cmd
}

func runRename(cmd *cobra.Command, g *globalOptions, opts renameOptions, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return g.out.fail(err, nil, nil)
	}
	root, err := g.projectRoot()
	if err != nil {
		return g.out.fail(err, nil, nil)
	}
	cfg, warnings, err := g.loadConfig(root)
	if err != nil {
		return g.out.fail(err, nil, warnings)
	}
	r, err := renamers.For(kind)
	if err != nil {
		return g.out.fail(withCode(ErrInvalidInput, err), nil, warnings)
	}

	ctx := newContext(root, cfg, kind, args[1], args[2], opts.contextOptions)

	var preview io.Writer = io.Discard
	if !g.out.structured() {
		preview = g.out.w
	}
	exec := rename.NewExecutor(root, rename.WithLogger(ui.Logger), rename.WithPreviewWriter(preview))

	ui.Logger.Debug("renaming", "kind", kind, "old", ctx.OldName, "new", ctx.NewName, "root", root)
	out, runErr := renamers.Run(ctx, r, exec, renamers.RunOptions{SkipValidate: opts.noValidate})
	report := newRenameReport(root, out)
	warnings = append(warnings, outcomeWarnings(out, opts)...)

	if out.Result != nil && !out.DryRun && cfg.HistoryEnabled() && !opts.noHistory {
		id, err := recordHistory(root, out, runErr)
		if err != nil {
			ui.Logger.Warn("failed to record rename history", "err", err)
			warnings = append(warnings, Warning{Code: WarnHistoryFailed, Message: fmt.Sprintf("failed to record history: %v", err)})
		} else {
			report.HistoryID = id
		}
	}

	if g.out.structured() {
		if runErr != nil {
			return g.out.fail(runErr, report, warnings)
		}
		return g.out.success(report, warnings)
	}

	printWarnings(cmd.ErrOrStderr(), warnings)
	printRenameText(g.out, report, runErr)
	return runErr
}

// outcomeWarnings reports what a run left behind or skipped.
func outcomeWarnings(out *renamers.Outcome, opts renameOptions) []Warning {
	var warnings []Warning
	if out.Forced {
		warnings = append(warnings, Warning{
			Code:    WarnConflictsForced,
			Message: fmt.Sprintf("renamed despite %s", ui.Count(len(out.Conflicts), "conflict", "conflicts")),
		})
	}
	if res := out.Result; res != nil {
		if len(res.Leftovers) > 0 {
			warnings = append(warnings, Warning{
				Code:    WarnRollbackLeftovers,
				Message: fmt.Sprintf("rollback left %s in place; remove or move them back by hand", ui.Count(len(res.Leftovers), "path", "paths")),
			})
		}
		if len(res.RollbackErrors) > 0 {
			warnings = append(warnings, Warning{
				Code:    WarnRollbackIncomplete,
				Message: fmt.Sprintf("%s could not be restored", ui.Count(len(res.RollbackErrors), "file", "files")),
			})
		}
		if res.Success && !out.DryRun && opts.noValidate {
			warnings = append(warnings, Warning{Code: WarnValidationSkipped, Message: "validation skipped (--no-validate)"})
		}
	}
	return warnings
}

// recordHistory stores an executed rename. Dry runs are never recorded.
func recordHistory(root string, out *renamers.Outcome, runErr error) (int64, error) {
	store, err := history.Open(root)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	var validationErr error
	if errors.Is(runErr, rename.ErrValidation) {
		validationErr = runErr
	}
	entry := history.Entry{
		Kind:    string(out.Kind),
		OldName: out.OldName,
		NewName: out.NewName,
		Status:  history.StatusOf(out.Result, validationErr),
	}
	if runErr != nil {
		entry.Message = runErr.Error()
	}
	return store.Record(entry, rename.Views(root, out.Ops))
}

func printRenameText(p *printer, report *renameReport, runErr error) {
	if len(report.Conflicts) > 0 {
		p.println(displayFor(p.w).Render(listMarkdown("Conflicts", report.Conflicts)))
	}

	res := report.Result
	switch {
	case res == nil:
		return
	case report.DryRun:
		// The executor has already written the preview.
		p.println(ui.Hint("Re-run without --dry-run to apply"))
	case !res.Success:
		p.println(ui.Errorf("Rename failed after %s and was rolled back", ui.Count(res.Applied, "operation", "operations")))
		if len(res.Leftovers) > 0 {
			p.println(displayFor(p.w).Render(listMarkdown("Left in place", res.Leftovers)))
		}
		if len(res.RollbackErrors) > 0 {
			p.println(displayFor(p.w).Render(listMarkdown("Not restored", res.RollbackErrors)))
		}
	default:
		p.println(ui.Successf("Renamed %s %s → %s (%s)",
			report.Kind, ui.Name(report.OldName), ui.Name(report.NewName), ui.Count(res.Applied, "operation", "operations")))
		if errors.Is(runErr, rename.ErrValidation) {
			p.println(ui.Warning("References to the old name remain; the changes were kept"))
		}
		if report.HistoryID > 0 {
			p.println(ui.Hint(fmt.Sprintf("Recorded as #%d in %s", report.HistoryID, history.Dir)))
		}
	}
}

func kindNames() []string {
	names := make([]string, len(rename.AllKinds))
	for i, k := range rename.AllKinds {
		names[i] = string(k)
	}
	return names
}
