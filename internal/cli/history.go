package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modforge/modforge/internal/history"
	"github.com/modforge/modforge/internal/project"
	"github.com/modforge/modforge/internal/rename"
	"github.com/modforge/modforge/internal/shellquote"
	"github.com/modforge/modforge/internal/ui"
)

type historyDetail struct {
	history.Entry `yaml:",inline"`
	Ops           []rename.OperationView `json:"ops" yaml:"ops"`
	UndoCommand   string                 `json:"undo_command,omitempty" yaml:"undo_command,omitempty"`
}

func newHistoryCmd(g *globalOptions) *cobra.Command {
	var limit int
	var show int64

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent renames",
		Long: `List the renames recorded in .modforge/history.db, newest first.

Dry runs are never recorded. Use --show to list the operations of one rename.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := g.projectRoot()
			if err != nil {
				return g.out.fail(err, nil, nil)
			}
			if limit < 0 {
				return g.out.fail(withCode(ErrInvalidInput, fmt.Errorf("--limit must not be negative")), nil, nil)
			}

			if !project.IsRegularFile(history.Path(root)) {
				if show > 0 {
					return g.out.fail(withCode(ErrInvalidInput, fmt.Errorf("no rename #%d in history", show)), nil, nil)
				}
				if g.out.structured() {
					return g.out.success([]history.Entry{}, nil)
				}
				g.out.println(ui.Info("No renames recorded yet"))
				return nil
			}

			store, err := history.Open(root)
			if err != nil {
				return g.out.fail(withCode(ErrDatabaseError, err), nil, nil)
			}
			defer store.Close()

			if show > 0 {
				return showHistoryEntry(g, store, show)
			}
			return listHistory(g, store, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of renames to list (0 for all)")
	cmd.Flags().Int64Var(&show, "show", 0, "Show the operations of the rename with this ID")
	return cmd
}

func listHistory(g *globalOptions, store *history.Store, limit int) error {
	entries, err := store.List(limit)
	if err != nil {
		return g.out.fail(withCode(ErrDatabaseError, err), nil, nil)
	}
	if g.out.structured() {
		if entries == nil {
			entries = []history.Entry{}
		}
		return g.out.success(entries, nil)
	}
	if len(entries) == 0 {
		g.out.println(ui.Info("No renames recorded yet"))
		return nil
	}

	g.out.println(ui.Header(fmt.Sprintf("Recent renames (%d)", len(entries))))
	tbl := ui.NewTable(5)
	for _, e := range entries {
		tbl.AddRow(
			ui.Hint(fmt.Sprintf("#%d", e.ID)),
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Kind,
			fmt.Sprintf("%s → %s", e.OldName, ui.Name(e.NewName)),
			statusLabel(e.Status),
		)
	}
	g.out.printf("%s", tbl.String())
	return nil
}

func showHistoryEntry(g *globalOptions, store *history.Store, id int64) error {
	entry, ok, err := store.Get(id)
	if err != nil {
		return g.out.fail(withCode(ErrDatabaseError, err), nil, nil)
	}
	if !ok {
		return g.out.fail(withCode(ErrInvalidInput, fmt.Errorf("no rename #%d in history", id)), nil, nil)
	}

	ops, err := store.Operations(id)
	if err != nil {
		return g.out.fail(withCode(ErrDatabaseError, err), nil, nil)
	}
	if g.out.structured() {
		return g.out.success(historyDetail{Entry: entry, Ops: ops, UndoCommand: undoCommand(entry)}, nil)
	}

	g.out.println(ui.Header(fmt.Sprintf("#%d %s %s → %s", entry.ID, entry.Kind, entry.OldName, entry.NewName)))
	g.out.printf("%s  %s\n", entry.CreatedAt.Format("2006-01-02 15:04:05"), statusLabel(entry.Status))
	if entry.Message != "" {
		g.out.println(ui.Hint(entry.Message))
	}
	list := ui.NewList()
	for _, op := range ops {
		list.Add(opSummary(op))
	}
	g.out.printf("%s", list.String())
	if undo := undoCommand(entry); undo != "" {
		g.out.println(ui.Hint("Undo with: " + undo))
	}
	return nil
}

// undoCommand returns the rename that reverses a kept entry, or "" for
// renames that were rolled back.
func undoCommand(e history.Entry) string {
	if e.Status == history.StatusRolledBack {
		return ""
	}
	return shellquote.Join("modforge", "rename", e.Kind, e.NewName, e.OldName)
}

func statusLabel(status string) string {
	switch status {
	case history.StatusCommitted:
		return ui.Success(status)
	case history.StatusValidationFailed:
		return ui.Warning(status)
	default:
		return ui.Error(status)
	}
}

func opSummary(op rename.OperationView) string {
	switch op.Kind {
	case rename.OpFileRename:
		return fmt.Sprintf("rename %s → %s", ui.FilePath(op.Path), ui.FilePath(op.NewPath))
	case rename.OpContentReplace:
		if op.Description != "" {
			return fmt.Sprintf("edit %s (%s)", ui.FilePath(op.Path), op.Description)
		}
		return fmt.Sprintf("edit %s", ui.FilePath(op.Path))
	case rename.OpFileDelete:
		return fmt.Sprintf("delete %s", ui.FilePath(op.Path))
	case rename.OpFileCreate:
		return fmt.Sprintf("create %s", ui.FilePath(op.Path))
	default:
		return fmt.Sprintf("%s %s", op.Kind, ui.FilePath(op.Path))
	}
}
