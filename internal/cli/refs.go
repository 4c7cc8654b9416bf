package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modforge/modforge/internal/paths"
	"github.com/modforge/modforge/internal/rename"
	"github.com/modforge/modforge/internal/renamers"
	"github.com/modforge/modforge/internal/ui"
)

type refsReport struct {
	Kind       rename.Kind            `json:"kind" yaml:"kind"`
	Name       string                 `json:"name" yaml:"name"`
	Files      []string               `json:"files" yaml:"files"`
	References []referenceEntry       `json:"references" yaml:"references"`
	Patterns   []renamers.FilePattern `json:"patterns" yaml:"patterns"`
}

type referenceEntry struct {
	File    string   `json:"file" yaml:"file"`
	Reasons []string `json:"reasons" yaml:"reasons"`
}

func newRefsCmd(g *globalOptions) *cobra.Command {
	var versionScope string

	cmd := &cobra.Command{
		Use:   "refs <kind> <name>",
		Short: "Show the files a rename would move and the files that reference a name",
		Long: `Show what a rename of <name> would touch, without changing anything.

Lists the files named after the component, every file that mentions it with
the reason it matched, and the path patterns the kind is made of.`,
		Example: `  modforge refs item ruby_sword
  modforge refs package com.example.util --json`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return kindNames(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefs(cmd, g, versionScope, args)
		},
	}
	cmd.Flags().StringVar(&versionScope, "version-scope", "", "Only look at assets and data under versions/<scope>")
	return cmd
}

func runRefs(cmd *cobra.Command, g *globalOptions, versionScope string, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return g.out.fail(err, nil, nil)
	}
	name := strings.TrimSpace(args[1])
	if name == "" {
		return g.out.fail(withCode(ErrInvalidInput, fmt.Errorf("name is required")), nil, nil)
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

	ctx := newContext(root, cfg, kind, name, name, contextOptions{versionScope: versionScope})
	report, err := collectRefs(ctx, r)
	if err != nil {
		return g.out.fail(err, nil, warnings)
	}

	if g.out.structured() {
		return g.out.success(report, warnings)
	}
	printWarnings(cmd.ErrOrStderr(), warnings)
	if len(report.Files) == 0 && len(report.References) == 0 {
		g.out.println(ui.Infof("Nothing found for %s %s", kind, ui.Name(name)))
		return nil
	}
	g.out.println(displayFor(g.out.w).Render(refsMarkdown(report)))
	return nil
}

func collectRefs(ctx *rename.Context, r renamers.ComponentRenamer) (*refsReport, error) {
	files, err := r.Discover(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := r.FindReferences(ctx, files)
	if err != nil {
		return nil, err
	}

	report := &refsReport{
		Kind:       ctx.Kind,
		Name:       ctx.OldName,
		Files:      make([]string, 0, len(files)),
		References: make([]referenceEntry, 0, len(refs)),
		Patterns:   r.FilePatterns(ctx),
	}
	for _, f := range files {
		report.Files = append(report.Files, paths.Rel(ctx.ProjectRoot, f))
	}
	for file, reasons := range refs {
		report.References = append(report.References, referenceEntry{
			File:    paths.Rel(ctx.ProjectRoot, file),
			Reasons: reasons,
		})
	}
	sort.Slice(report.References, func(i, j int) bool {
		return report.References[i].File < report.References[j].File
	})
	return report, nil
}

func refsMarkdown(report *refsReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s `%s`\n\n", report.Kind, report.Name)

	sb.WriteString(listMarkdown(fmt.Sprintf("Files (%d)", len(report.Files)), report.Files))

	fmt.Fprintf(&sb, "\n## References (%d)\n\n", len(report.References))
	for _, ref := range report.References {
		fmt.Fprintf(&sb, "- `%s`: %s\n", ref.File, strings.Join(ref.Reasons, "; "))
	}

	if len(report.Patterns) > 0 {
		sb.WriteString("\n## Patterns\n\n| Description | Pattern | Type |\n|---|---|---|\n")
		for _, p := range report.Patterns {
			fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", p.Description, p.Pattern, p.Type)
		}
	}
	return sb.String()
}

// listMarkdown renders a heading and a bullet list of code spans.
func listMarkdown(title string, items []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(&sb, "- `%s`\n", item)
	}
	return sb.String()
}
