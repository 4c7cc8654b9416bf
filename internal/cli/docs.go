package cli

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	builtindocs "github.com/modforge/modforge/docs"
	"github.com/modforge/modforge/internal/ui"
)

const docsDir = "guide"

type docsIndex struct {
	Title  string      `yaml:"title"`
	Topics []docsTopic `yaml:"topics"`
}

type docsTopic struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Path  string `json:"path" yaml:"path"`
}

type docsContent struct {
	docsTopic `yaml:",inline"`
	Content   string `json:"content" yaml:"content"`
}

func newDocsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Read the bundled guide",
		Long: `Read the guide bundled into the modforge binary.

Without a topic, lists the available topics.`,
		Example: `  modforge docs
  modforge docs renaming`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			index, err := loadDocsIndex(builtindocs.FS)
			if err != nil || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			ids := make([]string, len(index.Topics))
			for i, t := range index.Topics {
				ids[i] = t.ID
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := loadDocsIndex(builtindocs.FS)
			if err != nil {
				return g.out.fail(err, nil, nil)
			}

			if len(args) == 0 {
				if g.out.structured() {
					return g.out.success(index.Topics, nil)
				}
				g.out.println(ui.Header(index.Title))
				tbl := ui.NewTable(2)
				for _, t := range index.Topics {
					tbl.AddRow(ui.Name(t.ID), t.Title)
				}
				g.out.printf("%s", tbl.String())
				g.out.println(ui.Hint("Run 'modforge docs <topic>' to read one"))
				return nil
			}

			topic, content, err := readDocsTopic(builtindocs.FS, index, args[0])
			if err != nil {
				return g.out.fail(err, nil, nil)
			}
			if g.out.structured() {
				return g.out.success(docsContent{docsTopic: topic, Content: content}, nil)
			}
			g.out.printf("%s", displayFor(g.out.w).Render(content))
			return nil
		},
	}
}

func loadDocsIndex(fsys fs.FS) (*docsIndex, error) {
	data, err := fs.ReadFile(fsys, path.Join(docsDir, "index.yaml"))
	if err != nil {
		return nil, fmt.Errorf("bundled docs are missing: %w", err)
	}
	var index docsIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse docs index: %w", err)
	}
	return &index, nil
}

func readDocsTopic(fsys fs.FS, index *docsIndex, id string) (docsTopic, string, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, t := range index.Topics {
		if t.ID != id {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(docsDir, t.Path))
		if err != nil {
			return t, "", fmt.Errorf("failed to read topic %s: %w", id, err)
		}
		return t, string(data), nil
	}

	ids := make([]string, len(index.Topics))
	for i, t := range index.Topics {
		ids[i] = t.ID
	}
	return docsTopic{}, "", withCode(ErrInvalidInput, fmt.Errorf("unknown docs topic %q (available: %s)", id, strings.Join(ids, ", ")))
}
