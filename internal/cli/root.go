// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/modforge/modforge/internal/project"
	"github.com/modforge/modforge/internal/ui"
)

// globalOptions holds the persistent flags and the values resolved from them.
type globalOptions struct {
	projectDir  string
	jsonOutput  bool
	format      formatFlag
	verbose     bool
	modID       string
	packageName string

	out *printer
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "modforge",
		Short: "modforge - rename and refactor multi-loader Minecraft mods",
		Long: `modforge renames the pieces of a multi-loader Minecraft mod project.

A rename moves the class files, assets and data files of a component and
rewrites every reference to it across shared sources, loader sources,
resources and version-scoped packs. Renames run as a single batch that is
rolled back if any step fails.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.resolve(cmd)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(ErrInvalidInput, err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVarP(&g.projectDir, "project", "p", "", "Project root (default: current directory)")
	flags.BoolVar(&g.jsonOutput, "json", false, "Output in JSON format (same as --format json)")
	g.format = formatText
	flags.Var(&g.format, "format", "Output format: text, json or yaml")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	flags.StringVar(&g.modID, "mod-id", "", "Override mod_id from "+configFileHint)
	flags.StringVar(&g.packageName, "package", "", "Override package_name from "+configFileHint)

	cmd.AddCommand(
		newRenameCmd(g),
		newRefsCmd(g),
		newHistoryCmd(g),
		newDocsCmd(g),
		newVersionCmd(g),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return execute(newRootCmd(), os.Args[1:])
}

func execute(cmd *cobra.Command, args []string) error {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return nil
	}

	var reported *reportedError
	if !errors.As(err, &reported) {
		stderr := cmd.ErrOrStderr()
		fmt.Fprintln(stderr, ui.Error(err.Error()))
		if hint := suggestion(errorCode(err)); hint != "" {
			fmt.Fprintln(stderr, ui.Hint(hint))
		}
	}
	return err
}

func (g *globalOptions) resolve(cmd *cobra.Command) error {
	ui.SetupLogging(g.verbose)

	format := string(g.format)
	if g.jsonOutput {
		format = formatJSON
	}
	g.out = &printer{w: cmd.OutOrStdout(), format: format}
	return nil
}

// formatFlag is the --format value; it rejects unknown formats at parse time.
type formatFlag string

var _ pflag.Value = (*formatFlag)(nil)

func (f *formatFlag) String() string { return string(*f) }

func (f *formatFlag) Type() string { return "format" }

func (f *formatFlag) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case formatText, formatJSON, formatYAML:
		*f = formatFlag(v)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected text, json or yaml)", v)
	}
}

// projectRoot returns the absolute project directory.
func (g *globalOptions) projectRoot() (string, error) {
	dir := g.projectDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", withCode(ErrInvalidInput, fmt.Errorf("invalid project path %q: %w", dir, err))
	}
	if !project.IsDir(abs) {
		return "", withCode(ErrInvalidInput, fmt.Errorf("project directory not found: %s", abs))
	}
	return abs, nil
}

// printWarnings writes warnings to stderr in text mode.
func printWarnings(w io.Writer, warnings []Warning) {
	for _, warn := range warnings {
		fmt.Fprintln(w, ui.Warning(warn.Message))
	}
}

// displayFor returns a display context for w. Markdown is only rendered when
// w is the process stdout attached to a terminal.
func displayFor(w io.Writer) *ui.DisplayContext {
	if f, ok := w.(*os.File); ok && f == os.Stdout {
		return ui.NewDisplayContext()
	}
	return ui.NewDisplayContextWithWidth(ui.DefaultTermWidth, false)
}
