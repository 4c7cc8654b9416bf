package renamers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modforge/modforge/internal/paths"
	"github.com/modforge/modforge/internal/project"
	"github.com/modforge/modforge/internal/rename"
)

// editor emits ContentReplace operations while simulating them in memory.
//
// Content is read from the original (pre-move) path because planning runs
// before anything moves; the emitted operation targets the post-move path.
// Simulating each replacement means an operation is only emitted when its
// old text will actually be present at the point it runs.
type editor struct {
	plan     *rename.Plan
	moves    *paths.MoveTable
	contents map[string]string
}

func newEditor(plan *rename.Plan, moves *paths.MoveTable) *editor {
	return &editor{plan: plan, moves: moves, contents: make(map[string]string)}
}

func (e *editor) replace(file, oldText, newText, description string) error {
	if oldText == "" || oldText == newText || !project.IsTextFile(file) {
		return nil
	}
	content, err := e.content(file)
	if err != nil {
		return err
	}
	if !strings.Contains(content, oldText) {
		return nil
	}
	e.contents[file] = strings.ReplaceAll(content, oldText, newText)
	e.plan.Replace(e.moves.Resolve(file), oldText, newText, description)
	return nil
}

// content returns file as planned so far. A missing file reads as empty.
func (e *editor) content(file string) (string, error) {
	if c, ok := e.contents[file]; ok {
		return c, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	e.contents[file] = string(data)
	return e.contents[file], nil
}

// newSearcher returns the reference searcher for ctx. With a version scope
// set, every other versions/ scope is excluded so edits never reach packs
// whose files are not moved.
func newSearcher(ctx *rename.Context) (*project.Searcher, error) {
	exclude := append([]string{}, ctx.Exclude...)
	if ctx.VersionScope != "" {
		all, err := project.VersionScopes(ctx.ProjectRoot, "")
		if err != nil {
			return nil, err
		}
		scope := filepath.ToSlash(filepath.Clean(ctx.VersionScope))
		for _, v := range all {
			if v.Name != scope {
				exclude = append(exclude, paths.Rel(ctx.ProjectRoot, v.Dir))
			}
		}
	}
	return project.NewSearcher(ctx.ProjectRoot, exclude), nil
}

// finish verifies ordering and returns the plan's operations.
func finish(plan *rename.Plan) ([]rename.Operation, error) {
	if err := plan.Verify(); err != nil {
		return nil, err
	}
	return plan.Operations(), nil
}

// sourceFiles returns existing <dir>/<name>.<ext> for every source extension.
func sourceFiles(dir, name string) []string {
	var out []string
	for _, ext := range project.SourceExtensions {
		p := filepath.Join(dir, name+ext)
		if project.IsRegularFile(p) {
			out = append(out, p)
		}
	}
	return out
}

// renamedBase swaps a leading old name in a file's base name for the new one.
// "RubySwordFabric.java" -> "RubyBladeFabric.java",
// "zombie_spawn_egg.json" -> "ghoul_spawn_egg.json".
func renamedBase(path string, pairs ...[2]string) string {
	dir, base := filepath.Split(path)
	for _, p := range pairs {
		if strings.HasPrefix(base, p[0]) {
			return filepath.Join(dir, p[1]+strings.TrimPrefix(base, p[0]))
		}
	}
	return path
}

func sortedUnique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// addReason appends reason to refs[file] unless already present.
func addReason(refs map[string][]string, file, reason string) {
	for _, r := range refs[file] {
		if r == reason {
			return
		}
	}
	refs[file] = append(refs[file], reason)
}

func quote(s string) string {
	return `"` + s + `"`
}

func isLangFile(path string) bool {
	slashed := filepath.ToSlash(path)
	return strings.Contains(slashed, "/lang/") && strings.EqualFold(filepath.Ext(path), ".json")
}

