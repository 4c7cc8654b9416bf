package renamers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modforge/modforge/internal/naming"
	"github.com/modforge/modforge/internal/paths"
	"github.com/modforge/modforge/internal/project"
	"github.com/modforge/modforge/internal/rename"
)

// PackageRenamer moves a Java/Kotlin package in every source root and
// rewrites package declarations and imports.
type PackageRenamer struct{}

// NewPackageRenamer creates a PackageRenamer.
func NewPackageRenamer() *PackageRenamer {
	return &PackageRenamer{}
}

func (r *PackageRenamer) Kind() rename.Kind { return rename.KindPackage }

// packageDirs returns the existing <root>/<pkg path> directories.
func packageDirs(projectRoot, pkg string) ([]string, error) {
	roots, err := project.SourceRoots(projectRoot)
	if err != nil {
		return nil, err
	}
	rel := filepath.FromSlash(naming.PackageToPath(pkg))
	var out []string
	for _, root := range roots {
		dir := filepath.Join(root.Dir, rel)
		if project.IsDir(dir) {
			out = append(out, dir)
		}
	}
	return out, nil
}

func (r *PackageRenamer) Discover(ctx *rename.Context) ([]string, error) {
	dirs, err := packageDirs(ctx.ProjectRoot, ctx.OldName)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, dir := range dirs {
		files, err := project.ListFiles(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}
		out = append(out, files...)
	}
	return sortedUnique(out), nil
}

func (r *PackageRenamer) FindReferences(ctx *rename.Context, discovered []string) (map[string][]string, error) {
	refs := make(map[string][]string)
	for _, f := range discovered {
		addReason(refs, f, "inside package "+ctx.OldName)
	}

	old := ctx.OldName
	searches := [][2]string{
		{"package " + old, "declares package " + old},
		{"import " + old + ".", "imports from " + old},
		{"import static " + old + ".", "static import from " + old},
		{quote(old), "quoted package name"},
		{`"` + old + ".", "qualified name in string"},
	}
	reasons := make(map[string]string, len(searches))
	needles := make([]string, 0, len(searches))
	for _, s := range searches {
		reasons[s[0]] = s[1]
		needles = append(needles, s[0])
	}
	searcher, err := newSearcher(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := searcher.FindFilesContainingAny(needles)
	if err != nil {
		return nil, fmt.Errorf("failed to search references: %w", err)
	}
	for _, file := range sortedKeys(matches) {
		for _, needle := range matches[file] {
			addReason(refs, file, reasons[needle])
		}
	}
	return refs, nil
}

func (r *PackageRenamer) CheckConflicts(ctx *rename.Context) ([]string, error) {
	var conflicts []string
	if !naming.IsValidPackage(ctx.NewName) {
		conflicts = append(conflicts, fmt.Sprintf("invalid package name %q", ctx.NewName))
		return conflicts, nil
	}
	if naming.IsSubPackage(ctx.NewName, ctx.OldName) || naming.IsSubPackage(ctx.OldName, ctx.NewName) {
		conflicts = append(conflicts, fmt.Sprintf("%s and %s are nested inside each other", ctx.OldName, ctx.NewName))
	}
	existing, err := r.targetConflicts(ctx.ProjectRoot, ctx.OldName, ctx.NewName)
	if err != nil {
		return nil, err
	}
	return append(conflicts, existing...), nil
}

// targetConflicts lists source roots where the package would move onto an
// existing directory.
func (r *PackageRenamer) targetConflicts(projectRoot, oldPkg, newPkg string) ([]string, error) {
	dirs, err := packageDirs(projectRoot, oldPkg)
	if err != nil {
		return nil, err
	}
	var conflicts []string
	for _, dir := range dirs {
		target := packageTarget(dir, oldPkg, newPkg)
		if project.Exists(target) {
			conflicts = append(conflicts, "already exists: "+paths.Rel(projectRoot, target))
		}
	}
	return conflicts, nil
}

// packageTarget maps <root>/<old path> to <root>/<new path>.
func packageTarget(dir, oldPkg, newPkg string) string {
	oldRel := filepath.FromSlash(naming.PackageToPath(oldPkg))
	root := dir[:len(dir)-len(oldRel)]
	return filepath.Join(root, filepath.FromSlash(naming.PackageToPath(newPkg)))
}

func (r *PackageRenamer) PlanRename(ctx *rename.Context) ([]rename.Operation, error) {
	plan := rename.NewPlan()
	moves := &paths.MoveTable{}
	ed := newEditor(plan, moves)

	moved, err := r.planMove(ctx, ctx.OldName, ctx.NewName, plan, moves)
	if err != nil {
		return nil, err
	}
	if moved == nil {
		return nil, fmt.Errorf("%w: package %s not found in any source root", rename.ErrNothingToRename, ctx.OldName)
	}
	if err := r.planEdits(ctx, ed, moved, ctx.OldName, ctx.NewName); err != nil {
		return nil, err
	}
	return finish(plan)
}

// planMove emits one FileRename per source root holding oldPkg and returns
// every file under the moved directories, enumerated before anything moves.
// It returns nil when no root holds the package.
func (r *PackageRenamer) planMove(ctx *rename.Context, oldPkg, newPkg string, plan *rename.Plan, moves *paths.MoveTable) ([]string, error) {
	dirs, err := packageDirs(ctx.ProjectRoot, oldPkg)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, nil
	}
	files := []string{}
	for _, dir := range dirs {
		list, err := project.ListFiles(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}
		files = append(files, list...)
		target := packageTarget(dir, oldPkg, newPkg)
		plan.Rename(dir, target)
		moves.Add(dir, target)
	}
	return files, nil
}

// planEdits rewrites package declarations in moved files, imports anywhere
// in the project and qualified names inside quoted strings.
func (r *PackageRenamer) planEdits(ctx *rename.Context, ed *editor, moved []string, oldPkg, newPkg string) error {
	for _, f := range moved {
		if !project.IsSourceFile(f) {
			continue
		}
		for _, decl := range [][2]string{
			{"package " + oldPkg + ";", "package " + newPkg + ";"},
			{"package " + oldPkg + ".", "package " + newPkg + "."},
			{"package " + oldPkg + "\n", "package " + newPkg + "\n"},
			{"package " + oldPkg + "\r\n", "package " + newPkg + "\r\n"},
		} {
			if err := ed.replace(f, decl[0], decl[1], "package declaration"); err != nil {
				return err
			}
		}
		// A Kotlin file may end right after its declaration.
		content, err := ed.content(f)
		if err != nil {
			return err
		}
		if strings.HasSuffix(strings.TrimRight(content, " \t"), "package "+oldPkg) {
			if err := ed.replace(f, "package "+oldPkg, "package "+newPkg, "package declaration"); err != nil {
				return err
			}
		}
	}

	searcher, err := newSearcher(ctx)
	if err != nil {
		return err
	}
	matches, err := searcher.FindFilesContainingAny([]string{
		"import " + oldPkg + ".",
		"import static " + oldPkg + ".",
		`"` + oldPkg,
	})
	if err != nil {
		return fmt.Errorf("failed to search imports: %w", err)
	}
	for _, f := range sortedKeys(matches) {
		if project.IsSourceFile(f) {
			if err := ed.replace(f, "import "+oldPkg+".", "import "+newPkg+".", "import"); err != nil {
				return err
			}
			if err := ed.replace(f, "import static "+oldPkg+".", "import static "+newPkg+".", "static import"); err != nil {
				return err
			}
			continue
		}
		if err := ed.replace(f, `"`+oldPkg+".", `"`+newPkg+".", "qualified name"); err != nil {
			return err
		}
		if err := ed.replace(f, quote(oldPkg), quote(newPkg), "package name"); err != nil {
			return err
		}
	}
	return nil
}

func (r *PackageRenamer) Validate(ctx *rename.Context) (bool, error) {
	old, err := packageDirs(ctx.ProjectRoot, ctx.OldName)
	if err != nil {
		return false, err
	}
	if len(old) > 0 {
		return false, nil
	}
	moved, err := packageDirs(ctx.ProjectRoot, ctx.NewName)
	if err != nil {
		return false, err
	}
	return len(moved) > 0, nil
}

func (r *PackageRenamer) FilePatterns(ctx *rename.Context) []FilePattern {
	return []FilePattern{
		{
			Description: "package directory",
			Pattern:     "shared/*/src/main/{java,kotlin}/" + naming.PackageToPath(ctx.OldName),
			Type:        PatternDirectory,
		},
		{
			Description: "package declarations and imports",
			Pattern:     "**/*.{java,kt}: " + ctx.OldName,
			Type:        PatternSource,
		},
	}
}
