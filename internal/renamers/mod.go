package renamers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modforge/modforge/internal/config"
	"github.com/modforge/modforge/internal/naming"
	"github.com/modforge/modforge/internal/paths"
	"github.com/modforge/modforge/internal/project"
	"github.com/modforge/modforge/internal/rename"
)

// packSides are the directories under a pack root keyed by mod ID.
var packSides = []string{"assets", "data"}

// ModRenamer changes the mod ID project-wide: config, pack directories,
// namespaced references, mod-ID-prefixed resource files and, when the
// sanitized ID changes, the root package.
type ModRenamer struct {
	packages *PackageRenamer
}

// NewModRenamer creates a ModRenamer.
func NewModRenamer() *ModRenamer {
	return &ModRenamer{packages: NewPackageRenamer()}
}

func (r *ModRenamer) Kind() rename.Kind { return rename.KindMod }

// packageChange returns the package the mod moves to. ok is false when the
// sanitized ID is unchanged or the package does not carry it.
func packageChange(ctx *rename.Context) (newPkg string, ok bool) {
	oldSeg := naming.SanitizePackageSegment(ctx.OldName)
	newSeg := naming.SanitizePackageSegment(ctx.NewName)
	if oldSeg == newSeg || ctx.PackageName == "" {
		return "", false
	}
	return naming.ReplacePackageSegment(ctx.PackageName, oldSeg, newSeg)
}

// packDirs returns existing <packRoot>/{assets,data}/<modID> directories.
func packDirs(ctx *rename.Context, modID string) ([]string, error) {
	roots, err := project.PackRoots(ctx.ProjectRoot, ctx.VersionScope)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, root := range roots {
		for _, side := range packSides {
			dir := filepath.Join(root, side, modID)
			if project.IsDir(dir) {
				out = append(out, dir)
			}
		}
	}
	return out, nil
}

// prefixedResources returns files directly inside resource roots whose name
// starts with "<modID>.": mixin configs, access wideners.
func prefixedResources(projectRoot, modID string) ([]string, error) {
	roots, err := project.ResourceRoots(projectRoot)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", root, err)
		}
		for _, e := range entries {
			if e.Type().IsRegular() && strings.HasPrefix(e.Name(), modID+".") {
				out = append(out, filepath.Join(root, e.Name()))
			}
		}
	}
	return out, nil
}

func (r *ModRenamer) Discover(ctx *rename.Context) ([]string, error) {
	var found []string
	if cfg := config.Path(ctx.ProjectRoot); project.IsRegularFile(cfg) {
		found = append(found, cfg)
	}

	dirs, err := packDirs(ctx, ctx.OldName)
	if err != nil {
		return nil, err
	}
	found = append(found, dirs...)

	resources, err := prefixedResources(ctx.ProjectRoot, ctx.OldName)
	if err != nil {
		return nil, err
	}
	found = append(found, resources...)

	if _, ok := packageChange(ctx); ok {
		pkgDirs, err := packageDirs(ctx.ProjectRoot, ctx.PackageName)
		if err != nil {
			return nil, err
		}
		found = append(found, pkgDirs...)
	}

	searcher, err := newSearcher(ctx)
	if err != nil {
		return nil, err
	}
	quoted, err := searcher.FindFilesContaining(quote(ctx.OldName))
	if err != nil {
		return nil, fmt.Errorf("failed to search for %s: %w", quote(ctx.OldName), err)
	}
	return sortedUnique(append(found, quoted...)), nil
}

func (r *ModRenamer) FindReferences(ctx *rename.Context, discovered []string) (map[string][]string, error) {
	old := ctx.OldName
	searches := [][2]string{
		{quote(old), "quoted mod ID"},
		{`"` + old + ":", "resource location namespace " + old + ":"},
		{"." + old + ".", "namespaced key ." + old + "."},
		{"mod_id=" + old, "gradle property mod_id"},
		{"[[dependencies." + old + "]]", "mods.toml dependency block"},
	}
	if ctx.PackageName != "" {
		searches = append(searches,
			[2]string{"import " + ctx.PackageName + ".", "imports from " + ctx.PackageName},
			[2]string{`"` + ctx.PackageName + ".", "qualified name in string"})
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

	refs := make(map[string][]string)
	for _, f := range discovered {
		if project.IsDir(f) {
			addReason(refs, f, "directory named after "+old)
		} else if strings.HasPrefix(filepath.Base(f), old+".") {
			addReason(refs, f, "file named after "+old)
		}
	}
	for _, file := range sortedKeys(matches) {
		for _, needle := range matches[file] {
			addReason(refs, file, reasons[needle])
		}
	}
	return refs, nil
}

func (r *ModRenamer) CheckConflicts(ctx *rename.Context) ([]string, error) {
	var conflicts []string

	existing, err := packDirs(ctx, ctx.NewName)
	if err != nil {
		return nil, err
	}
	for _, dir := range existing {
		conflicts = append(conflicts, "already exists: "+paths.Rel(ctx.ProjectRoot, dir))
	}

	resources, err := prefixedResources(ctx.ProjectRoot, ctx.NewName)
	if err != nil {
		return nil, err
	}
	for _, f := range resources {
		conflicts = append(conflicts, "already exists: "+paths.Rel(ctx.ProjectRoot, f))
	}

	if newPkg, ok := packageChange(ctx); ok {
		if naming.IsSubPackage(newPkg, ctx.PackageName) || naming.IsSubPackage(ctx.PackageName, newPkg) {
			conflicts = append(conflicts, fmt.Sprintf("%s and %s are nested inside each other", ctx.PackageName, newPkg))
		}
		pkgConflicts, err := r.packages.targetConflicts(ctx.ProjectRoot, ctx.PackageName, newPkg)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, pkgConflicts...)
	}
	return conflicts, nil
}

func (r *ModRenamer) PlanRename(ctx *rename.Context) ([]rename.Operation, error) {
	oldID, newID := ctx.OldName, ctx.NewName
	plan := rename.NewPlan()
	moves := &paths.MoveTable{}

	// Every move is planned first so each edit can target its post-move path.
	dirs, err := packDirs(ctx, oldID)
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		to := filepath.Join(filepath.Dir(dir), newID)
		plan.Rename(dir, to)
		moves.Add(dir, to)
	}

	resources, err := prefixedResources(ctx.ProjectRoot, oldID)
	if err != nil {
		return nil, err
	}
	for _, f := range resources {
		to := renamedBase(f, [2]string{oldID + ".", newID + "."})
		plan.Rename(f, to)
		moves.Add(f, to)
	}

	newPkg, pkgChanges := packageChange(ctx)
	var movedSources []string
	if pkgChanges {
		movedSources, err = r.packages.planMove(ctx, ctx.PackageName, newPkg, plan, moves)
		if err != nil {
			return nil, err
		}
	}

	ed := newEditor(plan, moves)

	cfg := config.Path(ctx.ProjectRoot)
	if err := ed.replace(cfg, quote(oldID), quote(newID), "mod ID in config"); err != nil {
		return nil, err
	}
	if pkgChanges {
		if err := ed.replace(cfg, quote(ctx.PackageName), quote(newPkg), "package name in config"); err != nil {
			return nil, err
		}
	}
	gradleProps := filepath.Join(ctx.ProjectRoot, "gradle.properties")
	for _, form := range []string{"mod_id=%s", "mod_id = %s"} {
		if err := ed.replace(gradleProps, fmt.Sprintf(form, oldID), fmt.Sprintf(form, newID), "gradle property"); err != nil {
			return nil, err
		}
	}

	searcher, err := newSearcher(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := searcher.FindFilesContainingAny([]string{
		quote(oldID),
		`"` + oldID + ":",
		"." + oldID + ".",
		`"` + oldID + ".",
		"[[dependencies." + oldID + "]]",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search references: %w", err)
	}
	for _, file := range sortedKeys(matches) {
		if err := r.planReferenceEdits(ed, file, oldID, newID); err != nil {
			return nil, err
		}
	}

	if pkgChanges && movedSources != nil {
		if err := r.packages.planEdits(ctx, ed, movedSources, ctx.PackageName, newPkg); err != nil {
			return nil, err
		}
	}

	if plan.Len() == 0 {
		return nil, fmt.Errorf("%w: nothing references mod %q", rename.ErrNothingToRename, oldID)
	}
	return finish(plan)
}

// planReferenceEdits rewrites the namespaced forms of the mod ID in one file.
func (r *ModRenamer) planReferenceEdits(ed *editor, file, oldID, newID string) error {
	edits := [][3]string{
		{quote(oldID), quote(newID), "quoted mod ID"},
		{`"` + oldID + ":", `"` + newID + ":", "resource location namespace"},
		{`"` + oldID + ".", `"` + newID + ".", "mod-ID-prefixed file name"},
	}
	if isLangFile(file) {
		edits = append(edits, [3]string{"." + oldID + ".", "." + newID + ".", "lang key namespace"})
	}
	if strings.EqualFold(filepath.Ext(file), ".toml") {
		edits = append(edits, [3]string{"[[dependencies." + oldID + "]]", "[[dependencies." + newID + "]]", "dependency block"})
	}
	for _, e := range edits {
		if err := ed.replace(file, e[0], e[1], e[2]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ModRenamer) Validate(ctx *rename.Context) (bool, error) {
	if cfgPath := config.Path(ctx.ProjectRoot); project.IsRegularFile(cfgPath) {
		cfg, err := config.LoadFrom(cfgPath)
		if err != nil {
			return false, err
		}
		if cfg.ModID != ctx.NewName {
			return false, nil
		}
	}

	oldDirs, err := packDirs(ctx, ctx.OldName)
	if err != nil {
		return false, err
	}
	if len(oldDirs) > 0 {
		return false, nil
	}

	if newPkg, ok := packageChange(ctx); ok {
		oldPkg, err := packageDirs(ctx.ProjectRoot, ctx.PackageName)
		if err != nil {
			return false, err
		}
		if len(oldPkg) > 0 {
			return false, nil
		}
		moved, err := packageDirs(ctx.ProjectRoot, newPkg)
		if err != nil {
			return false, err
		}
		if len(moved) == 0 {
			return false, nil
		}
	}
	return true, nil
}

func (r *ModRenamer) FilePatterns(ctx *rename.Context) []FilePattern {
	old := ctx.OldName
	patterns := []FilePattern{
		{Description: "project config", Pattern: config.FileName, Type: PatternConfig},
		{Description: "gradle properties", Pattern: "gradle.properties: mod_id=" + old, Type: PatternConfig},
		{Description: "assets namespace", Pattern: "versions/<scope>/assets/" + old, Type: PatternDirectory},
		{Description: "data namespace", Pattern: "versions/<scope>/data/" + old, Type: PatternDirectory},
		{Description: "shared resources", Pattern: "shared/*/src/main/resources/{assets,data}/" + old, Type: PatternDirectory},
		{Description: "mod-ID-prefixed resources", Pattern: "shared/*/src/main/resources/" + old + ".*", Type: PatternConfig},
		{Description: "lang keys", Pattern: "assets/" + old + "/lang/*.json: *." + old + ".*", Type: PatternLang},
	}
	if newPkg, ok := packageChange(ctx); ok {
		patterns = append(patterns, FilePattern{
			Description: "root package (moves to " + newPkg + ")",
			Pattern:     "shared/*/src/main/{java,kotlin}/" + naming.PackageToPath(ctx.PackageName),
			Type:        PatternDirectory,
		})
	}
	return patterns
}
