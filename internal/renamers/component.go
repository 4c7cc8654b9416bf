package renamers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/modforge/modforge/internal/naming"
	"github.com/modforge/modforge/internal/paths"
	"github.com/modforge/modforge/internal/project"
	"github.com/modforge/modforge/internal/rename"
)

// resourcePrefixes are the path prefixes a quoted resource location may carry
// before the ID: "testmod:ruby_sword", "testmod:item/ruby_sword", ...
var resourcePrefixes = []string{"", "item/", "items/", "block/", "blocks/", "entity/", "entities/"}

// assetRule is one file named after a component inside a pack root.
type assetRule struct {
	side string // "assets" or "data"
	dir  string // relative to <side>/<modId>/
	ext  string
	// suffix is appended to the ID: "_spawn_egg".
	suffix      string
	description string
}

func (a assetRule) path(packRoot, modID, id string) string {
	return filepath.Join(packRoot, a.side, modID, filepath.FromSlash(a.dir), id+a.suffix+a.ext)
}

// idVariant is one registry ID derived from the component ID, with the lang
// key prefixes it is translated under.
type idVariant struct {
	suffix       string
	langPrefixes []string
}

// componentSpec configures a componentRenamer for one kind.
type componentSpec struct {
	kind     rename.Kind
	category string
	// platformNames are fmt templates taking (ClassName, LoaderSuffix).
	platformNames []string
	// extraClasses are class files outside the category dir, as
	// (subdir, class-name template taking ClassName).
	extraClasses [][2]string
	assets       []assetRule
	ids          []idVariant
}

// componentRenamer renames a registry component: a class, its loader
// platform classes, and the asset and data files named after its ID.
type componentRenamer struct {
	spec componentSpec
}

type componentNames struct {
	oldID, newID       string
	oldClass, newClass string
	oldConst, newConst string
}

func namesOf(ctx *rename.Context) componentNames {
	return componentNames{
		oldID:    ctx.OldName,
		newID:    ctx.NewName,
		oldClass: naming.ToPascalCase(ctx.OldName),
		newClass: naming.ToPascalCase(ctx.NewName),
		oldConst: naming.ToUpperSnake(ctx.OldName),
		newConst: naming.ToUpperSnake(ctx.NewName),
	}
}

func (r *componentRenamer) Kind() rename.Kind { return r.spec.kind }

// primaryFiles returns the class files in the category directory.
func (r *componentRenamer) primaryFiles(ctx *rename.Context, className string) ([]string, error) {
	roots, err := project.SourceRoots(ctx.ProjectRoot)
	if err != nil {
		return nil, err
	}
	pkgPath := filepath.FromSlash(naming.PackageToPath(ctx.PackageName))
	var out []string
	for _, root := range roots {
		out = append(out, sourceFiles(filepath.Join(root.Dir, pkgPath, r.spec.category), className)...)
	}
	return out, nil
}

// discover finds every existing file named after id/className.
func (r *componentRenamer) discover(ctx *rename.Context, id, className string) ([]string, error) {
	roots, err := project.SourceRoots(ctx.ProjectRoot)
	if err != nil {
		return nil, err
	}
	pkgPath := filepath.FromSlash(naming.PackageToPath(ctx.PackageName))

	var found []string
	for _, root := range roots {
		base := filepath.Join(root.Dir, pkgPath)
		found = append(found, sourceFiles(filepath.Join(base, r.spec.category), className)...)
		for _, extra := range r.spec.extraClasses {
			found = append(found, sourceFiles(filepath.Join(base, extra[0]), fmt.Sprintf(extra[1], className))...)
		}
		if !root.IsLoader() {
			continue
		}
		suffix := naming.LoaderSuffix(root.Module)
		platformDir := filepath.Join(base, "platform", root.Module)
		for _, tmpl := range r.spec.platformNames {
			found = append(found, sourceFiles(platformDir, fmt.Sprintf(tmpl, className, suffix))...)
		}
	}

	packRoots, err := project.PackRoots(ctx.ProjectRoot, ctx.VersionScope)
	if err != nil {
		return nil, err
	}
	for _, pr := range packRoots {
		for _, rule := range r.spec.assets {
			p := rule.path(pr, ctx.ModID, id)
			if project.IsRegularFile(p) {
				found = append(found, p)
			}
		}
	}
	return sortedUnique(found), nil
}

func (r *componentRenamer) Discover(ctx *rename.Context) ([]string, error) {
	n := namesOf(ctx)
	return r.discover(ctx, n.oldID, n.oldClass)
}

func (r *componentRenamer) FindReferences(ctx *rename.Context, discovered []string) (map[string][]string, error) {
	n := namesOf(ctx)
	reasons := map[string]string{
		n.oldClass: "class name " + n.oldClass,
		"import " + ctx.PackageName + "." + r.spec.category + "." + n.oldClass: "imports " + n.oldClass,
	}
	for _, v := range r.spec.ids {
		id := n.oldID + v.suffix
		reasons[quote(id)] = "quoted ID " + quote(id)
		for _, prefix := range resourcePrefixes {
			loc := ctx.ModID + ":" + prefix + id
			reasons[loc] = "resource location " + loc
		}
		for _, lp := range v.langPrefixes {
			key := lp + "." + ctx.ModID + "." + id
			reasons[key] = "lang key " + key
		}
	}

	needles := make([]string, 0, len(reasons))
	for needle := range reasons {
		needles = append(needles, needle)
	}
	sort.Strings(needles)
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
		addReason(refs, f, "named after "+n.oldID)
	}
	for _, file := range sortedKeys(matches) {
		for _, needle := range matches[file] {
			addReason(refs, file, reasons[needle])
		}
	}
	return refs, nil
}

func (r *componentRenamer) CheckConflicts(ctx *rename.Context) ([]string, error) {
	n := namesOf(ctx)
	existing, err := r.discover(ctx, n.newID, n.newClass)
	if err != nil {
		return nil, err
	}
	var conflicts []string
	for _, p := range existing {
		conflicts = append(conflicts, "already exists: "+paths.Rel(ctx.ProjectRoot, p))
	}

	siblings, err := r.prefixSiblings(ctx, n.oldClass)
	if err != nil {
		return nil, err
	}
	for _, p := range siblings {
		conflicts = append(conflicts, fmt.Sprintf("%s also starts with %s and would be renamed too", paths.Rel(ctx.ProjectRoot, p), n.oldClass))
	}
	return conflicts, nil
}

// prefixSiblings returns category class files whose name extends className
// at a word boundary: RubySword for Ruby. Class-name edits are literal, so
// they would rewrite these too.
func (r *componentRenamer) prefixSiblings(ctx *rename.Context, className string) ([]string, error) {
	roots, err := project.SourceRoots(ctx.ProjectRoot)
	if err != nil {
		return nil, err
	}
	pkgPath := filepath.FromSlash(naming.PackageToPath(ctx.PackageName))

	var out []string
	for _, root := range roots {
		dir := filepath.Join(root.Dir, pkgPath, r.spec.category)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}
		for _, e := range entries {
			name := e.Name()
			if !e.Type().IsRegular() || !project.IsSourceFile(name) {
				continue
			}
			base := strings.TrimSuffix(name, filepath.Ext(name))
			if len(base) <= len(className) || !strings.HasPrefix(base, className) {
				continue
			}
			next := rune(base[len(className)])
			if unicode.IsUpper(next) || unicode.IsDigit(next) {
				out = append(out, filepath.Join(dir, name))
			}
		}
	}
	return out, nil
}

func (r *componentRenamer) PlanRename(ctx *rename.Context) ([]rename.Operation, error) {
	n := namesOf(ctx)
	discovered, err := r.Discover(ctx)
	if err != nil {
		return nil, err
	}
	if len(discovered) == 0 {
		return nil, fmt.Errorf("%w: no %s named %q", rename.ErrNothingToRename, r.spec.kind, n.oldID)
	}

	plan := rename.NewPlan()
	moves := &paths.MoveTable{}
	for _, f := range discovered {
		to := renamedBase(f, [2]string{n.oldClass, n.newClass}, [2]string{n.oldID, n.newID})
		if to == f {
			continue
		}
		plan.Rename(f, to)
		moves.Add(f, to)
	}

	// The bare ID catches every quoted form; the editor checks the precise ones.
	searcher, err := newSearcher(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := searcher.FindFilesContainingAny([]string{n.oldClass, n.oldConst, n.oldID})
	if err != nil {
		return nil, fmt.Errorf("failed to search references: %w", err)
	}
	candidates := append([]string{}, discovered...)
	candidates = sortedUnique(append(candidates, sortedKeys(matches)...))

	ed := newEditor(plan, moves)
	for _, file := range candidates {
		if err := r.planIdentifierEdits(ed, file, n); err != nil {
			return nil, err
		}
		if err := r.planIDEdits(ed, ctx, file, n); err != nil {
			return nil, err
		}
	}
	return finish(plan)
}

// planIdentifierEdits rewrites the class name everywhere and the UPPER_SNAKE
// registry constant in source files.
func (r *componentRenamer) planIdentifierEdits(ed *editor, file string, n componentNames) error {
	if err := ed.replace(file, n.oldClass, n.newClass, "class name"); err != nil {
		return err
	}
	if !project.IsSourceFile(file) {
		return nil
	}
	return ed.replace(file, n.oldConst, n.newConst, "registry constant")
}

// planIDEdits rewrites quoted IDs, resource locations and lang entries.
func (r *componentRenamer) planIDEdits(ed *editor, ctx *rename.Context, file string, n componentNames) error {
	lang := isLangFile(file)
	for _, v := range r.spec.ids {
		oldID, newID := n.oldID+v.suffix, n.newID+v.suffix

		if err := ed.replace(file, quote(oldID), quote(newID), "quoted ID"); err != nil {
			return err
		}
		for _, prefix := range resourcePrefixes {
			oldLoc := quote(ctx.ModID + ":" + prefix + oldID)
			newLoc := quote(ctx.ModID + ":" + prefix + newID)
			if err := ed.replace(file, oldLoc, newLoc, "resource location"); err != nil {
				return err
			}
		}
		for _, lp := range v.langPrefixes {
			oldKey := quote(lp + "." + ctx.ModID + "." + oldID)
			newKey := quote(lp + "." + ctx.ModID + "." + newID)
			if err := ed.replace(file, oldKey, newKey, "lang key"); err != nil {
				return err
			}
		}
		if lang {
			oldName := quote(naming.ToDisplayName(oldID))
			newName := quote(naming.ToDisplayName(newID))
			if err := ed.replace(file, oldName, newName, "display name"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *componentRenamer) Validate(ctx *rename.Context) (bool, error) {
	n := namesOf(ctx)
	old, err := r.discover(ctx, n.oldID, n.oldClass)
	if err != nil {
		return false, err
	}
	if len(old) > 0 {
		return false, nil
	}
	primary, err := r.primaryFiles(ctx, n.newClass)
	if err != nil {
		return false, err
	}
	return len(primary) > 0, nil
}

func (r *componentRenamer) FilePatterns(ctx *rename.Context) []FilePattern {
	n := namesOf(ctx)
	pkgPath := naming.PackageToPath(ctx.PackageName)
	srcGlob := "shared/*/src/main/{java,kotlin}/" + pkgPath

	patterns := []FilePattern{{
		Description: "component class",
		Pattern:     srcGlob + "/" + r.spec.category + "/" + n.oldClass + ".{java,kt}",
		Type:        PatternSource,
	}}
	for _, extra := range r.spec.extraClasses {
		name := fmt.Sprintf(extra[1], n.oldClass)
		patterns = append(patterns, FilePattern{
			Description: name + " class",
			Pattern:     srcGlob + "/" + extra[0] + "/" + name + ".{java,kt}",
			Type:        PatternSource,
		})
	}
	for _, tmpl := range r.spec.platformNames {
		patterns = append(patterns, FilePattern{
			Description: "loader platform class",
			Pattern:     srcGlob + "/platform/<loader>/" + fmt.Sprintf(tmpl, n.oldClass, "<Loader>") + ".{java,kt}",
			Type:        PatternSource,
		})
	}
	for _, rule := range r.spec.assets {
		typ := PatternAsset
		if rule.side == "data" {
			typ = PatternData
		}
		patterns = append(patterns, FilePattern{
			Description: rule.description,
			Pattern:     "versions/<scope>/" + rule.side + "/" + ctx.ModID + "/" + rule.dir + "/" + n.oldID + rule.suffix + rule.ext,
			Type:        typ,
		})
	}
	for _, v := range r.spec.ids {
		for _, lp := range v.langPrefixes {
			patterns = append(patterns, FilePattern{
				Description: "lang entry",
				Pattern:     "assets/" + ctx.ModID + "/lang/*.json: " + strings.Join([]string{lp, ctx.ModID, n.oldID + v.suffix}, "."),
				Type:        PatternLang,
			})
		}
	}
	return patterns
}
