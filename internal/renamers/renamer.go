// Package renamers implements one rename strategy per component kind.
//
// Every strategy has the same shape: find what carries the old name, check
// that nothing carries the new name yet, and produce an ordered operation
// list for rename.Executor. Planning never mutates the project.
package renamers

import (
	"fmt"

	"github.com/modforge/modforge/internal/rename"
)

// ComponentRenamer is the strategy interface implemented per component kind.
type ComponentRenamer interface {
	// Kind returns the component kind handled.
	Kind() rename.Kind

	// Discover locates the files that carry the old name by convention.
	// It returns an empty list, not an error, when nothing matches.
	Discover(ctx *rename.Context) ([]string, error)

	// FindReferences searches the whole project and returns, per file, the
	// reasons it references the component.
	FindReferences(ctx *rename.Context, discovered []string) (map[string][]string, error)

	// CheckConflicts lists artifacts the new name would produce that already exist.
	CheckConflicts(ctx *rename.Context) ([]string, error)

	// PlanRename returns the ordered operations that perform the rename.
	PlanRename(ctx *rename.Context) ([]rename.Operation, error)

	// Validate reports whether the new-name artifacts exist and the old-name
	// artifacts are gone. It never mutates the project.
	Validate(ctx *rename.Context) (bool, error)

	// FilePatterns describes the files this renamer expects, for reporting.
	FilePatterns(ctx *rename.Context) []FilePattern
}

// FilePattern describes one expected file or directory.
type FilePattern struct {
	Description string `json:"description" yaml:"description"`
	Pattern     string `json:"pattern" yaml:"pattern"`
	Type        string `json:"type" yaml:"type"`
}

// Pattern types.
const (
	PatternSource    = "source"
	PatternAsset     = "asset"
	PatternData      = "data"
	PatternLang      = "lang"
	PatternDirectory = "directory"
	PatternConfig    = "config"
)

// For returns the renamer for kind.
func For(kind rename.Kind) (ComponentRenamer, error) {
	switch kind {
	case rename.KindItem:
		return NewItemRenamer(), nil
	case rename.KindBlock:
		return NewBlockRenamer(), nil
	case rename.KindEntity:
		return NewEntityRenamer(), nil
	case rename.KindEnchantment:
		return NewEnchantmentRenamer(), nil
	case rename.KindBiome:
		return NewBiomeRenamer(), nil
	case rename.KindMod:
		return NewModRenamer(), nil
	case rename.KindPackage:
		return NewPackageRenamer(), nil
	default:
		return nil, fmt.Errorf("no renamer for kind %q", kind)
	}
}
