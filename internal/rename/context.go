package rename

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modforge/modforge/internal/naming"
)

// ErrInvalidContext is returned by Context.Check.
var ErrInvalidContext = errors.New("invalid rename")

// Context carries everything a renamer needs for one invocation.
// It is built fresh per CLI call and never persisted.
type Context struct {
	// ProjectRoot is the absolute project directory.
	ProjectRoot string
	// ModID is the current registry namespace.
	ModID string
	// PackageName is the current root package.
	PackageName string

	OldName string
	NewName string
	Kind    Kind

	// VersionScope limits asset/data lookups to one versions/ entry. Empty means all.
	VersionScope string

	DryRun bool
	Force  bool

	// Exclude lists project-relative directories skipped by reference search.
	Exclude []string
}

// Check validates the names against the kind's syntax.
func (c *Context) Check() error {
	if strings.TrimSpace(c.ProjectRoot) == "" {
		return fmt.Errorf("%w: project root is required", ErrInvalidContext)
	}
	if c.OldName == "" || c.NewName == "" {
		return fmt.Errorf("%w: old and new names are required", ErrInvalidContext)
	}
	if c.OldName == c.NewName {
		return fmt.Errorf("%w: old and new names are both %q", ErrInvalidContext, c.OldName)
	}

	switch {
	case c.Kind.IsComponent():
		if c.ModID == "" || c.PackageName == "" {
			return fmt.Errorf("%w: mod ID and package name are required to rename a %s", ErrInvalidContext, c.Kind)
		}
		for _, n := range []string{c.OldName, c.NewName} {
			if !naming.IsValidID(n) {
				return fmt.Errorf("%w: %q is not a valid %s ID (use lowercase letters, digits and underscores)", ErrInvalidContext, n, c.Kind)
			}
		}
	case c.Kind == KindMod:
		if c.PackageName == "" {
			return fmt.Errorf("%w: package name is required to rename a mod", ErrInvalidContext)
		}
		for _, n := range []string{c.OldName, c.NewName} {
			if !naming.IsValidModID(n) {
				return fmt.Errorf("%w: %q is not a valid mod ID", ErrInvalidContext, n)
			}
		}
	case c.Kind == KindPackage:
		for _, n := range []string{c.OldName, c.NewName} {
			if !naming.IsValidPackage(n) {
				return fmt.Errorf("%w: %q is not a valid package name", ErrInvalidContext, n)
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidContext, c.Kind)
	}

	// Mod IDs and packages are shared by every version scope.
	if c.VersionScope != "" && !c.Kind.IsComponent() {
		return fmt.Errorf("%w: a %s rename applies to every version scope; drop --version-scope", ErrInvalidContext, c.Kind)
	}
	return nil
}
