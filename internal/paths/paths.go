// Package paths provides canonical helpers for project-relative paths:
// - converting absolute paths to project-relative, slash-separated form for reports
// - checking that a path stays inside the project root
// - following a table of directory/file moves to find where a path ends up
package paths

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
)

// ErrPathOutsideProject is returned when a path escapes the project root.
var ErrPathOutsideProject = errors.New("path is outside project")

// Rel returns target relative to root using forward slashes.
// If target is not under root it is returned unchanged.
func Rel(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

// IsUnder reports whether p equals dir or lives below it.
func IsUnder(p, dir string) bool {
	p = filepath.Clean(p)
	dir = filepath.Clean(dir)
	if p == dir {
		return true
	}
	return strings.HasPrefix(p, dir+string(filepath.Separator))
}

// ValidateWithinProject checks that target resolves inside root.
// Symlinks are resolved on the root and on the nearest existing ancestor of
// target, which may not exist yet.
func ValidateWithinProject(root, target string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		realRoot = absRoot
	}
	if !IsUnder(resolveExisting(filepath.Dir(absTarget)), realRoot) {
		return ErrPathOutsideProject
	}
	return nil
}

// resolveExisting resolves symlinks in the longest existing prefix of p and
// re-appends the missing tail.
func resolveExisting(p string) string {
	var tail []string
	for {
		if real, err := filepath.EvalSymlinks(p); err == nil {
			return filepath.Join(append([]string{real}, tail...)...)
		}
		parent := filepath.Dir(p)
		if parent == p {
			return filepath.Join(append([]string{p}, tail...)...)
		}
		tail = append([]string{filepath.Base(p)}, tail...)
		p = parent
	}
}

// MoveTable records planned moves so later edits can be pointed at the
// post-move location of a file.
type MoveTable struct {
	moves []move
}

type move struct {
	from string
	to   string
}

// Add records that from (a file or a directory) will be moved to to.
func (t *MoveTable) Add(from, to string) {
	t.moves = append(t.moves, move{from: filepath.Clean(from), to: filepath.Clean(to)})
}

// Resolve returns where p lives once every recorded move has happened.
// The longest matching source wins, so a file move inside a moved directory
// is applied before the directory prefix.
func (t *MoveTable) Resolve(p string) string {
	p = filepath.Clean(p)
	ordered := make([]move, len(t.moves))
	copy(ordered, t.moves)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].from) > len(ordered[j].from)
	})
	for _, m := range ordered {
		if p == m.from {
			return m.to
		}
		if IsUnder(p, m.from) {
			rest := strings.TrimPrefix(p, m.from)
			return m.to + rest
		}
	}
	return p
}

