package project

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modforge/modforge/internal/paths"
)

// MaxSearchFileSize bounds the files read by content search.
const MaxSearchFileSize = 4 << 20

// skipDirs are never descended into by content search.
var skipDirs = map[string]bool{
	".git":         true,
	".gradle":      true,
	".idea":        true,
	".modforge":    true,
	"build":        true,
	"out":          true,
	"run":          true,
	"node_modules": true,
}

var textExtensions = map[string]bool{
	".java":          true,
	".kt":            true,
	".kts":           true,
	".json":          true,
	".json5":         true,
	".mcmeta":        true,
	".toml":          true,
	".properties":    true,
	".gradle":        true,
	".cfg":           true,
	".txt":           true,
	".md":            true,
	".yml":           true,
	".yaml":          true,
	".xml":           true,
	".accesswidener": true,
}

// IsTextFile reports whether path has an extension content search reads.
func IsTextFile(path string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsSourceFile reports whether path is a Java or Kotlin source file.
func IsSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Searcher performs literal-substring searches over a project tree.
type Searcher struct {
	Root    string
	Exclude []string
}

// NewSearcher creates a searcher. exclude holds project-relative directories to skip.
func NewSearcher(root string, exclude []string) *Searcher {
	cleaned := make([]string, 0, len(exclude))
	for _, e := range exclude {
		e = strings.Trim(filepath.ToSlash(e), "/")
		if e != "" {
			cleaned = append(cleaned, e)
		}
	}
	return &Searcher{Root: root, Exclude: cleaned}
}

// WalkResult is one text file visited by Walk.
type WalkResult struct {
	Path         string
	RelativePath string
	Content      []byte
}

// Walk calls fn for every text file in the project, in lexical order.
// Unreadable files are skipped.
func (s *Searcher) Walk(fn func(WalkResult) error) error {
	return filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Best-effort: a single unreadable directory should not hide the rest.
			if d != nil && d.IsDir() && path != s.Root {
				return filepath.SkipDir
			}
			return nil //nolint:nilerr
		}

		rel := paths.Rel(s.Root, path)
		if d.IsDir() {
			if path == s.Root {
				return nil
			}
			if skipDirs[d.Name()] || s.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !IsTextFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > MaxSearchFileSize {
			return nil //nolint:nilerr
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil //nolint:nilerr
		}
		return fn(WalkResult{Path: path, RelativePath: rel, Content: content})
	})
}

func (s *Searcher) excluded(rel string) bool {
	for _, e := range s.Exclude {
		if rel == e || strings.HasPrefix(rel, e+"/") {
			return true
		}
	}
	return false
}

// FindFilesContaining returns every text file containing needle, sorted.
func (s *Searcher) FindFilesContaining(needle string) ([]string, error) {
	matches, err := s.FindFilesContainingAny([]string{needle})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for p := range matches {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// FindFilesContainingAny walks the project once and returns, per file, the
// needles it contains (in the order given).
func (s *Searcher) FindFilesContainingAny(needles []string) (map[string][]string, error) {
	var wanted [][]byte
	var names []string
	for _, n := range needles {
		if n == "" {
			continue
		}
		wanted = append(wanted, []byte(n))
		names = append(names, n)
	}
	out := make(map[string][]string)
	if len(wanted) == 0 {
		return out, nil
	}

	err := s.Walk(func(r WalkResult) error {
		for i, w := range wanted {
			if bytes.Contains(r.Content, w) {
				out[r.Path] = append(out[r.Path], names[i])
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipAll) {
		return nil, err
	}
	return out, nil
}

// ListFiles returns every regular file under dir, sorted. A missing dir yields nil.
func ListFiles(dir string) ([]string, error) {
	if !isDir(dir) {
		return nil, nil
	}
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}
