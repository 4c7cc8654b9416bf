// Package testutil provides reusable fixtures for modforge tests.
package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// TestProject represents a temporary mod project for testing.
type TestProject struct {
	Path   string
	t      *testing.T
	config string
	files  map[string]string
	dirs   []string
}

// NewTestProject creates a new test project builder.
// Call Build() to create the actual project directory.
func NewTestProject(t *testing.T) *TestProject {
	t.Helper()
	return &TestProject{
		t:     t,
		files: make(map[string]string),
	}
}

// WithConfig writes a modforge.toml for the given mod ID and package.
func (p *TestProject) WithConfig(modID, packageName string) *TestProject {
	p.config = fmt.Sprintf("mod_id = %q\npackage_name = %q\nmod_name = %q\nloaders = [\"fabric\", \"forge\"]\n",
		modID, packageName, "Test Mod")
	return p
}

// WithRawConfig sets the modforge.toml content verbatim.
func (p *TestProject) WithRawConfig(content string) *TestProject {
	p.config = content
	return p
}

// WithFile adds a file to the project.
// The path is relative to the project root and uses forward slashes.
func (p *TestProject) WithFile(path, content string) *TestProject {
	p.files[path] = content
	return p
}

// WithDir adds an empty directory to the project.
func (p *TestProject) WithDir(path string) *TestProject {
	p.dirs = append(p.dirs, path)
	return p
}

// Build creates the project directory and all configured files.
// Returns the TestProject for method chaining.
func (p *TestProject) Build() *TestProject {
	p.t.Helper()

	p.Path = p.t.TempDir()

	if p.config != "" {
		p.writeFile("modforge.toml", p.config)
	}
	for path, content := range p.files {
		p.writeFile(path, content)
	}
	for _, dir := range p.dirs {
		if err := os.MkdirAll(p.Abs(dir), 0755); err != nil {
			p.t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	return p
}

// Abs returns the absolute path of a project-relative path.
func (p *TestProject) Abs(relPath string) string {
	return filepath.Join(p.Path, filepath.FromSlash(relPath))
}

func (p *TestProject) writeFile(relPath, content string) {
	p.t.Helper()
	fullPath := p.Abs(relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		p.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		p.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// WriteFile writes (or overwrites) a file after Build.
func (p *TestProject) WriteFile(relPath, content string) {
	p.t.Helper()
	p.writeFile(relPath, content)
}

// ReadFile reads a file from the project.
func (p *TestProject) ReadFile(relPath string) string {
	p.t.Helper()
	content, err := os.ReadFile(p.Abs(relPath))
	if err != nil {
		p.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// FileExists checks if a file or directory exists in the project.
func (p *TestProject) FileExists(relPath string) bool {
	p.t.Helper()
	_, err := os.Stat(p.Abs(relPath))
	return err == nil
}

// HashTree returns a digest of every path, mode and file body in the project.
// Two calls return the same digest iff nothing in the tree changed.
func (p *TestProject) HashTree() string {
	p.t.Helper()

	var entries []string
	err := filepath.WalkDir(p.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(p.Path, path)
		info, err := d.Info()
		if err != nil {
			return err
		}
		entry := fmt.Sprintf("%s|%s", filepath.ToSlash(rel), info.Mode())
		if d.Type().IsRegular() {
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			sum := sha256.Sum256(content)
			entry += "|" + hex.EncodeToString(sum[:])
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		p.t.Fatalf("failed to hash project tree: %v", err)
	}

	sort.Strings(entries)
	h := sha256.New()
	for _, e := range entries {
		h.Write([]byte(e))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
