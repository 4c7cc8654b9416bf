// Package project locates files inside a generated multi-loader mod project.
//
// The layout is produced by the scaffolding side of modforge:
//
//	modforge.toml
//	shared/common/src/main/java/<package>/...
//	shared/<loader>/src/main/java/<package>/platform/<loader>/...
//	shared/<module>/src/main/resources/{assets,data}/<modId>/...
//	versions/<version>/{assets,data}/<modId>/...
//	versions/shared/<vN>/{assets,data}/<modId>/...
//
// Nothing in this package creates the layout; it only finds things in it.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// CommonModule is the loader-independent module under shared/.
const CommonModule = "common"

// SourceExtensions are the source file extensions the renamers understand.
var SourceExtensions = []string{".java", ".kt"}

// ErrUnknownVersionScope is returned when a requested version scope does not exist.
var ErrUnknownVersionScope = errors.New("unknown version scope")

// SourceRoot is one source directory of one module.
type SourceRoot struct {
	// Module is the directory name under shared/ ("common", "fabric", ...).
	Module string
	// Dir is the absolute source directory (".../src/main/java").
	Dir string
}

// IsLoader reports whether the root belongs to a loader-specific module.
func (s SourceRoot) IsLoader() bool {
	return s.Module != CommonModule
}

// VersionScope is one directory under versions/ holding assets/ and data/.
type VersionScope struct {
	// Name is the scope relative to versions/ ("1.20.1", "shared/v1").
	Name string
	// Dir is the absolute scope directory.
	Dir string
}

// Modules returns the directory names under shared/, sorted.
func Modules(root string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, "shared"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Loaders returns the loader modules present under shared/.
func Loaders(root string) ([]string, error) {
	modules, err := Modules(root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range modules {
		if m != CommonModule {
			out = append(out, m)
		}
	}
	return out, nil
}

// SourceRoots returns every existing shared/<module>/src/main/{java,kotlin} directory.
// The common module comes first so primary class files are found before platform ones.
func SourceRoots(root string) ([]SourceRoot, error) {
	modules, err := Modules(root)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(modules, func(i, j int) bool {
		return modules[i] == CommonModule && modules[j] != CommonModule
	})

	var out []SourceRoot
	for _, m := range modules {
		for _, lang := range []string{"java", "kotlin"} {
			dir := filepath.Join(root, "shared", m, "src", "main", lang)
			if isDir(dir) {
				out = append(out, SourceRoot{Module: m, Dir: dir})
			}
		}
	}
	return out, nil
}

// ResourceRoots returns every existing shared/<module>/src/main/resources directory.
func ResourceRoots(root string) ([]string, error) {
	modules, err := Modules(root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range modules {
		dir := filepath.Join(root, "shared", m, "src", "main", "resources")
		if isDir(dir) {
			out = append(out, dir)
		}
	}
	return out, nil
}

// VersionScopes returns the version scopes of a project. When scope is
// non-empty only that scope is returned, or ErrUnknownVersionScope.
func VersionScopes(root, scope string) ([]VersionScope, error) {
	versionsDir := filepath.Join(root, "versions")
	entries, err := os.ReadDir(versionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			if scope != "" {
				return nil, fmt.Errorf("%w: %s", ErrUnknownVersionScope, scope)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	var all []VersionScope
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if e.Name() == "shared" {
			shared, err := os.ReadDir(filepath.Join(versionsDir, "shared"))
			if err != nil {
				return nil, fmt.Errorf("failed to list shared versions: %w", err)
			}
			for _, s := range shared {
				dir := filepath.Join(versionsDir, "shared", s.Name())
				if s.IsDir() && hasPackDirs(dir) {
					all = append(all, VersionScope{Name: "shared/" + s.Name(), Dir: dir})
				}
			}
			continue
		}
		dir := filepath.Join(versionsDir, e.Name())
		if hasPackDirs(dir) {
			all = append(all, VersionScope{Name: e.Name(), Dir: dir})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	if scope == "" {
		return all, nil
	}
	scope = filepath.ToSlash(filepath.Clean(scope))
	for _, v := range all {
		if v.Name == scope {
			return []VersionScope{v}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownVersionScope, scope)
}

// PackRoots returns every directory that may hold assets/<modId> and
// data/<modId>: all version scopes plus the shared resource roots.
func PackRoots(root, scope string) ([]string, error) {
	scopes, err := VersionScopes(root, scope)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, v := range scopes {
		out = append(out, v.Dir)
	}
	resources, err := ResourceRoots(root)
	if err != nil {
		return nil, err
	}
	return append(out, resources...), nil
}

func hasPackDirs(dir string) bool {
	return isDir(filepath.Join(dir, "assets")) || isDir(filepath.Join(dir, "data"))
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// Exists reports whether p exists.
func Exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// IsRegularFile reports whether p is a regular file.
func IsRegularFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether p is a directory.
func IsDir(p string) bool {
	return isDir(p)
}
