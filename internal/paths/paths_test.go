package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRel(t *testing.T) {
	root := filepath.Join("/tmp", "proj")
	tests := []struct {
		target string
		want   string
	}{
		{filepath.Join(root, "shared", "common", "A.java"), "shared/common/A.java"},
		{root, "."},
		{filepath.Join("/tmp", "other", "B.java"), "/tmp/other/B.java"},
	}
	for _, tc := range tests {
		if got := Rel(root, tc.target); got != tc.want {
			t.Fatalf("Rel(%q) = %q, want %q", tc.target, got, tc.want)
		}
	}
}

func TestIsUnder(t *testing.T) {
	tests := []struct {
		p, dir string
		want   bool
	}{
		{"/a/b/c", "/a/b", true},
		{"/a/b", "/a/b", true},
		{"/a/bc", "/a/b", false},
		{"/a", "/a/b", false},
	}
	for _, tc := range tests {
		if got := IsUnder(tc.p, tc.dir); got != tc.want {
			t.Fatalf("IsUnder(%q, %q) = %v, want %v", tc.p, tc.dir, got, tc.want)
		}
	}
}

func TestValidateWithinProject(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "shared"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := ValidateWithinProject(root, filepath.Join(root, "shared", "A.java")); err != nil {
		t.Fatalf("expected path inside project, got %v", err)
	}
	if err := ValidateWithinProject(root, filepath.Join(root, "new", "dir", "B.java")); err != nil {
		t.Fatalf("expected not-yet-existing path inside project, got %v", err)
	}

	err := ValidateWithinProject(root, filepath.Join(root, "..", "escape.txt"))
	if !errors.Is(err, ErrPathOutsideProject) {
		t.Fatalf("expected ErrPathOutsideProject, got %v", err)
	}
}

func TestMoveTableResolve(t *testing.T) {
	var mt MoveTable
	mt.Add("/p/versions/v1/assets/oldmod", "/p/versions/v1/assets/newmod")
	mt.Add("/p/src/com/oldmod", "/p/src/com/newmod")

	tests := []struct {
		in, want string
	}{
		{"/p/versions/v1/assets/oldmod/lang/en_us.json", "/p/versions/v1/assets/newmod/lang/en_us.json"},
		{"/p/versions/v1/assets/oldmodextra/x.json", "/p/versions/v1/assets/oldmodextra/x.json"},
		{"/p/src/com/oldmod/items/Old.java", "/p/src/com/newmod/items/Old.java"},
		{"/p/src/com/oldmod/Main.java", "/p/src/com/newmod/Main.java"},
		{"/p/README.md", "/p/README.md"},
	}
	for _, tc := range tests {
		if got := mt.Resolve(tc.in); got != tc.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
