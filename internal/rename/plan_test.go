package rename

import (
	"errors"
	"strings"
	"testing"
)

func TestPlanDeduplicates(t *testing.T) {
	p := NewPlan()
	p.Rename("/p/A.java", "/p/B.java")
	p.Rename("/p/A.java", "/p/B.java")
	p.Replace("/p/B.java", "A", "B", "class name")
	p.Replace("/p/B.java", "A", "B", "class name")
	p.Create("/p/C.java", "x")
	p.Delete("/p/D.java")

	if p.Len() != 4 {
		t.Fatalf("Len = %d, want 4", p.Len())
	}
	ops := p.Operations()
	ops[0] = FileDelete{File: "mutated"}
	if p.Operations()[0].Kind() != OpFileRename {
		t.Fatal("Operations must return a copy")
	}
}

func TestVerifyOrder(t *testing.T) {
	tests := []struct {
		name    string
		ops     []Operation
		wantErr string
	}{
		{
			name: "edit after move",
			ops: []Operation{
				FileRename{OldPath: "/p/a/Old.java", NewPath: "/p/a/New.java"},
				ContentReplace{File: "/p/a/New.java", Old: "Old", New: "New"},
			},
		},
		{
			name: "edit inside moved directory",
			ops: []Operation{
				FileRename{OldPath: "/p/assets/oldmod", NewPath: "/p/assets/newmod"},
				ContentReplace{File: "/p/assets/newmod/lang/en_us.json", Old: ".oldmod.", New: ".newmod."},
			},
		},
		{
			name: "edit before move that produces the file",
			ops: []Operation{
				ContentReplace{File: "/p/a/New.java", Old: "Old", New: "New"},
				FileRename{OldPath: "/p/a/Old.java", NewPath: "/p/a/New.java"},
			},
			wantErr: "precedes operation 2",
		},
		{
			name: "edit targets vacated path",
			ops: []Operation{
				FileRename{OldPath: "/p/assets/oldmod", NewPath: "/p/assets/newmod"},
				ContentReplace{File: "/p/assets/oldmod/lang/en_us.json", Old: "a", New: "b"},
			},
			wantErr: "moved away by operation 1",
		},
		{
			name: "edit targets deleted file",
			ops: []Operation{
				FileDelete{File: "/p/x.json"},
				ContentReplace{File: "/p/x.json", Old: "a", New: "b"},
			},
			wantErr: "deleted by operation 1",
		},
		{
			name: "edit of recreated file",
			ops: []Operation{
				FileDelete{File: "/p/x.json"},
				FileCreate{File: "/p/x.json", Content: "a"},
				ContentReplace{File: "/p/x.json", Old: "a", New: "b"},
			},
		},
		{
			name: "unrelated edit",
			ops: []Operation{
				FileRename{OldPath: "/p/a/Old.java", NewPath: "/p/a/New.java"},
				ContentReplace{File: "/p/a/OldHelper.java", Old: "Old", New: "New"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyOrder(tt.ops)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrPlanOrder) {
				t.Fatalf("expected ErrPlanOrder, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestViews(t *testing.T) {
	views := Views("/p", []Operation{
		FileRename{OldPath: "/p/a/Old.java", NewPath: "/p/a/New.java"},
		ContentReplace{File: "/p/a/New.java", Old: "Old", New: "New", Description: "class name"},
		FileCreate{File: "/p/b.json", Content: "{}"},
	})

	if views[0].Path != "a/Old.java" || views[0].NewPath != "a/New.java" {
		t.Fatalf("unexpected rename view: %+v", views[0])
	}
	if views[1].Old != "Old" || views[1].Description != "class name" {
		t.Fatalf("unexpected replace view: %+v", views[1])
	}
	if views[2].Bytes != 2 || views[2].Kind != OpFileCreate {
		t.Fatalf("unexpected create view: %+v", views[2])
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("a\nb"); got != `a\nb` {
		t.Fatalf("Snippet = %q", got)
	}
	long := strings.Repeat("x", 100)
	got := Snippet(long)
	if len([]rune(got)) != SnippetLimit || !strings.HasSuffix(got, "...") {
		t.Fatalf("Snippet did not truncate: %q", got)
	}
}

func TestPreviewEmpty(t *testing.T) {
	out := Preview("/p", nil)
	if !strings.Contains(out, "0 operation(s) planned") {
		t.Fatalf("unexpected preview: %q", out)
	}
}
