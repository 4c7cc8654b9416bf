package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownNormalizesTrailingNewline(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown("# Conflicts", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected rendered markdown to end with newline, got %q", out)
	}
	if strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected single trailing newline, got %q", out)
	}
}

func TestRenderMarkdownDefaultsWidthWhenNonPositive(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown("- `shared/common/src/main/java/com/testmod/items/RubySword.java`", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.Contains(out, "RubySword.java") {
		t.Fatalf("expected path in output, got %q", out)
	}
}

func TestMarkdownStyleUsesAccentForHeadingsAndCode(t *testing.T) {
	style := markdownStyle()

	if style.Heading.Color == nil || *style.Heading.Color != AccentHex {
		t.Fatalf("expected headings in the accent color")
	}
	if style.Code.Color == nil || *style.Code.Color != AccentHex {
		t.Fatalf("expected inline code in the accent color")
	}
}

func TestDisplayContextRenderPassesThroughWithoutTTY(t *testing.T) {
	d := NewDisplayContextWithWidth(80, false)
	in := "# Refs\n\n- a.json\n"
	if got := d.Render(in); got != in {
		t.Fatalf("expected markdown unchanged, got %q", got)
	}
}
