package rename

import (
	"fmt"
	"strings"
)

// SnippetLimit bounds the before/after text shown per edit in a preview.
const SnippetLimit = 60

// Preview renders ops as the dry-run report. It never touches the filesystem.
func Preview(root string, ops []Operation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dry run: %d operation(s) planned, no files will be changed\n", len(ops))
	if len(ops) == 0 {
		return b.String()
	}
	b.WriteString("\n")

	width := len(fmt.Sprint(len(ops)))
	indent := strings.Repeat(" ", width+2+2+8+1)
	for i, op := range ops {
		v := View(root, op)
		fmt.Fprintf(&b, "  %*d. %-8s %s", width, i+1, v.Kind, v.Path)
		switch o := op.(type) {
		case FileRename:
			fmt.Fprintf(&b, "\n%s-> %s\n", indent, v.NewPath)
		case ContentReplace:
			if o.Description != "" {
				fmt.Fprintf(&b, "  (%s)", o.Description)
			}
			fmt.Fprintf(&b, "\n%s- %s\n%s+ %s\n", indent, Snippet(o.Old), indent, Snippet(o.New))
		case FileDelete:
			b.WriteString("\n")
		case FileCreate:
			fmt.Fprintf(&b, "  (%d bytes)\n", len(o.Content))
		}
	}
	return b.String()
}

// Snippet flattens s onto one line and truncates it to SnippetLimit runes.
func Snippet(s string) string {
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	runes := []rune(s)
	if len(runes) <= SnippetLimit {
		return s
	}
	return string(runes[:SnippetLimit-3]) + "..."
}
