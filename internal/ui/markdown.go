package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

// RenderMarkdown renders a markdown report (refs, conflicts, previews) for
// terminal display.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single trailing newline.
	rendered = strings.TrimRight(rendered, "\n") + "\n"
	return rendered, nil
}

// markdownStyle is glamour's dark style with headings, inline code and the
// list bullet switched to the accent palette. Report paths are inline code,
// so they come out in the same color as ui.FilePath.
func markdownStyle() ansi.StyleConfig {
	style := styles.DarkStyleConfig
	accent := AccentHex
	margin := uint(MarkdownRenderMargin)
	bold := true

	style.Document.Margin = &margin
	style.Heading.Color = &accent
	style.Heading.Bold = &bold
	// Plain "# " prefixes instead of the dark style's H1 background block.
	style.H1 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "# "}}
	style.Code = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: &accent}}
	style.Item.BlockPrefix = "• "
	return style
}
