package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Paths, component names, highlights
// - Muted (gray): Secondary info, operation indexes, hints
// - No colored success/error/warning - use unicode symbols only

// AccentHex is the accent color, shared with the markdown renderer.
const AccentHex = "#A78BFA"

var (
	// Accent style for file paths and component names
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(AccentHex))

	// Muted style for secondary info, hints, operation indexes
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(AccentHex)).Bold(true)
)
