// Package styles provides shared lipgloss styles for terminal output.
//
// This package centralizes color definitions and styling so the report,
// the prompt and the diff preview look the same.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the output
var (
	// Primary is the main accent color (cyan/teal)
	Primary lipgloss.TerminalColor = lipgloss.Color("62")

	// Accent highlights branch names (pink)
	Accent lipgloss.TerminalColor = lipgloss.Color("212")

	// Success is used for checkmarks and positive outcomes (green)
	Success lipgloss.TerminalColor = lipgloss.Color("82")

	// Error is used for failures (red)
	Error lipgloss.TerminalColor = lipgloss.Color("196")

	// Warning is used for skipped files and no-op branches (orange)
	Warning lipgloss.TerminalColor = lipgloss.Color("214")

	// Muted is used for secondary detail such as command lines (gray)
	Muted lipgloss.TerminalColor = lipgloss.Color("240")

	// Info is used for informational text (gray)
	Info lipgloss.TerminalColor = lipgloss.Color("244")
)

// Common styles
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// HeaderStyle renders the per-branch header
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// BranchStyle renders branch names
	BranchStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// SuccessStyle applies the success color
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// ErrorStyle applies the error color
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// WarningStyle applies the warning color
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	// InfoStyle applies the info color with italic
	InfoStyle = lipgloss.NewStyle().
			Foreground(Info).
			Italic(true)
)
