package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Base16 palette with indigo and teal tones, dark-first like the rest of
// the app.
var (
	// Base colors (backgrounds and text)
	ColorBase00 = lipgloss.Color("#16161e") // Dark background
	ColorBase01 = lipgloss.Color("#1f1f2b") // Lighter background
	ColorBase02 = lipgloss.Color("#2b2b3c") // Selection background
	ColorBase03 = lipgloss.Color("#4e4e63") // Comments, muted
	ColorBase04 = lipgloss.Color("#71718c") // Dark foreground
	ColorBase05 = lipgloss.Color("#a3a3bd") // Default foreground
	ColorBase06 = lipgloss.Color("#cdcde1") // Light foreground
	ColorBase07 = lipgloss.Color("#ededf7") // Lightest foreground

	// Accent colors
	ColorRed    = lipgloss.Color("#e06c75")
	ColorOrange = lipgloss.Color("#d19a66")
	ColorYellow = lipgloss.Color("#e5c07b")
	ColorGreen  = lipgloss.Color("#98c379")
	ColorCyan   = lipgloss.Color("#56b6c2")
	ColorBlue   = lipgloss.Color("#61afef")
	ColorPurple = lipgloss.Color("#c678dd")

	// UI specific colors
	ColorBorder    = ColorBase03
	ColorSelection = ColorBase02
	ColorFocus     = ColorBlue
	ColorSuccess   = ColorGreen
	ColorWarning   = ColorYellow
	ColorError     = ColorRed
	ColorInfo      = ColorCyan
	ColorMuted     = ColorBase03
)

// Styles defines the Lipgloss styles for the TUI components
type Styles struct {
	// Panels
	ChatPanel  lipgloss.Style
	CodePanel  lipgloss.Style
	InputBox   lipgloss.Style
	StatusBar  lipgloss.Style
	Overlay    lipgloss.Style
	TabActive  lipgloss.Style
	TabWorking lipgloss.Style
	Tab        lipgloss.Style

	// Text
	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style
	ErrorMessage     lipgloss.Style
	Muted            lipgloss.Style
	Title            lipgloss.Style
	LiveBadge        lipgloss.Style
	Selected         lipgloss.Style
}

// DefaultStyles returns the default style set
func DefaultStyles() *Styles {
	return &Styles{
		ChatPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		CodePanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorFocus).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(ColorBase05).
			Background(ColorBase01).
			Padding(0, 1),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorFocus).
			Padding(1, 2),
		TabActive: lipgloss.NewStyle().
			Foreground(ColorBase07).
			Background(ColorSelection).
			Bold(true).
			Padding(0, 1),
		TabWorking: lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(ColorBase04).
			Padding(0, 1),

		UserMessage:      lipgloss.NewStyle().Foreground(ColorBlue).Bold(true),
		AssistantMessage: lipgloss.NewStyle().Foreground(ColorBase06),
		ErrorMessage:     lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Muted:            lipgloss.NewStyle().Foreground(ColorMuted),
		Title:            lipgloss.NewStyle().Foreground(ColorBase07).Bold(true),
		LiveBadge: lipgloss.NewStyle().
			Foreground(ColorBase00).
			Background(ColorSuccess).
			Bold(true).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Foreground(ColorBase07).
			Background(ColorSelection),
	}
}
