package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/weftdev/weft/pkg/chat"
	"github.com/weftdev/weft/pkg/controllers"
	"github.com/weftdev/weft/pkg/tui/theme"
)

// stage is which top-level screen is showing.
type stage int

const (
	stageSplash stage = iota
	stageName
	stageChat
)

// focusArea is which input currently receives keystrokes.
type focusArea int

const (
	focusChat focusArea = iota
	focusImprove
)

type model struct {
	stage  stage
	styles *theme.Styles
	width  int
	height int

	store     *chat.Store
	generator *controllers.Generator
	updates   chan tea.Msg

	state  controllers.State
	notice *controllers.Notification

	chatView     viewport.Model
	codeView     viewport.Model
	input        textarea.Model
	nameInput    textarea.Model
	improveInput textarea.Model
	spin         spinner.Model

	focus         focusArea
	showSessions  bool
	sessionCursor int

	userName    string
	splashDelay time.Duration
	exportDir   string
}

func newModel(store *chat.Store, generator *controllers.Generator, updates chan tea.Msg, userName string, splashDelay time.Duration, exportDir string) model {
	styles := theme.DefaultStyles()

	input := textarea.New()
	input.Placeholder = "Describe the website you want to build..."
	input.CharLimit = 0
	input.SetHeight(2)
	input.ShowLineNumbers = false
	input.FocusedStyle.CursorLine = lipgloss.NewStyle()
	input.Focus()

	nameInput := textarea.New()
	nameInput.Placeholder = "Your name"
	nameInput.SetHeight(1)
	nameInput.ShowLineNumbers = false
	nameInput.Focus()

	improveInput := textarea.New()
	improveInput.Placeholder = "What should be improved?"
	improveInput.SetHeight(2)
	improveInput.ShowLineNumbers = false

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(theme.ColorCyan)

	start := stageSplash
	return model{
		stage:        start,
		styles:       styles,
		store:        store,
		generator:    generator,
		updates:      updates,
		state:        generator.State(),
		chatView:     viewport.New(60, 20),
		codeView:     viewport.New(60, 20),
		input:        input,
		nameInput:    nameInput,
		improveInput: improveInput,
		spin:         spin,
		userName:     userName,
		splashDelay:  splashDelay,
		exportDir:    exportDir,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spin.Tick,
		waitForUpdate(m.updates),
		tea.Tick(m.splashDelay, func(time.Time) tea.Msg { return splashDoneMsg{} }),
	)
}
