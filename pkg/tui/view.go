package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/weftdev/weft/pkg/chat"
	"github.com/weftdev/weft/pkg/controllers"
	"github.com/weftdev/weft/pkg/extract"
	"github.com/weftdev/weft/pkg/site"
)

const splashArt = `
 __        __   __ _
 \ \      / /__/ _| |_
  \ \ /\ / / _ \ |_| __|
   \ V  V /  __/  _| |_
    \_/\_/ \___|_|  \__|
`

func (m model) View() string {
	switch m.stage {
	case stageSplash:
		return m.splashView()
	case stageName:
		return m.nameView()
	default:
		return m.chatStageView()
	}
}

func (m model) splashView() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render(splashArt),
		"",
		m.styles.Muted.Render("Describe a website. Watch it get built."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m model) nameView() string {
	box := m.styles.Overlay.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Welcome to Weft"),
		"",
		"What should I call you?",
		"",
		m.nameInput.View(),
		"",
		m.styles.Muted.Render("enter to continue"),
	))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m model) chatStageView() string {
	if m.showSessions {
		return m.sessionsView()
	}

	chatPanel := m.styles.ChatPanel.Render(m.chatView.View())

	var body string
	if m.state.HasCode() || m.state.IsGenerating() {
		codePanel := m.styles.CodePanel.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.tabBar(),
			m.codeView.View(),
		))
		body = lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, codePanel)
	} else {
		body = chatPanel
	}

	var inputBox string
	if m.focus == focusImprove {
		inputBox = m.styles.InputBox.Render(m.improveInput.View())
	} else {
		inputBox = m.styles.InputBox.Render(m.input.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, inputBox, m.statusBar())
}

func (m model) tabBar() string {
	if m.state.ViewMode == controllers.ViewModePreview {
		return m.styles.TabActive.Render("Preview") + m.styles.Muted.Render("  ctrl+p for code")
	}

	labels := map[site.Section]string{
		site.SectionHTML: "HTML",
		site.SectionCSS:  "CSS",
		site.SectionJS:   "JS",
	}
	var tabs []string
	for _, section := range site.Sections {
		label := labels[section]
		switch {
		case section == m.state.GeneratingSection:
			tabs = append(tabs, m.styles.TabWorking.Render(label+" "+m.spin.View()))
		case section == m.state.ActiveTab:
			tabs = append(tabs, m.styles.TabActive.Render(label))
		default:
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) statusBar() string {
	var left string
	switch m.state.Phase {
	case controllers.PhaseAwaitingCompletion:
		left = m.spin.View() + " Thinking..."
	case controllers.PhaseParsingResponse:
		left = m.spin.View() + " Reading the response..."
	case controllers.PhaseRevealing:
		left = m.spin.View() + " Building your website..."
	case controllers.PhaseLive:
		left = m.styles.LiveBadge.Render("LIVE")
		if m.state.ProjectTitle != "" {
			left += " " + m.state.ProjectTitle
		}
	default:
		left = "Ready"
	}

	if m.notice != nil {
		text := m.notice.Title + ": " + m.notice.Message
		if m.notice.IsError {
			left = m.styles.ErrorMessage.Render(text)
		} else {
			left = text
		}
	}

	help := "enter send · tab cycle · ctrl+g improve · ctrl+p preview · ctrl+e export · ctrl+s sessions · ctrl+c quit"
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(help) - 2
	if gap < 1 {
		return m.styles.StatusBar.Width(m.width).Render(left)
	}
	return m.styles.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + help)
}

func (m model) sessionsView() string {
	sessions := m.store.Archived()

	var rows []string
	rows = append(rows, m.styles.Title.Render("Sessions"), "")
	if len(sessions) == 0 {
		rows = append(rows, m.styles.Muted.Render("No archived sessions yet."))
	}
	for i, sess := range sessions {
		line := fmt.Sprintf("%s  (%d messages)", sess.Title, len(sess.Messages))
		if i == m.sessionCursor {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	rows = append(rows, "", m.styles.Muted.Render("enter open · d delete · n new · esc close"))

	box := m.styles.Overlay.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *model) refreshChatView() {
	sess := m.store.Current()

	var lines []string
	for _, msg := range sess.Messages {
		lines = append(lines, m.renderMessage(msg), "")
	}
	if len(lines) == 0 {
		lines = append(lines, m.styles.Muted.Render("Tell me about the website you want and I'll build it."))
	}

	m.chatView.SetContent(lipgloss.NewStyle().Width(m.chatView.Width).Render(strings.Join(lines, "\n")))
	m.chatView.GotoBottom()
}

func (m model) renderMessage(msg chat.Message) string {
	if msg.IsUser() {
		return m.styles.UserMessage.Render("You") + "\n" + msg.Content
	}

	// Assistant messages show only the explanation; the code lands in the
	// code panel.
	body := extract.Parse(msg.Content).Explanation
	if body == "" {
		body = msg.Content
	}
	if msg.IsStreaming {
		body += " ▌"
	}
	return m.styles.AssistantMessage.Render("Weft") + "\n" + body
}

func (m *model) refreshCodeView() {
	if m.state.ViewMode == controllers.ViewModePreview {
		m.codeView.SetContent(m.state.Document())
		return
	}

	source := m.state.Code.Get(m.state.ActiveTab)
	if source == "" {
		m.codeView.SetContent(m.styles.Muted.Render("Nothing here yet."))
		return
	}
	m.codeView.SetContent(highlightCode(m.state.ActiveTab, source))
	if m.state.ActiveTab == m.state.GeneratingSection {
		m.codeView.GotoBottom()
	}
}
