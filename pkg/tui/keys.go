package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/weftdev/weft/pkg/controllers"
	"github.com/weftdev/weft/pkg/site"
)

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.stage {
	case stageSplash:
		// Any key skips the splash.
		if m.userName == "" {
			m.stage = stageName
		} else {
			m.stage = stageChat
		}
		return m, nil

	case stageName:
		return m.handleNameKey(msg)

	default:
		if m.showSessions {
			return m.handleSessionsKey(msg)
		}
		return m.handleChatKey(msg)
	}
}

func (m model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		name := strings.TrimSpace(m.nameInput.Value())
		if name != "" {
			m.saveName(name)
			m.generator.SetUserName(name)
		}
		m.stage = stageChat
		m.nameInput.Blur()
		m.input.Focus()
		return m, textarea.Blink
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		switch m.focus {
		case focusImprove:
			feedback := strings.TrimSpace(m.improveInput.Value())
			if feedback == "" {
				return m, nil
			}
			m.improveInput.Reset()
			go m.generator.Improve(feedback)
			return m, nil
		default:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			go m.generator.Send(text)
			return m, nil
		}

	case tea.KeyTab:
		if m.state.HasCode() || m.state.IsGenerating() {
			m.generator.SetActiveTab(nextSection(m.state.ActiveTab))
		}
		return m, nil

	case tea.KeyEsc:
		if m.focus == focusImprove {
			m.focus = focusChat
			m.improveInput.Blur()
			m.input.Focus()
			m.generator.SetImprovePanel(false)
		}
		return m, nil

	case tea.KeyCtrlN:
		m.generator.NewSession()
		m.focus = focusChat
		m.improveInput.Blur()
		m.input.Focus()
		return m, nil

	case tea.KeyCtrlS:
		m.showSessions = true
		m.sessionCursor = 0
		return m, nil

	case tea.KeyCtrlP:
		if m.state.HasCode() {
			if m.state.ViewMode == controllers.ViewModePreview {
				m.generator.SetViewMode(controllers.ViewModeCode)
			} else {
				m.generator.SetViewMode(controllers.ViewModePreview)
			}
		}
		return m, nil

	case tea.KeyCtrlG:
		if !m.state.IsLive() {
			return m, nil
		}
		if m.focus == focusImprove {
			m.focus = focusChat
			m.improveInput.Blur()
			m.input.Focus()
			m.generator.SetImprovePanel(false)
		} else {
			m.focus = focusImprove
			m.input.Blur()
			m.improveInput.Focus()
			m.generator.SetImprovePanel(true)
		}
		return m, textarea.Blink

	case tea.KeyCtrlE:
		return m.exportSite(false)

	case tea.KeyCtrlO:
		return m.exportSite(true)
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusImprove:
		m.improveInput, cmd = m.improveInput.Update(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m model) handleSessionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sessions := m.store.Archived()

	switch msg.Type {
	case tea.KeyEsc:
		m.showSessions = false
		return m, nil

	case tea.KeyUp:
		if m.sessionCursor > 0 {
			m.sessionCursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.sessionCursor < len(sessions)-1 {
			m.sessionCursor++
		}
		return m, nil

	case tea.KeyEnter:
		if m.sessionCursor < len(sessions) {
			m.generator.SwitchSession(sessions[m.sessionCursor].ID)
		}
		m.showSessions = false
		return m, nil
	}

	switch msg.String() {
	case "d":
		if m.sessionCursor < len(sessions) {
			m.generator.DeleteSession(sessions[m.sessionCursor].ID)
			if m.sessionCursor > 0 {
				m.sessionCursor--
			}
		}
		return m, nil
	case "n":
		m.generator.NewSession()
		m.showSessions = false
		return m, nil
	case "q":
		m.showSessions = false
		return m, nil
	}

	return m, nil
}

func (m model) exportSite(open bool) (tea.Model, tea.Cmd) {
	if !m.state.HasCode() {
		return m, nil
	}
	path, err := m.generator.Export(m.exportDir)
	if err != nil {
		notice := controllers.Notification{Title: "Export failed", Message: err.Error(), IsError: true}
		m.notice = &notice
		return m, clearNoticeLater()
	}
	notice := controllers.Notification{Title: "Exported", Message: path}
	m.notice = &notice
	var cmds []tea.Cmd
	cmds = append(cmds, clearNoticeLater())
	if open {
		cmds = append(cmds, func() tea.Msg {
			if err := site.Open(path); err != nil {
				return noticeMsg{Notice: controllers.Notification{
					Title:   "Could not open browser",
					Message: err.Error(),
					IsError: true,
				}}
			}
			return nil
		})
	}
	return m, tea.Batch(cmds...)
}

func clearNoticeLater() tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg { return clearNoticeMsg{} })
}

func nextSection(current site.Section) site.Section {
	switch current {
	case site.SectionHTML:
		return site.SectionCSS
	case site.SectionCSS:
		return site.SectionJS
	default:
		return site.SectionHTML
	}
}
