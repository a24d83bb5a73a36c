package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/weftdev/weft/pkg/config"
	"github.com/weftdev/weft/pkg/logger"
)

const noticeDuration = 5 * time.Second

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case splashDoneMsg:
		if m.stage == stageSplash {
			if m.userName == "" {
				m.stage = stageName
			} else {
				m.stage = stageChat
			}
		}
		return m, nil

	case stateMsg:
		m.state = msg.State
		m.refreshChatView()
		m.refreshCodeView()
		return m, waitForUpdate(m.updates)

	case noticeMsg:
		notice := msg.Notice
		m.notice = &notice
		if msg.FromUpdates {
			return m, tea.Batch(waitForUpdate(m.updates), clearNoticeLater())
		}
		return m, clearNoticeLater()

	case clearNoticeMsg:
		m.notice = nil
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	default:
		var cmd tea.Cmd
		switch m.focus {
		case focusImprove:
			m.improveInput, cmd = m.improveInput.Update(msg)
		default:
			m.input, cmd = m.input.Update(msg)
		}
		cmds = append(cmds, cmd)

		m.chatView, cmd = m.chatView.Update(msg)
		cmds = append(cmds, cmd)
		m.codeView, cmd = m.codeView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) resize() {
	chatWidth := m.width / 2
	if !m.state.HasCode() && !m.state.IsGenerating() {
		chatWidth = m.width
	}
	bodyHeight := m.height - 7 // input box + status bar + borders

	if bodyHeight < 3 {
		bodyHeight = 3
	}
	if chatWidth < 20 {
		chatWidth = 20
	}

	m.chatView.Width = chatWidth - 4
	m.chatView.Height = bodyHeight
	m.codeView.Width = m.width - chatWidth - 4
	m.codeView.Height = bodyHeight - 1 // tab row
	m.input.SetWidth(chatWidth - 4)
	m.improveInput.SetWidth(m.width - chatWidth - 4)
	m.nameInput.SetWidth(40)

	m.refreshChatView()
	m.refreshCodeView()
}

func (m *model) saveName(name string) {
	m.userName = name
	if err := config.SaveUserName(name); err != nil {
		logger.Warn("could not persist user name: %v", err)
	}
}
