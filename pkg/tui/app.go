package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/weftdev/weft/pkg/chat"
	"github.com/weftdev/weft/pkg/config"
	"github.com/weftdev/weft/pkg/controllers"
	"github.com/weftdev/weft/pkg/llm"
	"github.com/weftdev/weft/pkg/logger"
	"github.com/weftdev/weft/pkg/reveal"
)

// StartApp wires the store, generator and event loop together and runs the
// terminal UI until the user quits.
func StartApp() error {
	cfg := config.Get()

	client, err := llm.New(cfg)
	if err != nil {
		// Fail before the alternate screen grabs the terminal.
		return fmt.Errorf("configuring completion client: %w", err)
	}

	store := chat.NewStore()
	generator := controllers.NewGenerator(client, store, reveal.Pacing{
		LineDelay:    cfg.Reveal.LineDelay,
		SectionPause: cfg.Reveal.SectionPause,
		SettleDelay:  cfg.Reveal.SettleDelay,
	}, cfg.User.Name)

	updates := make(chan tea.Msg, 64)
	generator.SetObservers(
		func(state controllers.State) { updates <- stateMsg{State: state} },
		func(n controllers.Notification) { updates <- noticeMsg{Notice: n, FromUpdates: true} },
	)

	m := newModel(store, generator, updates, cfg.User.Name, cfg.UI.SplashDelay, cfg.Export.Directory)

	logger.Info("starting terminal UI, provider=%s model=%s", cfg.Provider, cfg.ActiveModel())
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
