package controllers

import (
	"context"
	"strings"
	"sync"

	"github.com/weftdev/weft/pkg/chat"
	"github.com/weftdev/weft/pkg/extract"
	"github.com/weftdev/weft/pkg/llm"
	"github.com/weftdev/weft/pkg/logger"
	"github.com/weftdev/weft/pkg/prompt"
	"github.com/weftdev/weft/pkg/reveal"
	"github.com/weftdev/weft/pkg/site"
)

// Generator orchestrates the full generation cycle: completion call,
// response parsing, staged reveal, go-live. It owns the visible code buffer
// and the session store mutations for the whole cycle; the presentation
// layer only reads the State it publishes.
//
// Send and Improve block until the cycle finishes and are meant to run on
// their own goroutine. Only one cycle runs at a time; a second entry while
// one is in flight is a no-op. Session operations cancel an in-flight
// cycle, and a cancelled cycle never mutates the store or the visible
// buffer again.
type Generator struct {
	mu     sync.Mutex
	client llm.Client
	store  *chat.Store
	pacing reveal.Pacing

	userName string

	phase        Phase
	visible      site.Code
	generating   site.Section
	activeTab    site.Section
	viewMode     ViewMode
	improveOpen  bool
	projectTitle string

	// cancel aborts the in-flight pipeline; nil when idle or live.
	cancel context.CancelFunc

	onUpdate func(State)
	onNotify func(Notification)
}

// NewGenerator creates a generator over the given completion client and
// session store.
func NewGenerator(client llm.Client, store *chat.Store, pacing reveal.Pacing, userName string) *Generator {
	return &Generator{
		client:    client,
		store:     store,
		pacing:    pacing,
		userName:  userName,
		phase:     PhaseIdle,
		activeTab: site.SectionHTML,
		viewMode:  ViewModeCode,
	}
}

// SetObservers registers the presentation callbacks. They are invoked from
// the pipeline goroutine and should hand the value off to a channel and
// return quickly.
func (g *Generator) SetObservers(onUpdate func(State), onNotify func(Notification)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onUpdate = onUpdate
	g.onNotify = onNotify
}

// SetUserName updates the name used to personalize prompts, set after
// first-run onboarding.
func (g *Generator) SetUserName(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.userName = name
}

// State returns the current presentation state.
func (g *Generator) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

// Send runs one generation cycle for a new user message. Empty input and
// sends while a cycle is in flight are no-ops.
func (g *Generator) Send(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	ctx, ok := g.begin(ViewModeCode, false, text)
	if !ok {
		return
	}
	g.publish()

	name := g.currentUserName()
	logger.Debug("sending message: %q", text)
	raw, err := g.client.Complete(ctx, prompt.System(name), prompt.User(name, text))
	if err != nil {
		g.fail(ctx, err, "Failed to get AI response. Please try again.")
		return
	}

	g.finish(ctx, raw, text, false)
}

// Improve runs a generation cycle for an improvement request. The composed
// prompt embeds the previous code; only the feedback text is recorded in
// the transcript, and only once the provider answers.
func (g *Generator) Improve(feedback string) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return
	}

	ctx, ok := g.begin(ViewModeCode, true, "")
	if !ok {
		return
	}

	lastRequest := ""
	if msg, found := g.store.LastUserMessage(); found {
		lastRequest = msg.Content
	}
	previous := g.currentCode()

	logger.Debug("sending improvement request: %q", feedback)
	raw, err := g.client.Complete(ctx, prompt.System(g.currentUserName()), prompt.Improvement(lastRequest, previous, feedback))
	if err != nil {
		g.fail(ctx, err, "Failed to get improved code. Please try again.")
		return
	}

	if !g.advance(ctx, func() {
		g.store.AppendUserMessage(feedback)
	}) {
		return
	}

	g.finish(ctx, raw, lastRequest, true)
}

// finish is the shared tail of a successful completion: append the
// assistant message, parse, reveal, go live.
func (g *Generator) finish(ctx context.Context, raw, titleSource string, improvement bool) {
	if !g.advance(ctx, func() {
		g.store.AppendAssistantMessage(raw)
		g.phase = PhaseParsingResponse
	}) {
		return
	}
	g.publish()

	result := extract.Parse(raw)
	if result.Code.IsEmpty() {
		// Conversational answer: no reveal, straight back to idle.
		g.advance(ctx, func() {
			g.store.FinishStreaming()
			g.phase = PhaseIdle
			g.abortLocked()
		})
		g.publish()
		return
	}

	title := extract.ProjectTitle(titleSource)
	if !g.advance(ctx, func() {
		g.store.SetGeneratedCode(result.Code, title)
		g.projectTitle = title
	}) {
		return
	}

	// Let the explanation's own streaming-text animation finish first.
	if err := reveal.Wait(ctx, g.pacing.SettleDelay); err != nil {
		return
	}

	if !g.advance(ctx, func() {
		g.phase = PhaseRevealing
	}) {
		return
	}
	g.publish()

	engine := reveal.NewEngine(g.pacing, func(snap reveal.Snapshot) {
		if g.advance(ctx, func() {
			g.visible = snap.Code
			g.generating = snap.Generating
			g.activeTab = snap.ActiveTab
		}) {
			g.publish()
		}
	})
	if err := engine.Run(ctx, result.Code); err != nil {
		logger.Debug("reveal cancelled: %v", err)
		return
	}

	g.advance(ctx, func() {
		g.store.FinishStreaming()
		g.phase = PhaseLive
		g.viewMode = ViewModePreview
		if improvement {
			g.improveOpen = false
		}
		g.abortLocked()
	})
	g.publish()
	logger.Info("website live: %s", title)
}

// NewSession archives the current session and starts a fresh one. An
// in-flight generation is cancelled and discarded.
func (g *Generator) NewSession() {
	g.mu.Lock()
	g.abortLocked()
	g.store.NewSession()
	g.resetTransientLocked()
	g.mu.Unlock()
	g.publish()
}

// DeleteSession removes a session. Deleting the current session behaves
// like NewSession.
func (g *Generator) DeleteSession(id string) {
	g.mu.Lock()
	wasCurrent := g.store.CurrentID() == id
	if wasCurrent {
		g.abortLocked()
	}
	g.store.Delete(id)
	if wasCurrent {
		g.resetTransientLocked()
	}
	g.mu.Unlock()
	g.publish()
}

// SwitchSession makes an archived session current, restoring its generated
// code and live state if it has any. An in-flight generation is cancelled.
func (g *Generator) SwitchSession(id string) {
	g.mu.Lock()
	g.abortLocked()
	sess, ok := g.store.Switch(id)
	if !ok {
		g.mu.Unlock()
		return
	}

	if sess.GeneratedCode != nil {
		g.visible = *sess.GeneratedCode
		g.projectTitle = sess.ProjectTitle
		g.phase = PhaseLive
		g.improveOpen = true
	} else {
		g.resetTransientLocked()
	}
	g.generating = site.SectionNone
	g.activeTab = site.SectionHTML
	g.viewMode = ViewModeCode
	g.mu.Unlock()
	g.publish()
}

// SetActiveTab switches the visible code tab.
func (g *Generator) SetActiveTab(section site.Section) {
	g.mu.Lock()
	g.activeTab = section
	g.mu.Unlock()
	g.publish()
}

// SetViewMode toggles between code and preview views.
func (g *Generator) SetViewMode(mode ViewMode) {
	g.mu.Lock()
	g.viewMode = mode
	g.mu.Unlock()
	g.publish()
}

// SetImprovePanel opens or closes the improvement input panel.
func (g *Generator) SetImprovePanel(open bool) {
	g.mu.Lock()
	g.improveOpen = open
	g.mu.Unlock()
	g.publish()
}

// Export writes the current artifact to dir and returns the index path.
func (g *Generator) Export(dir string) (string, error) {
	g.mu.Lock()
	code := g.visible
	title := g.projectTitle
	g.mu.Unlock()
	return site.Export(dir, title, code)
}

// begin gates entry into a generation cycle. Returns false when another
// cycle is already in flight. userText, when non-empty, is appended as the
// optimistic user message under the same lock as the phase transition, so
// a concurrent session operation can never land it in a different session
// than the one the cycle started from. The message stays even if the
// completion call fails.
func (g *Generator) begin(mode ViewMode, improvement bool, userText string) (context.Context, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase.InFlight() {
		return nil, false
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.phase = PhaseAwaitingCompletion
	g.viewMode = mode
	if improvement {
		g.generating = site.SectionNone
	}
	if userText != "" {
		g.store.AppendUserMessage(userText)
	}
	return ctx, true
}

// advance applies a state mutation unless the pipeline owning ctx has been
// cancelled. Cancellation and mutation both happen under the lock, so a
// cancelled pipeline can never write again. Returns whether the mutation
// ran.
func (g *Generator) advance(ctx context.Context, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if ctx.Err() != nil {
		return false
	}
	fn()
	return true
}

// fail ends a cycle on a completion error. Cancelled cycles stay silent;
// real failures surface a notification and return to idle with the
// transcript untouched beyond the optimistic user message.
func (g *Generator) fail(ctx context.Context, err error, message string) {
	g.mu.Lock()
	if ctx.Err() != nil {
		g.mu.Unlock()
		return
	}
	logger.Error("completion failed: %v", err)
	g.phase = PhaseIdle
	g.abortLocked()
	notify := g.onNotify
	g.mu.Unlock()

	if notify != nil {
		notify(Notification{Title: "Error", Message: message, IsError: true})
	}
	g.publish()
}

// abortLocked cancels the pipeline context, if any, and drops the handle.
// Session operations use it to abort in-flight work; cycle endings use it
// to release the finished cycle's context. Caller holds the lock.
func (g *Generator) abortLocked() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// resetTransientLocked clears everything tied to the previous session's
// artifact. Caller holds the lock.
func (g *Generator) resetTransientLocked() {
	g.phase = PhaseIdle
	g.visible = site.Code{}
	g.generating = site.SectionNone
	g.activeTab = site.SectionHTML
	g.viewMode = ViewModeCode
	g.improveOpen = false
	g.projectTitle = ""
}

func (g *Generator) currentUserName() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.userName
}

func (g *Generator) currentCode() site.Code {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.visible
}

func (g *Generator) stateLocked() State {
	return State{
		Phase:             g.phase,
		Code:              g.visible,
		GeneratingSection: g.generating,
		ActiveTab:         g.activeTab,
		ViewMode:          g.viewMode,
		ImprovePanelOpen:  g.improveOpen,
		ProjectTitle:      g.projectTitle,
	}
}

func (g *Generator) publish() {
	g.mu.Lock()
	update := g.onUpdate
	state := g.stateLocked()
	g.mu.Unlock()

	if update != nil {
		update(state)
	}
}
