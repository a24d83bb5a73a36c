// Package reveal replays already-complete generated code as a staged,
// line-by-line animation. The model returns whole sections synchronously;
// the reveal exists purely to communicate work-in-progress to the user.
package reveal

import (
	"context"
	"strings"
	"time"

	"github.com/weftdev/weft/pkg/site"
)

// Pacing controls the reveal timing. All values come from configuration;
// zero values disable the corresponding delay, which is what tests and
// headless mode use.
type Pacing struct {
	LineDelay    time.Duration
	SectionPause time.Duration
	SettleDelay  time.Duration
}

// Snapshot is one observable state of the reveal. The visible code for a
// section is always a line-boundary prefix of its final content.
type Snapshot struct {
	Code       site.Code
	Generating site.Section
	ActiveTab  site.Section
	Live       bool
}

// Engine drives a single reveal sequence at a time. Sections are revealed
// in the fixed order HTML, CSS, JS; empty sections are skipped with no
// delay.
type Engine struct {
	pacing Pacing
	emit   func(Snapshot)
}

// NewEngine creates a reveal engine that reports every intermediate state
// through emit.
func NewEngine(pacing Pacing, emit func(Snapshot)) *Engine {
	return &Engine{pacing: pacing, emit: emit}
}

// Run reveals code section by section until everything is visible, then
// emits a final live snapshot. Cancelling the context stops the reveal
// between lines; no further snapshots are emitted after cancellation.
func (e *Engine) Run(ctx context.Context, code site.Code) error {
	visible := site.Code{}
	e.emit(Snapshot{Code: visible, ActiveTab: site.SectionHTML})

	for i, section := range site.Sections {
		content := code.Get(section)
		if content == "" {
			continue
		}

		e.emit(Snapshot{Code: visible, Generating: section, ActiveTab: section})

		var err error
		visible, err = e.typeSection(ctx, visible, section, content)
		if err != nil {
			return err
		}

		e.emit(Snapshot{Code: visible, Generating: site.SectionNone, ActiveTab: section})

		if i < len(site.Sections)-1 {
			if err := wait(ctx, e.pacing.SectionPause); err != nil {
				return err
			}
		}
	}

	e.emit(Snapshot{Code: visible, Generating: site.SectionNone, ActiveTab: site.SectionHTML, Live: true})
	return nil
}

// typeSection appends the section's lines one at a time, emitting after
// each so the visible content grows append-only.
func (e *Engine) typeSection(ctx context.Context, visible site.Code, section site.Section, content string) (site.Code, error) {
	var grown strings.Builder
	for _, line := range strings.Split(content, "\n") {
		if err := wait(ctx, e.pacing.LineDelay); err != nil {
			return visible, err
		}
		grown.WriteString(line)
		grown.WriteString("\n")
		visible = visible.WithSection(section, grown.String())
		e.emit(Snapshot{Code: visible, Generating: section, ActiveTab: section})
	}
	return visible, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Wait pauses for d unless the context is cancelled first. Exported for the
// controller's settle delay between parse and reveal.
func Wait(ctx context.Context, d time.Duration) error {
	return wait(ctx, d)
}
