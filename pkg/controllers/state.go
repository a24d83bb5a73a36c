package controllers

import "github.com/weftdev/weft/pkg/site"

// ViewMode selects what the code panel shows once code exists.
type ViewMode string

const (
	ViewModeCode    ViewMode = "code"
	ViewModePreview ViewMode = "preview"
)

// State is the read-only projection of the generator consumed by the
// presentation layer.
type State struct {
	Phase             Phase
	Code              site.Code // visible (possibly partial) code buffer
	GeneratingSection site.Section
	ActiveTab         site.Section
	ViewMode          ViewMode
	ImprovePanelOpen  bool
	ProjectTitle      string
}

// IsGenerating reports whether a send is currently suppressed.
func (s State) IsGenerating() bool {
	return s.Phase.InFlight()
}

// IsLive reports whether the generated site is final and previewable.
func (s State) IsLive() bool {
	return s.Phase == PhaseLive
}

// HasCode reports whether any code is visible at all.
func (s State) HasCode() bool {
	return !s.Code.IsEmpty()
}

// Document assembles the visible code into the combined preview document.
func (s State) Document() string {
	return site.BuildDocument(s.ProjectTitle, s.Code)
}

// Notification is a transient user-visible message, rendered by the UI as
// a toast in the status area.
type Notification struct {
	Title   string
	Message string
	IsError bool
}
