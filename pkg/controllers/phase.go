package controllers

// Phase is the single source of truth for where the generation pipeline is.
// Booleans the presentation layer needs (is anything generating, is the
// site live) are derived from it instead of being independently mutable
// flags.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingCompletion
	PhaseParsingResponse
	PhaseRevealing
	PhaseLive
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingCompletion:
		return "awaiting_completion"
	case PhaseParsingResponse:
		return "parsing_response"
	case PhaseRevealing:
		return "revealing"
	case PhaseLive:
		return "live"
	default:
		return "unknown"
	}
}

// InFlight reports whether a generation cycle is running. Send is gated on
// this for the whole Idle to Live cycle.
func (p Phase) InFlight() bool {
	switch p {
	case PhaseAwaitingCompletion, PhaseParsingResponse, PhaseRevealing:
		return true
	}
	return false
}
