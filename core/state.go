package core

import "time"

// CopyFeedbackDuration is how long the copied indicator stays on after a
// successful copy.
const CopyFeedbackDuration = 2000 * time.Millisecond

// Phase is the render phase of a block instance.
type Phase int

const (
	// PhasePlaceholder shows metadata and a loading indicator only.
	PhasePlaceholder Phase = iota
	// PhaseRendered shows the final interactive block. It is never left.
	PhaseRendered
)

func (p Phase) String() string {
	if p == PhaseRendered {
		return "rendered"
	}
	return "placeholder"
}

// State is the UI toggle state owned by a single block instance.
type State struct {
	CopyFeedback bool
	Wrap         bool
}

// ToggleWrap flips Wrap and returns the message describing the new value.
func (s *State) ToggleWrap() string {
	s.Wrap = !s.Wrap
	if s.Wrap {
		return WrapEnabledMessage
	}
	return WrapDisabledMessage
}
