package core

// Strategy selects how a block produces its highlighted output.
type Strategy int

const (
	// Immediate highlights on the same pass that creates the block.
	Immediate Strategy = iota
	// Deferred shows a placeholder first and swaps in the output once computed.
	Deferred
)

const (
	// DeferThreshold is the largest character count rendered immediately.
	DeferThreshold = 5000
	// HighlightSkipThreshold is the character count from which the deferred
	// path stops highlighting and shows the raw text.
	HighlightSkipThreshold = 10000
)

func (s Strategy) String() string {
	switch s {
	case Immediate:
		return "immediate"
	case Deferred:
		return "deferred"
	}
	return "unknown"
}

// SelectStrategy picks Deferred for texts longer than DeferThreshold
// characters and Immediate otherwise.
func SelectStrategy(text string) Strategy {
	// A string never has more characters than bytes.
	if len(text) <= DeferThreshold {
		return Immediate
	}

	if Length(text) > DeferThreshold {
		return Deferred
	}

	return Immediate
}
