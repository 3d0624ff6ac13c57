package core

import (
	"fmt"
	"log"

	"github.com/charmbracelet/x/ansi"
)

// Highlighter turns plain text into highlighted markup.
type Highlighter interface {
	Highlight(text string) (string, error)
}

// HighlighterFunc adapts a function to the Highlighter interface.
type HighlighterFunc func(text string) (string, error)

func (f HighlighterFunc) Highlight(text string) (string, error) {
	return f(text)
}

// ShouldHighlight reports whether text is highlighted under strategy.
// Only the deferred path skips very large inputs; the immediate path never
// receives them.
func ShouldHighlight(text string, strategy Strategy) bool {
	if strategy == Deferred {
		return Length(text) < HighlightSkipThreshold
	}
	return true
}

// Render returns the body markup of text for the given strategy.
//
// Highlighter failures never propagate: they are logged and the raw text is
// returned instead. The result is never blank when text is not. Escape
// sequences in text are stripped so they never reach the terminal.
func Render(h Highlighter, text string, strategy Strategy) string {
	highlighted := h != nil && ShouldHighlight(text, strategy)
	text = ansi.Strip(text)

	if !highlighted {
		return text
	}

	out, err := highlight(h, text)
	if err != nil {
		log.Printf("[codeblock] %v, using plain text", NewError(ErrHighlightFailedId, err))
		return text
	}

	if out == "" && text != "" {
		return text
	}

	return out
}

func highlight(h Highlighter, text string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = fmt.Errorf("%w: panic: %v", ErrHighlightFailed, r)
		}
	}()

	out, err = h.Highlight(text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHighlightFailed, err)
	}

	return out, nil
}
