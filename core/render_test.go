package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubHighlighter struct {
	calls int
	fn    func(text string) (string, error)
}

func (s *stubHighlighter) Highlight(text string) (string, error) {
	s.calls++
	return s.fn(text)
}

func bracketing() *stubHighlighter {
	return &stubHighlighter{fn: func(text string) (string, error) {
		return "<" + text + ">", nil
	}}
}

func TestRender_ImmediateAlwaysHighlights(t *testing.T) {
	h := bracketing()

	assert.Equal(t, "<print(1)>", Render(h, "print(1)", Immediate))

	// No secondary size guard on the immediate path.
	large := strings.Repeat("x", 12000)
	assert.Equal(t, "<"+large+">", Render(h, large, Immediate))
	assert.Equal(t, 2, h.calls)
}

func TestRender_DeferredHighlightsBelowSkipThreshold(t *testing.T) {
	h := bracketing()
	text := strings.Repeat("x", 6000)

	assert.Equal(t, "<"+text+">", Render(h, text, Deferred))
	assert.Equal(t, 1, h.calls)
}

func TestRender_DeferredSkipsLargeInput(t *testing.T) {
	for _, n := range []int{10000, 12000} {
		h := bracketing()
		text := strings.Repeat("y", n)

		assert.Equal(t, text, Render(h, text, Deferred))
		assert.Zero(t, h.calls)
	}

	h := bracketing()
	text := strings.Repeat("y", 9999)
	assert.Equal(t, "<"+text+">", Render(h, text, Deferred))
}

func TestRender_ErrorFallsBackToRawText(t *testing.T) {
	h := &stubHighlighter{fn: func(string) (string, error) {
		return "partial", errors.New("boom")
	}}

	for _, strategy := range []Strategy{Immediate, Deferred} {
		assert.Equal(t, "a\tb\nc", Render(h, "a\tb\nc", strategy))
	}
}

func TestRender_PanicFallsBackToRawText(t *testing.T) {
	h := HighlighterFunc(func(string) (string, error) {
		panic("lexer exploded")
	})

	assert.NotPanics(t, func() {
		assert.Equal(t, "x := 1", Render(h, "x := 1", Immediate))
	})
}

func TestRender_EmptyOutputFallsBackToRawText(t *testing.T) {
	h := HighlighterFunc(func(string) (string, error) { return "", nil })

	assert.Equal(t, "x", Render(h, "x", Immediate))
	assert.Equal(t, "", Render(h, "", Immediate))
}

func TestRender_NilHighlighter(t *testing.T) {
	assert.Equal(t, "plain", Render(nil, "plain", Immediate))
}

func TestHighlightWrapsSentinel(t *testing.T) {
	cause := errors.New("bad token")
	_, err := highlight(HighlighterFunc(func(string) (string, error) {
		return "", cause
	}), "x")

	assert.ErrorIs(t, err, ErrHighlightFailed)
	assert.ErrorIs(t, err, cause)
}

func TestRender_StripsEscapeSequences(t *testing.T) {
	text := "a\x1b[2J\x1b]0;title\x07b"

	assert.Equal(t, "ab", Render(nil, text, Immediate))
	assert.Equal(t, "ab", Render(bracketing(), strings.Repeat("y", 10000)+text, Deferred)[10000:])
	assert.Equal(t, "<ab>", Render(bracketing(), text, Immediate))
}
