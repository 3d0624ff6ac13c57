package bubble_adapter

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ionut-t/codeblock/adapter-bubbletea/highlighter"
	"github.com/ionut-t/codeblock/core"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// renderedMsg carries the output of a deferred render back to its instance.
type renderedMsg struct {
	id     int
	output string
}

// recomputedMsg replaces the output of an already rendered deferred block.
type recomputedMsg struct {
	id     int
	output string
}

type copyResultMsg struct {
	id  int
	err error
}

type clearCopyFeedbackMsg struct {
	id  int
	seq int
}

type Option func(*Model)

// WithHighlighter replaces the chroma highlighter.
func WithHighlighter(h core.Highlighter) Option {
	return func(m *Model) {
		m.highlighter = h
	}
}

// WithChromaTheme sets the chroma style used by the default highlighter.
func WithChromaTheme(theme string) Option {
	return func(m *Model) {
		m.chromaTheme = theme
	}
}

func WithClipboard(c core.Clipboard) Option {
	return func(m *Model) {
		m.clipboard = c
	}
}

func WithNotifier(n core.Notifier) Option {
	return func(m *Model) {
		m.notifier = n
	}
}

func WithTheme(theme Theme) Option {
	return func(m *Model) {
		m.theme = theme
	}
}

func WithKeyMap(keyMap KeyMap) Option {
	return func(m *Model) {
		m.keyMap = keyMap
	}
}

func WithLineNumbers(show bool) Option {
	return func(m *Model) {
		m.showLineNumbers = show
	}
}

func WithWidth(width int) Option {
	return func(m *Model) {
		m.width = width
	}
}

// Model renders one code block. Blocks up to core.DeferThreshold characters
// are highlighted in New; larger ones start as a placeholder and are
// highlighted by the command returned from Init.
type Model struct {
	id                   int
	block                core.Block
	strategy             core.Strategy
	phase                core.Phase
	lineCount            int
	maxLineWidth         int
	output               string
	state                core.State
	highlighter          core.Highlighter
	chromaTheme          string
	clipboard            core.Clipboard
	notifier             core.Notifier
	theme                Theme
	keyMap               KeyMap
	width                int
	xOffset              int // Horizontal scroll position when wrapping is off
	showLineNumbers      bool
	isFocused            bool
	copyFeedbackDuration time.Duration
	copySeq              int
	copyCancel           context.CancelFunc
	options              []Option
}

func New(block core.Block, options ...Option) Model {
	m := Model{
		id:                   nextID(),
		block:                block,
		strategy:             core.SelectStrategy(block.Text),
		phase:                core.PhasePlaceholder,
		lineCount:            core.LineCount(block.Text),
		maxLineWidth:         maxLineWidth(block.Text),
		clipboard:            SystemClipboard,
		notifier:             core.NopNotifier{},
		theme:                DefaultTheme,
		keyMap:               DefaultKeyMap(),
		width:                defaultWidth,
		copyFeedbackDuration: core.CopyFeedbackDuration,
		options:              options,
	}

	for _, option := range options {
		option(&m)
	}

	if m.highlighter == nil {
		m.highlighter = highlighter.New(block.Language, m.chromaTheme)
	}

	if m.strategy == core.Immediate {
		m.output = core.Render(m.highlighter, block.Text, core.Immediate)
		m.phase = core.PhaseRendered
	}

	return m
}

func (m Model) Init() tea.Cmd {
	if m.phase == core.PhaseRendered {
		return nil
	}

	return m.render()
}

// render computes the deferred output off the event loop.
func (m Model) render() tea.Cmd {
	id, h, text := m.id, m.highlighter, m.block.Text

	return func() tea.Msg {
		return renderedMsg{id: id, output: core.Render(h, text, core.Deferred)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case renderedMsg:
		if msg.id != m.id || m.phase == core.PhaseRendered {
			break
		}
		m.output = msg.output
		m.phase = core.PhaseRendered

	case recomputedMsg:
		if msg.id == m.id && m.phase == core.PhaseRendered {
			m.output = msg.output
		}

	case tea.WindowSizeMsg:
		m.SetWidth(msg.Width)

	case tea.KeyMsg:
		if !m.isFocused || m.phase != core.PhaseRendered {
			break
		}

		switch {
		case key.Matches(msg, m.keyMap.Copy):
			return m, m.Copy()
		case key.Matches(msg, m.keyMap.ToggleWrap):
			m.ToggleWrap()
		case key.Matches(msg, m.keyMap.ScrollLeft):
			m.scrollHorizontally(-horizontalStep)
		case key.Matches(msg, m.keyMap.ScrollRight):
			m.scrollHorizontally(horizontalStep)
		}

	case copyResultMsg:
		if msg.id != m.id {
			break
		}

		// A failed copy leaves the feedback flag and its timer as they are.
		if msg.err != nil {
			log.Printf("[codeblock] %v", core.NewError(core.ErrCopyFailedId, msg.err))
			if dispatcher, ok := m.notifier.(core.ErrorDispatcher); ok {
				dispatcher.DispatchError(core.ErrCopyFailedId, msg.err)
			} else {
				m.notifier.Failure(core.CopyFailedMessage)
			}
			break
		}

		m.state.CopyFeedback = true
		m.notifier.Success(core.CopySucceededMessage)
		return m, m.dispatchClearCopyFeedback()

	case clearCopyFeedbackMsg:
		if msg.id == m.id && msg.seq == m.copySeq {
			m.state.CopyFeedback = false
			m.copyCancel = nil
		}
	}

	return m, nil
}

// Copy returns a command writing the block text to the clipboard.
// It does nothing while the block is a placeholder.
func (m Model) Copy() tea.Cmd {
	if m.phase != core.PhaseRendered {
		return nil
	}

	id, clipboard, text := m.id, m.clipboard, m.block.Text

	return func() tea.Msg {
		if err := clipboard.Write(text); err != nil {
			return copyResultMsg{id: id, err: fmt.Errorf("%w: %w", core.ErrCopyFailed, err)}
		}
		return copyResultMsg{id: id}
	}
}

// ToggleWrap flips line wrapping and notifies the new state.
// It does nothing while the block is a placeholder.
func (m *Model) ToggleWrap() {
	if m.phase != core.PhaseRendered {
		return
	}

	m.notifier.Success(m.state.ToggleWrap())
	m.xOffset = 0
}

// dispatchClearCopyFeedback restarts the copy feedback timer.
// Only the most recent timer clears the feedback.
func (m *Model) dispatchClearCopyFeedback() tea.Cmd {
	if m.copyCancel != nil {
		m.copyCancel()
	}

	m.copySeq++
	ctx, cancel := context.WithTimeout(context.Background(), m.copyFeedbackDuration)
	m.copyCancel = cancel

	id, seq := m.id, m.copySeq

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearCopyFeedbackMsg{id: id, seq: seq}
		}
		return nil
	}
}

// Close cancels any pending copy feedback timer.
// The instance must not receive messages afterwards.
func (m *Model) Close() {
	if m.copyCancel != nil {
		m.copyCancel()
		m.copyCancel = nil
	}

	m.copySeq++
}

// SetBlock returns m as is when next describes the same block. Otherwise m
// is closed and a new instance for next is returned along with its Init
// command; toggle state starts over.
func (m *Model) SetBlock(next core.Block) (Model, tea.Cmd) {
	if core.Unchanged(m.block, next) {
		return *m, nil
	}

	m.Close()

	n := New(next, m.options...)
	n.width = m.width
	n.isFocused = m.isFocused

	return n, n.Init()
}

// Recompute derives the line count and, once rendered, the output again
// from the block text. Deferred blocks are highlighted by the returned
// command, off the event loop.
func (m *Model) Recompute() tea.Cmd {
	m.lineCount = core.LineCount(m.block.Text)
	m.maxLineWidth = maxLineWidth(m.block.Text)

	if m.phase != core.PhaseRendered {
		return nil
	}

	if m.strategy == core.Immediate {
		m.output = core.Render(m.highlighter, m.block.Text, core.Immediate)
		return nil
	}

	id, h, text := m.id, m.highlighter, m.block.Text

	return func() tea.Msg {
		return recomputedMsg{id: id, output: core.Render(h, text, core.Deferred)}
	}
}

func (m *Model) SetWidth(width int) {
	m.width = max(minWidth, width)
	m.scrollHorizontally(0)
}

func (m Model) Width() int {
	return m.width
}

// Focus makes the block respond to key bindings.
func (m *Model) Focus() {
	m.isFocused = true
}

func (m *Model) Blur() {
	m.isFocused = false
}

func (m Model) IsFocused() bool {
	return m.isFocused
}

func (m Model) ID() int {
	return m.id
}

func (m Model) Block() core.Block {
	return m.block
}

func (m Model) Key() string {
	return m.block.Key
}

func (m Model) Strategy() core.Strategy {
	return m.strategy
}

func (m Model) Phase() core.Phase {
	return m.phase
}

func (m Model) LineCount() int {
	return m.lineCount
}

// Output returns the highlighted markup, or "" while the block is a placeholder.
func (m Model) Output() string {
	return m.output
}

// CopyFeedback reports whether the copied indicator is shown.
func (m Model) CopyFeedback() bool {
	return m.state.CopyFeedback
}

func (m Model) IsWrapped() bool {
	return m.state.Wrap
}
