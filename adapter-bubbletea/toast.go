package bubble_adapter

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/codeblock/core"
)

const DefaultToastDuration = 3 * time.Second

type toastMsg struct {
	message string
	isError bool
}

type clearToastMsg struct {
	seq int
}

type ignoredSignalMsg struct{}

// Toast shows the latest notification dispatched through a SignalNotifier
// and clears it after a delay.
type Toast struct {
	notifier    *core.SignalNotifier
	theme       Theme
	duration    time.Duration
	width       int
	message     string
	isError     bool
	seq         int
	clearCancel context.CancelFunc
}

func NewToast(notifier *core.SignalNotifier, duration time.Duration) Toast {
	if duration <= 0 {
		duration = DefaultToastDuration
	}

	return Toast{
		notifier: notifier,
		theme:    DefaultTheme,
		duration: duration,
	}
}

func (t *Toast) WithTheme(theme Theme) {
	t.theme = theme
}

func (t *Toast) SetWidth(width int) {
	t.width = width
}

// Message returns the notification currently shown, if any.
func (t Toast) Message() (message string, isError bool) {
	return t.message, t.isError
}

func (t Toast) Init() tea.Cmd {
	return t.listenForNotifications()
}

func (t Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	switch msg := msg.(type) {
	case toastMsg:
		t.message = msg.message
		t.isError = msg.isError
		return t, tea.Batch(t.dispatchClearMsg(), t.listenForNotifications())

	case ignoredSignalMsg:
		return t, t.listenForNotifications()

	case clearToastMsg:
		if msg.seq == t.seq {
			t.message = ""
			t.isError = false
			t.clearCancel = nil
		}
	}

	return t, nil
}

func (t Toast) View() string {
	style := t.theme.MessageStyle
	if t.isError {
		style = t.theme.ErrorStyle
	}

	line := style.Render(t.message)
	if padding := t.width - lipgloss.Width(line); padding > 0 {
		line += strings.Repeat(" ", padding)
	}

	return line
}

// Close stops the pending clear timer.
func (t *Toast) Close() {
	if t.clearCancel != nil {
		t.clearCancel()
		t.clearCancel = nil
	}
}

func (t *Toast) dispatchClearMsg() tea.Cmd {
	if t.clearCancel != nil {
		t.clearCancel()
	}

	t.seq++
	ctx, cancel := context.WithTimeout(context.Background(), t.duration)
	t.clearCancel = cancel
	seq := t.seq

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearToastMsg{seq: seq}
		}
		return nil
	}
}

func (t Toast) listenForNotifications() tea.Cmd {
	if t.notifier == nil {
		return nil
	}

	signals := t.notifier.GetUpdateSignalChan()

	return func() tea.Msg {
		signal := <-signals

		switch signal := signal.(type) {
		case core.MessageSignal:
			return toastMsg{message: signal.Value()}

		case core.ErrorSignal:
			return toastMsg{message: signal.Message(), isError: true}
		}

		return ignoredSignalMsg{}
	}
}
