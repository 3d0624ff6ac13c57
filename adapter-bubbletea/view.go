package bubble_adapter

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/ionut-t/codeblock/core"
	"github.com/rivo/uniseg"
)

const (
	defaultWidth    = 80
	minWidth        = 20
	horizontalStep  = 8
	tabWidth        = 4
	overflowMarker  = "⇆"
	headerSeparator = "  "
)

func (m Model) View() string {
	border := m.theme.BorderStyle
	if m.isFocused {
		border = m.theme.FocusedBorderStyle
	}

	innerWidth := max(1, m.width-border.GetHorizontalFrameSize())

	header := m.renderHeader(innerWidth)

	var body string
	if m.phase == core.PhasePlaceholder {
		body = m.theme.PlaceholderStyle.Width(innerWidth).Render(core.LoadingMessage)
	} else {
		body = m.renderBody(innerWidth)
	}

	return border.Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

func (m Model) renderHeader(width int) string {
	var meta []string
	if m.block.Language != "" {
		meta = append(meta, m.theme.LanguageStyle.Render(strings.ToUpper(m.block.Language)))
	}
	meta = append(meta, m.theme.LineCountStyle.Render(lineCountLabel(m.lineCount)))

	if m.phase == core.PhaseRendered && !m.state.Wrap && m.maxLineWidth > m.textWidth() {
		meta = append(meta, m.theme.OverflowStyle.Render(overflowMarker))
	}

	left := strings.Join(meta, headerSeparator)

	// The placeholder has no controls.
	var right string
	if m.phase == core.PhaseRendered {
		right = m.renderButtons()
	}

	frame := m.theme.HeaderStyle.GetHorizontalFrameSize()
	gap := max(1, width-frame-lipgloss.Width(left)-lipgloss.Width(right))

	return m.theme.HeaderStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderButtons() string {
	wrapLabel, wrapStyle := "wrap", m.theme.ButtonStyle
	if m.state.Wrap {
		wrapLabel, wrapStyle = "unwrap", m.theme.ActiveButtonStyle
	}

	copyLabel, copyStyle := "copy", m.theme.ButtonStyle
	if m.state.CopyFeedback {
		copyLabel, copyStyle = "copied!", m.theme.ActiveButtonStyle
	}

	return wrapStyle.Render(m.keyMap.ToggleWrap.Help().Key+" "+wrapLabel) +
		headerSeparator +
		copyStyle.Render(m.keyMap.Copy.Help().Key+" "+copyLabel)
}

func (m Model) renderBody(width int) string {
	gutter := m.gutterWidth()
	textWidth := m.textWidth()

	var b strings.Builder
	for i, line := range strings.Split(expandTabs(m.output), "\n") {
		var segments []string
		if m.state.Wrap {
			segments = strings.Split(ansi.Wrap(line, textWidth, ""), "\n")
		} else {
			segments = []string{ansi.Cut(line, m.xOffset, m.xOffset+textWidth)}
		}

		for j, segment := range segments {
			if i > 0 || j > 0 {
				b.WriteByte('\n')
			}

			if gutter > 0 {
				number := ""
				if j == 0 {
					number = strconv.Itoa(i + 1)
				}
				b.WriteString(m.theme.LineNumberStyle.Width(gutter-1).Render(number) + " ")
			}

			b.WriteString(segment)
		}
	}

	return m.theme.BodyStyle.Width(width).Render(b.String())
}

// gutterWidth is the width of the line number column including its separator.
func (m Model) gutterWidth() int {
	if !m.showLineNumbers {
		return 0
	}
	return len(strconv.Itoa(max(1, m.lineCount))) + 1
}

// textWidth is the number of cells available for code on each row.
func (m Model) textWidth() int {
	frame := m.theme.BorderStyle.GetHorizontalFrameSize() + m.theme.BodyStyle.GetHorizontalFrameSize()
	return max(1, m.width-frame-m.gutterWidth())
}

func (m *Model) scrollHorizontally(delta int) {
	if m.state.Wrap {
		m.xOffset = 0
		return
	}

	limit := max(0, m.maxLineWidth-m.textWidth())
	m.xOffset = min(max(0, m.xOffset+delta), limit)
}

func lineCountLabel(count int) string {
	if count == 1 {
		return "1 line"
	}
	return strconv.Itoa(count) + " lines"
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// maxLineWidth returns the display width of the widest line of text.
func maxLineWidth(text string) int {
	width := 0
	for line := range strings.SplitSeq(text, "\n") {
		width = max(width, uniseg.StringWidth(expandTabs(line)))
	}
	return width
}
