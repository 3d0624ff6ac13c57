package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	codeblock "github.com/ionut-t/codeblock/adapter-bubbletea"
	"github.com/ionut-t/codeblock/core"
)

type Model struct {
	document codeblock.Document
}

func (m Model) Init() tea.Cmd {
	return m.document.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave room for the outer border.
		msg.Width -= 4
		msg.Height -= 2
		updated, cmd := m.document.Update(msg)
		m.document = updated.(codeblock.Document)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.document.Close()
			return m, tea.Quit
		}
	}

	updated, cmd := m.document.Update(msg)
	m.document = updated.(codeblock.Document)

	return m, cmd
}

func (m Model) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.document.View())
}

// sampleSegments shows one block per rendering path: a small block rendered
// immediately, a deferred one that is highlighted, and a deferred one too
// large to highlight.
func sampleSegments(lang string) []core.Segment {
	small := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}"

	var medium strings.Builder
	for i := range 200 {
		fmt.Fprintf(&medium, "func handler%d() error { return nil }\n", i)
	}

	var large strings.Builder
	for i := range 600 {
		fmt.Fprintf(&large, "const value%d = %d // generated\n", i, i*i)
	}

	return []core.Segment{
		{Kind: core.ProseSegment, Prose: "A small block is highlighted as soon as it is created."},
		{Kind: core.BlockSegment, Block: core.Block{Language: lang, Text: small, Key: "small"}},
		{Kind: core.ProseSegment, Prose: "Blocks over 5000 characters show a placeholder first."},
		{Kind: core.BlockSegment, Block: core.Block{Language: lang, Text: medium.String(), Key: "medium"}},
		{Kind: core.ProseSegment, Prose: "Deferred blocks of 10000 characters or more are shown as plain text."},
		{Kind: core.BlockSegment, Block: core.Block{Language: lang, Text: large.String(), Key: "large"}},
	}
}

func main() {
	lang := "go"

	if len(os.Args) > 1 {
		lang = os.Args[1]
	}

	theme := codeblock.DefaultTheme
	theme.FocusedBorderStyle = theme.FocusedBorderStyle.BorderForeground(lipgloss.Color("212"))

	document := codeblock.NewDocument(80, 20,
		codeblock.WithDocumentTheme(theme),
		codeblock.WithBlockOptions(
			codeblock.WithChromaTheme("catppuccin-mocha"),
			codeblock.WithLineNumbers(true),
		),
	)
	document.SetBlocks(sampleSegments(lang))

	p := tea.NewProgram(Model{document: document}, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running Bubble Tea program: %v", err)
	}
}
