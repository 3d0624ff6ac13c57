package bubble_adapter

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	BorderStyle        lipgloss.Style
	FocusedBorderStyle lipgloss.Style
	HeaderStyle        lipgloss.Style
	LanguageStyle      lipgloss.Style
	LineCountStyle     lipgloss.Style
	ButtonStyle        lipgloss.Style
	ActiveButtonStyle  lipgloss.Style
	BodyStyle          lipgloss.Style
	PlaceholderStyle   lipgloss.Style
	LineNumberStyle    lipgloss.Style
	OverflowStyle      lipgloss.Style
	ProseStyle         lipgloss.Style
	MessageStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style
}

var DefaultTheme = Theme{
	BorderStyle:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")),
	FocusedBorderStyle: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")),
	HeaderStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Padding(0, 1),
	LanguageStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	LineCountStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	ButtonStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	ActiveButtonStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true),
	BodyStyle:          lipgloss.NewStyle().Padding(0, 1),
	PlaceholderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true).Padding(0, 1),
	LineNumberStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right),
	OverflowStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	ProseStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1),
	MessageStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}
