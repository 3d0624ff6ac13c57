package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// DefaultTheme is the chroma style used when none is given.
const DefaultTheme = "catppuccin-mocha"

// Highlighter renders source text as ANSI markup using a chroma lexer and style.
type Highlighter struct {
	lexer      chroma.Lexer
	style      *chroma.Style
	styleCache map[chroma.TokenType]lipgloss.Style
	cacheMutex sync.RWMutex
}

// New creates a new syntax highlighter.
//
// Unknown languages fall back to plain text. For a full list of available
// themes, see: https://github.com/alecthomas/chroma/blob/master/styles
func New(language string, theme string) *Highlighter {
	lexer := lookupLexer(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	lexer = chroma.Coalesce(lexer)

	if theme == "" {
		theme = DefaultTheme
	}

	return &Highlighter{
		lexer:      lexer,
		style:      styles.Get(theme),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

func lookupLexer(language string) chroma.Lexer {
	if language == "" {
		return nil
	}

	if lexer := lexers.Get(language); lexer != nil {
		return lexer
	}

	// Try with file extension
	return lexers.Match("file." + language)
}

// Highlight tokenizes text and renders every token with its style.
// Token values spanning several lines are split so each output line is
// styled independently.
func (sh *Highlighter) Highlight(text string) (string, error) {
	if text == "" {
		return "", nil
	}

	iterator, err := sh.lexer.Tokenise(nil, text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(text))

	for _, token := range iterator.Tokens() {
		style := sh.GetStyleForToken(token.Type)
		value := token.Value
		for {
			before, after, found := strings.Cut(value, "\n")
			if before != "" {
				b.WriteString(style.Render(before))
			}
			if !found {
				break
			}
			b.WriteByte('\n')
			value = after
		}
	}

	out := b.String()

	// Lexers may append a newline to unterminated input.
	if !strings.HasSuffix(text, "\n") {
		out = strings.TrimSuffix(out, "\n")
	}

	return out, nil
}

// GetStyleForToken converts a Chroma token type to a lipgloss style.
func (sh *Highlighter) GetStyleForToken(tokenType chroma.TokenType) lipgloss.Style {
	sh.cacheMutex.RLock()
	style, ok := sh.styleCache[tokenType]
	sh.cacheMutex.RUnlock()
	if ok {
		return style
	}

	entry := sh.style.Get(tokenType)

	// Tabs are expanded by the view.
	style = lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}

	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	sh.cacheMutex.Lock()
	sh.styleCache[tokenType] = style
	sh.cacheMutex.Unlock()

	return style
}
