// Package markdown splits a markdown document into prose and code block
// segments.
package markdown

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ionut-t/codeblock/core"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// UnnamedLanguage stands in for the language in keys of blocks without one.
const UnnamedLanguage = "code"

// span is a code block and the source lines it occupies, fences included.
type span struct {
	first, last int
	block       core.Block
}

// ParseFile reads and parses the markdown file at path.
func ParseFile(path string) ([]core.Segment, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Parse(content)
}

// Parse extracts the code blocks of source in document order, with the
// text between them as prose segments.
//
// Blocks are keyed "<language>#<n>", n counting the blocks of that language
// from 1, so that editing one block leaves the keys of the others intact.
func Parse(source []byte) ([]core.Segment, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(source))

	lines := newLineIndex(source)
	counts := make(map[string]int)

	var spans []span
	cursor := 0

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var (
			s  span
			ok bool
		)

		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			s, ok = fencedSpan(node, lines, cursor)
			s.block.Language = string(node.Language(source))
			s.block.Text = content(node, source)

		case *ast.CodeBlock:
			s, ok = indentedSpan(node, lines)
			s.block.Text = content(node, source)

		default:
			return ast.WalkContinue, nil
		}

		if !ok {
			return ast.WalkSkipChildren, nil
		}

		s.first = max(s.first, cursor)
		s.block.Key = key(s.block.Language, counts)
		spans = append(spans, s)
		cursor = s.last + 1

		return ast.WalkSkipChildren, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown: %w", err)
	}

	var segments []core.Segment
	cursor = 0

	for _, s := range spans {
		if prose := lines.prose(cursor, s.first); prose != "" {
			segments = append(segments, core.Segment{Kind: core.ProseSegment, Prose: prose})
		}

		segments = append(segments, core.Segment{Kind: core.BlockSegment, Block: s.block})
		cursor = s.last + 1
	}

	if prose := lines.prose(cursor, lines.count()); prose != "" {
		segments = append(segments, core.Segment{Kind: core.ProseSegment, Prose: prose})
	}

	return segments, nil
}

func key(language string, counts map[string]int) string {
	name := language
	if name == "" {
		name = UnnamedLanguage
	}

	counts[name]++
	return name + "#" + strconv.Itoa(counts[name])
}

// content joins the lines of a code block without the final newline.
func content(n ast.Node, source []byte) string {
	var buf bytes.Buffer

	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

func fencedSpan(node *ast.FencedCodeBlock, lines lineIndex, cursor int) (span, bool) {
	var s span
	segments := node.Lines()

	switch {
	case segments.Len() > 0:
		s.first = lines.line(segments.At(0).Start) - 1
		s.last = lines.line(segments.At(segments.Len() - 1).Start)

	case node.Info != nil:
		s.first = lines.line(node.Info.Segment.Start)
		s.last = s.first

	default:
		// Empty block without info string: the opening fence is the
		// next fence line.
		s.first = -1
		for i := cursor; i < lines.count(); i++ {
			if _, _, ok := fence(lines.text(i)); ok {
				s.first = i
				break
			}
		}
		if s.first < 0 {
			return s, false
		}
		s.last = s.first
	}

	s.first = max(0, s.first)

	char, length, ok := fence(lines.text(s.first))
	if ok && s.last+1 < lines.count() && closes(lines.text(s.last+1), char, length) {
		s.last++
	}

	return s, true
}

func indentedSpan(node *ast.CodeBlock, lines lineIndex) (span, bool) {
	segments := node.Lines()
	if segments.Len() == 0 {
		return span{}, false
	}

	return span{
		first: lines.line(segments.At(0).Start),
		last:  lines.line(segments.At(segments.Len() - 1).Start),
	}, true
}

// fence reports the character and length of the fence opening line.
func fence(line string) (byte, int, bool) {
	trimmed := strings.TrimLeft(line, " \t>")
	if len(trimmed) < 3 || (trimmed[0] != '`' && trimmed[0] != '~') {
		return 0, 0, false
	}

	char := trimmed[0]
	length := len(trimmed) - len(strings.TrimLeft(trimmed, string(char)))
	if length < 3 {
		return 0, 0, false
	}

	return char, length, true
}

func closes(line string, char byte, length int) bool {
	trimmed := strings.TrimSpace(strings.TrimLeft(line, " \t>"))
	return len(trimmed) >= length && strings.Trim(trimmed, string(char)) == ""
}

type lineIndex struct {
	source []byte
	starts []int
}

func newLineIndex(source []byte) lineIndex {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' && i+1 < len(source) {
			starts = append(starts, i+1)
		}
	}

	return lineIndex{source: source, starts: starts}
}

func (l lineIndex) count() int {
	return len(l.starts)
}

// line returns the index of the line containing offset.
func (l lineIndex) line(offset int) int {
	return sort.SearchInts(l.starts, offset+1) - 1
}

func (l lineIndex) text(i int) string {
	end := len(l.source)
	if i+1 < len(l.starts) {
		end = l.starts[i+1]
	}

	return strings.TrimRight(string(l.source[l.starts[i]:end]), "\r\n")
}

// prose joins lines [from, to) without leading and trailing blank lines.
func (l lineIndex) prose(from, to int) string {
	var lines []string
	for i := from; i < to; i++ {
		lines = append(lines, l.text(i))
	}

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}
