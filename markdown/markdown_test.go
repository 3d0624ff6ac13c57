package markdown

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ionut-t/codeblock/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSplitsProseAndBlocks(t *testing.T) {
	source := "# Title\n\nIntro text.\n\n```go\npackage main\n\nfunc main() {}\n```\n\nMiddle.\n\n```python\nprint(1)\n```\n"

	segments, err := Parse([]byte(source))
	require.NoError(t, err)

	assert.Equal(t, []core.Segment{
		{Kind: core.ProseSegment, Prose: "# Title\n\nIntro text."},
		{Kind: core.BlockSegment, Block: core.Block{Language: "go", Text: "package main\n\nfunc main() {}", Key: "go#1"}},
		{Kind: core.ProseSegment, Prose: "Middle."},
		{Kind: core.BlockSegment, Block: core.Block{Language: "python", Text: "print(1)", Key: "python#1"}},
	}, segments)
}

func TestParseKeysCountPerLanguage(t *testing.T) {
	source := "```go\na\n```\n\n```\nplain\n```\n\n```go\nb\n```\n"

	segments, err := Parse([]byte(source))
	require.NoError(t, err)

	blocks := core.Blocks(segments)
	require.Len(t, blocks, 3)
	assert.Equal(t, "go#1", blocks[0].Key)
	assert.Equal(t, "code#1", blocks[1].Key)
	assert.Equal(t, "", blocks[1].Language)
	assert.Equal(t, "go#2", blocks[2].Key)
	assert.Len(t, segments, 3)
}

func TestParseKeysSurviveEditsToOtherLanguages(t *testing.T) {
	before, err := Parse([]byte("```go\na\n```\n"))
	require.NoError(t, err)

	after, err := Parse([]byte("```sh\nls\n```\n\n```go\na\n```\n"))
	require.NoError(t, err)

	assert.True(t, core.Unchanged(core.Blocks(before)[0], core.Blocks(after)[1]))
}

func TestParseTildeFenceWithInfo(t *testing.T) {
	segments, err := Parse([]byte("~~~js title=app.js\nconsole.log(1)\n~~~\n"))
	require.NoError(t, err)

	require.Len(t, segments, 1)
	assert.Equal(t, core.Block{Language: "js", Text: "console.log(1)", Key: "js#1"}, segments[0].Block)
}

func TestParseIndentedCodeBlock(t *testing.T) {
	segments, err := Parse([]byte("Para.\n\n    x := 1\n    y := 2\n\nAfter.\n"))
	require.NoError(t, err)

	assert.Equal(t, []core.Segment{
		{Kind: core.ProseSegment, Prose: "Para."},
		{Kind: core.BlockSegment, Block: core.Block{Text: "x := 1\ny := 2", Key: "code#1"}},
		{Kind: core.ProseSegment, Prose: "After."},
	}, segments)
}

func TestParseUnclosedFence(t *testing.T) {
	segments, err := Parse([]byte("```go\nx\n"))
	require.NoError(t, err)

	assert.Equal(t, []core.Segment{
		{Kind: core.BlockSegment, Block: core.Block{Language: "go", Text: "x", Key: "go#1"}},
	}, segments)
}

func TestParseEmptyFence(t *testing.T) {
	segments, err := Parse([]byte("```\n```\n\ntext\n"))
	require.NoError(t, err)

	assert.Equal(t, []core.Segment{
		{Kind: core.BlockSegment, Block: core.Block{Key: "code#1"}},
		{Kind: core.ProseSegment, Prose: "text"},
	}, segments)
}

func TestParseWithoutCode(t *testing.T) {
	segments, err := Parse([]byte("just prose\n\nmore prose\n"))
	require.NoError(t, err)
	assert.Equal(t, []core.Segment{{Kind: core.ProseSegment, Prose: "just prose\n\nmore prose"}}, segments)

	segments, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("```sql\nselect 1;\n```\n"), 0644))

	segments, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "sql#1", segments[0].Block.Key)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.md"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
