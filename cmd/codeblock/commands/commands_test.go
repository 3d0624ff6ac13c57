package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ionut-t/codeblock/core"
	"github.com/ionut-t/codeblock/internal/config"
	"github.com/ionut-t/codeblock/internal/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("line_numbers: true\n"), 0644))

	opts, err := parseOptions("view", []string{"-config", configPath, "doc.md"})
	require.NoError(t, err)
	assert.Equal(t, "doc.md", opts.file)
	assert.True(t, opts.config.LineNumbers)

	opts, err = parseOptions("view", []string{"-config", filepath.Join(dir, "missing.yaml"), "doc.md"})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultChromaStyle, opts.config.GetChromaStyle())
}

func TestParseOptionsUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"a.md", "b.md"}, {"-unknown", "a.md"}} {
		_, err := parseOptions("blocks", args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage: codeblock blocks")
	}
}

func TestSegmentsFor(t *testing.T) {
	segments, err := segmentsFor("notes.md", []byte("Intro\n\n```go\nx := 1\n```\n"))
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "go#1", segments[1].Block.Key)

	segments, err = segmentsFor("/src/main.go", []byte("package main\n"))
	require.NoError(t, err)
	assert.Equal(t, []core.Segment{{
		Kind:  core.BlockSegment,
		Block: core.Block{Language: "go", Text: "package main", Key: "main.go"},
	}}, segments)

	assert.True(t, isMarkdown("README.MARKDOWN"))
	assert.False(t, isMarkdown("Makefile"))
}

func TestPrintBlocks(t *testing.T) {
	var out bytes.Buffer
	err := printBlocks(&out, []core.Block{
		{Language: "go", Text: "a\nb", Key: "go#1"},
		{Text: strings.Repeat("x", 6000), Key: "code#1"},
		{Language: "js", Text: strings.Repeat("y", 12000), Key: "js#1"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"KEY", "LANGUAGE", "LINES", "CHARS", "STRATEGY", "HIGHLIGHT"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"go#1", "go", "2", "3", "immediate", "yes"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"code#1", "-", "1", "6000", "deferred", "yes"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"js#1", "js", "1", "12000", "deferred", "no"}, strings.Fields(lines[3]))

	out.Reset()
	require.NoError(t, printBlocks(&out, nil))
	assert.Equal(t, "No code blocks found\n", out.String())
}

func TestKeyMapOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keys.Copy = []string{"ctrl+y"}
	cfg.Keys.Next = []string{"n"}

	km := keyMap(cfg)
	assert.Equal(t, []string{"ctrl+y"}, km.Copy.Keys())
	assert.Equal(t, "ctrl+y", km.Copy.Help().Key)
	assert.Equal(t, "copy", km.Copy.Help().Desc)
	assert.Equal(t, []string{"n"}, km.NextBlock.Keys())
	assert.Equal(t, []string{"w"}, km.ToggleWrap.Keys())

	cfg.Keys.Quit = nil
	assert.Equal(t, []string{"q", "ctrl+c"}, quitBinding(cfg).Keys())
}

func TestAppReloadsOnChange(t *testing.T) {
	a := newApp("doc.md", config.DefaultConfig())
	a.document.SetBlocks([]core.Segment{{
		Kind:  core.BlockSegment,
		Block: core.Block{Language: "go", Text: "a", Key: "go#1"},
	}})
	before := a.document.Blocks()[0].ID()

	updated, _ := a.Update(watch.ChangedMsg{Content: []byte("```go\na\n```\n\n```sh\nls\n```\n")})
	a = updated.(app)

	blocks := a.document.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, before, blocks[0].ID())
	assert.Equal(t, "sh#1", blocks[1].Key())
}

func TestAppReportsReloadErrors(t *testing.T) {
	a := newApp("doc.md", config.DefaultConfig())
	defer a.document.Close()

	updated, _ := a.Update(watch.ErrorMsg{Err: errors.New("file removed")})
	a = updated.(app)

	updated, _ = a.Update(a.document.Toast().Init()())
	a = updated.(app)

	message, isError := a.document.Toast().Message()
	assert.True(t, isError)
	assert.Equal(t, core.ReloadFailedMessage+": file removed", message)
}

func TestReadSegments(t *testing.T) {
	dir := t.TempDir()

	doc := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(doc, []byte("Intro\n\n```sh\nls\n```\n"), 0644))

	segments, err := readSegments(doc)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "sh#1", segments[1].Block.Key)

	src := filepath.Join(dir, "main.py")
	require.NoError(t, os.WriteFile(src, []byte("print(1)\n"), 0644))

	segments, err = readSegments(src)
	require.NoError(t, err)
	assert.Equal(t, []core.Block{{Language: "py", Text: "print(1)", Key: "main.py"}}, core.Blocks(segments))

	_, err = readSegments(filepath.Join(dir, "missing.md"))
	assert.Error(t, err)
}

func TestAppQuits(t *testing.T) {
	a := newApp("doc.md", config.DefaultConfig())

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestSetupLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codeblock.log")
	cfg := config.DefaultConfig()
	cfg.LogFile = path

	closeLog, err := setupLogging(cfg)
	require.NoError(t, err)
	closeLog()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
