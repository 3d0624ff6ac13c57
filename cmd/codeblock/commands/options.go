package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	codeblock "github.com/ionut-t/codeblock/adapter-bubbletea"
	"github.com/ionut-t/codeblock/core"
	"github.com/ionut-t/codeblock/internal/config"
	"github.com/ionut-t/codeblock/markdown"
)

type options struct {
	file   string
	config *config.Config
}

// parseOptions parses "[-config PATH] FILE" and loads the configuration.
func parseOptions(command string, args []string) (options, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", config.DefaultPath(), "path to the config file")

	usage := fmt.Errorf("usage: codeblock %s [-config PATH] FILE", command)

	if err := fs.Parse(args); err != nil {
		return options{}, fmt.Errorf("%w: %w", usage, err)
	}
	if fs.NArg() != 1 {
		return options{}, usage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return options{}, err
	}

	return options{file: fs.Arg(0), config: cfg}, nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// segmentsFor splits markdown content into segments. Any other file is a
// single block whose language is the file extension.
func segmentsFor(path string, content []byte) ([]core.Segment, error) {
	if isMarkdown(path) {
		return markdown.Parse(content)
	}

	language := strings.TrimPrefix(filepath.Ext(path), ".")

	return []core.Segment{{
		Kind: core.BlockSegment,
		Block: core.Block{
			Language: language,
			Text:     strings.TrimSuffix(string(content), "\n"),
			Key:      filepath.Base(path),
		},
	}}, nil
}

func readSegments(path string) ([]core.Segment, error) {
	if isMarkdown(path) {
		return markdown.ParseFile(path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return segmentsFor(path, content)
}

// keyMap applies the configured key overrides to the default bindings.
func keyMap(cfg *config.Config) codeblock.KeyMap {
	km := codeblock.DefaultKeyMap()

	override(&km.Copy, cfg.Keys.Copy)
	override(&km.ToggleWrap, cfg.Keys.Wrap)
	override(&km.NextBlock, cfg.Keys.Next)
	override(&km.PreviousBlock, cfg.Keys.Previous)
	override(&km.ScrollLeft, cfg.Keys.ScrollLeft)
	override(&km.ScrollRight, cfg.Keys.ScrollRight)

	return km
}

func override(binding *key.Binding, keys []string) {
	if len(keys) == 0 {
		return
	}

	binding.SetKeys(keys...)
	binding.SetHelp(keys[0], binding.Help().Desc)
}

func quitBinding(cfg *config.Config) key.Binding {
	keys := cfg.Keys.Quit
	if len(keys) == 0 {
		keys = []string{"q", "ctrl+c"}
	}

	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], "quit"))
}

func documentOptions(cfg *config.Config) []codeblock.DocumentOption {
	return []codeblock.DocumentOption{
		codeblock.WithGate(cfg.IsGateEnabled()),
		codeblock.WithToastDuration(cfg.GetToastDuration()),
		codeblock.WithDocumentKeyMap(keyMap(cfg)),
		codeblock.WithBlockOptions(
			codeblock.WithChromaTheme(cfg.GetChromaStyle()),
			codeblock.WithLineNumbers(cfg.LineNumbers),
		),
	}
}
