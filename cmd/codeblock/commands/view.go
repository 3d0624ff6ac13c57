package commands

import (
	"fmt"
	"io"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	codeblock "github.com/ionut-t/codeblock/adapter-bubbletea"
	"github.com/ionut-t/codeblock/core"
	"github.com/ionut-t/codeblock/internal/config"
	"github.com/ionut-t/codeblock/internal/watch"
)

// app hosts a document and, in watch mode, reloads it when the file changes.
type app struct {
	document codeblock.Document
	watcher  *watch.Watcher
	path     string
	quit     key.Binding
}

func newApp(path string, cfg *config.Config) app {
	return app{
		document: codeblock.NewDocument(80, 24, documentOptions(cfg)...),
		path:     path,
		quit:     quitBinding(cfg),
	}
}

func (a app) Init() tea.Cmd {
	return tea.Batch(a.document.Init(), a.listen())
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.quit) {
			a.document.Close()
			return a, tea.Quit
		}

	case watch.ChangedMsg:
		segments, err := segmentsFor(a.path, msg.Content)
		if err != nil {
			log.Printf("[watch] %v", err)
			a.document.Notifier().DispatchError(core.ErrReloadFailedId, err)
			return a, a.listen()
		}

		return a, tea.Batch(a.document.SetBlocks(segments), a.listen())

	case watch.ErrorMsg:
		log.Printf("[watch] %v", msg.Err)
		a.document.Notifier().DispatchError(core.ErrReloadFailedId, msg.Err)
		return a, a.listen()
	}

	updated, cmd := a.document.Update(msg)
	a.document = updated.(codeblock.Document)

	return a, cmd
}

func (a app) View() string {
	return a.document.View()
}

func (a app) listen() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Listen()
}

// ViewCommand shows the code blocks of a file.
func ViewCommand(args []string) error {
	return run("view", args, false)
}

// WatchCommand shows a file and reloads it whenever it is written.
func WatchCommand(args []string) error {
	return run("watch", args, true)
}

func run(command string, args []string, watching bool) error {
	opts, err := parseOptions(command, args)
	if err != nil {
		return err
	}

	segments, err := readSegments(opts.file)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(opts.config)
	if err != nil {
		return err
	}
	defer closeLog()

	a := newApp(opts.file, opts.config)
	a.document.SetBlocks(segments)

	if watching {
		w, err := watch.New(opts.file, opts.config.GetDebounce())
		if err != nil {
			return err
		}
		defer w.Close()

		a.watcher = w
		log.Printf("[watch] Watching %s", w.Path())
	}

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	return nil
}

// setupLogging sends logs to the configured file, or discards them so they
// do not corrupt the terminal UI.
func setupLogging(cfg *config.Config) (func(), error) {
	if cfg.LogFile == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := tea.LogToFile(cfg.LogFile, "codeblock")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return func() { f.Close() }, nil
}
