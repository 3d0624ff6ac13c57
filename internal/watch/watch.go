// Package watch reports changes of a single file as Bubble Tea messages.
package watch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 100 * time.Millisecond

// ChangedMsg carries the file content after a burst of writes settled.
type ChangedMsg struct {
	Path    string
	Content []byte
}

type ErrorMsg struct {
	Err error
}

// Watcher watches the directory of a file, so that editors replacing the
// file through a rename are noticed too.
type Watcher struct {
	watcher   *fsnotify.Watcher
	path      string
	debounce  time.Duration
	changes   chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
}

func New(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		watcher:  fsWatcher,
		path:     abs,
		debounce: debounce,
		changes:  make(chan tea.Msg),
		done:     make(chan struct{}),
	}

	go w.run()

	return w, nil
}

func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) run() {
	var settle <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				settle = time.After(w.debounce)
			}

		case <-settle:
			settle = nil

			content, err := os.ReadFile(w.path)
			if err != nil {
				// A rename may leave the file missing until the editor
				// writes it back.
				if os.IsNotExist(err) {
					continue
				}
				w.send(ErrorMsg{Err: err})
				continue
			}

			w.send(ChangedMsg{Path: w.path, Content: content})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watch] Error: %v", err)
			w.send(ErrorMsg{Err: err})

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) send(msg tea.Msg) {
	select {
	case w.changes <- msg:
	case <-w.done:
	}
}

// Listen returns a command that waits for the next change. Issue it again
// after each message to keep listening.
func (w *Watcher) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.changes:
			return msg
		case <-w.done:
			return nil
		}
	}
}

// Close stops the watcher. Pending Listen commands return nil.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
