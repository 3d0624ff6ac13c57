package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()

	result := make(chan tea.Msg, 1)
	go func() {
		result <- cmd()
	}()

	select {
	case msg := <-result:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher")
		return nil
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0644))

	w, err := New(path, 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("ignored"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("second"), 0644))

	msg := waitFor(t, w.Listen())

	changed, ok := msg.(ChangedMsg)
	require.True(t, ok, "unexpected message %#v", msg)
	assert.Equal(t, w.Path(), changed.Path)
	assert.Equal(t, "second", string(changed.Content))
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("0"), 0644))

	w, err := New(path, 200*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	for _, content := range []string{"1", "2", "3"} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	msg := waitFor(t, w.Listen())

	changed, ok := msg.(ChangedMsg)
	require.True(t, ok, "unexpected message %#v", msg)
	assert.Equal(t, "3", string(changed.Content))
}

func TestWatcherCloseStopsListening(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	w, err := New(path, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	assert.Nil(t, waitFor(t, w.Listen()))
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "doc.md"), 0)
	assert.Error(t, err)
}
