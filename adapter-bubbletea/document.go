package bubble_adapter

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/codeblock/core"
)

type docItem struct {
	prose   string
	block   Model
	isBlock bool
}

type DocumentOption func(*Document)

// WithBlockOptions applies options to every block the document creates.
func WithBlockOptions(options ...Option) DocumentOption {
	return func(d *Document) {
		d.blockOptions = append(d.blockOptions, options...)
	}
}

// WithGate controls whether unchanged blocks skip recomputation in SetBlocks.
// Disabling it never changes what is displayed.
func WithGate(enabled bool) DocumentOption {
	return func(d *Document) {
		d.gate = enabled
	}
}

func WithDocumentTheme(theme Theme) DocumentOption {
	return func(d *Document) {
		d.theme = theme
	}
}

func WithDocumentKeyMap(keyMap KeyMap) DocumentOption {
	return func(d *Document) {
		d.keyMap = keyMap
	}
}

// WithToastDuration sets how long notifications stay on screen.
func WithToastDuration(duration time.Duration) DocumentOption {
	return func(d *Document) {
		d.toastDuration = duration
	}
}

// Document shows prose and code blocks in a scrollable view, with one
// focused block receiving the block key bindings and a notification line
// at the bottom.
type Document struct {
	items         []docItem
	offsets       []int // First content row of each item
	focus         int   // Index into items of the focused block, -1 for none
	viewport      viewport.Model
	notifier      *core.SignalNotifier
	toast         Toast
	toastDuration time.Duration
	theme         Theme
	keyMap        KeyMap
	blockOptions  []Option
	gate          bool
	width         int
	height        int
}

func NewDocument(width, height int, options ...DocumentOption) Document {
	vp := viewport.New(width, max(1, height-1))
	// Scrolling is driven by the document key map.
	vp.KeyMap = viewport.KeyMap{}

	d := Document{
		focus:    -1,
		viewport: vp,
		notifier: core.NewSignalNotifier(16),
		theme:    DefaultTheme,
		keyMap:   DefaultKeyMap(),
		gate:     true,
	}

	for _, option := range options {
		option(&d)
	}

	d.toast = NewToast(d.notifier, d.toastDuration)
	d.toast.WithTheme(d.theme)
	d.SetSize(width, height)

	return d
}

// Notifier returns the notifier shared by all blocks of the document.
func (d *Document) Notifier() *core.SignalNotifier {
	return d.notifier
}

// SetBlocks replaces the document content. A block whose key, language and
// text are unchanged keeps its instance, toggle state and computed output;
// any other block gets a fresh instance and instances no longer present are
// closed.
func (d *Document) SetBlocks(segments []core.Segment) tea.Cmd {
	previous := make(map[string]Model)
	for _, item := range d.items {
		if !item.isBlock {
			continue
		}
		if _, duplicate := previous[item.block.Key()]; duplicate {
			item.block.Close()
			continue
		}
		previous[item.block.Key()] = item.block
	}

	focusedKey, hadFocus := "", d.focus >= 0
	if hadFocus {
		focusedKey = d.items[d.focus].block.Key()
	}

	var cmds []tea.Cmd
	items := make([]docItem, 0, len(segments))

	for _, segment := range segments {
		if segment.Kind == core.ProseSegment {
			items = append(items, docItem{prose: segment.Prose})
			continue
		}

		if old, ok := previous[segment.Block.Key]; ok {
			delete(previous, segment.Block.Key)

			if core.Unchanged(old.Block(), segment.Block) {
				if !d.gate {
					cmds = append(cmds, old.Recompute())
				}
				items = append(items, docItem{block: old, isBlock: true})
				continue
			}

			old.Close()
		}

		block := d.newBlock(segment.Block)
		cmds = append(cmds, block.Init())
		items = append(items, docItem{block: block, isBlock: true})
	}

	for _, old := range previous {
		old.Close()
	}

	d.items = items
	d.focus = -1
	for i, item := range d.items {
		item.block.Blur()
		d.items[i] = item
	}

	if hadFocus {
		d.focusKey(focusedKey)
	}
	if d.focus < 0 {
		d.focusBlock(1)
	}

	d.refresh()

	return tea.Batch(cmds...)
}

func (d *Document) newBlock(block core.Block) Model {
	options := []Option{
		WithNotifier(d.notifier),
		WithTheme(d.theme),
		WithKeyMap(d.keyMap),
		WithWidth(d.width),
	}

	return New(block, append(options, d.blockOptions...)...)
}

func (d *Document) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.viewport.Height = max(1, height-1)
	d.toast.SetWidth(width)

	for i := range d.items {
		if d.items[i].isBlock {
			d.items[i].block.SetWidth(width)
		}
	}

	d.refresh()
}

// Blocks returns the current block instances in document order.
func (d Document) Blocks() []Model {
	var blocks []Model
	for _, item := range d.items {
		if item.isBlock {
			blocks = append(blocks, item.block)
		}
	}
	return blocks
}

// Focused returns the focused block, if any.
func (d Document) Focused() (Model, bool) {
	if d.focus < 0 {
		return Model{}, false
	}
	return d.items[d.focus].block, true
}

// Toast returns the notification line.
func (d Document) Toast() Toast {
	return d.toast
}

func (d Document) Init() tea.Cmd {
	cmds := []tea.Cmd{d.toast.Init()}
	for _, item := range d.items {
		if item.isBlock {
			cmds = append(cmds, item.block.Init())
		}
	}
	return tea.Batch(cmds...)
}

func (d Document) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keyMap.NextBlock):
			d.focusBlock(1)
		case key.Matches(msg, d.keyMap.PreviousBlock):
			d.focusBlock(-1)
		case key.Matches(msg, d.keyMap.Up):
			d.scroll(-1)
		case key.Matches(msg, d.keyMap.Down):
			d.scroll(1)
		case key.Matches(msg, d.keyMap.PageUp):
			d.scroll(-d.viewport.Height)
		case key.Matches(msg, d.keyMap.PageDown):
			d.scroll(d.viewport.Height)
		default:
			if d.focus >= 0 {
				cmds = append(cmds, d.updateBlock(d.focus, msg))
			}
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		d.viewport, cmd = d.viewport.Update(msg)
		cmds = append(cmds, cmd)

	default:
		for i := range d.items {
			if d.items[i].isBlock {
				cmds = append(cmds, d.updateBlock(i, msg))
			}
		}

		var cmd tea.Cmd
		d.toast, cmd = d.toast.Update(msg)
		cmds = append(cmds, cmd)
	}

	d.refresh()

	return d, tea.Batch(cmds...)
}

func (d *Document) updateBlock(i int, msg tea.Msg) tea.Cmd {
	updated, cmd := d.items[i].block.Update(msg)
	d.items[i].block = updated.(Model)
	return cmd
}

func (d Document) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, d.viewport.View(), d.toast.View())
}

// Close releases the timers of every block and of the notification line.
func (d *Document) Close() {
	for i := range d.items {
		if d.items[i].isBlock {
			d.items[i].block.Close()
		}
	}
	d.toast.Close()
}

// focusBlock moves focus to the next block in direction dir, wrapping around.
func (d *Document) focusBlock(dir int) {
	n := len(d.items)
	if n == 0 {
		return
	}

	start := d.focus
	if start < 0 && dir < 0 {
		start = n
	}

	for step := 1; step <= n; step++ {
		i := ((start+dir*step)%n + n) % n
		if d.items[i].isBlock {
			d.setFocus(i)
			return
		}
	}
}

func (d *Document) focusKey(blockKey string) {
	for i, item := range d.items {
		if item.isBlock && item.block.Key() == blockKey {
			d.setFocus(i)
			return
		}
	}
}

func (d *Document) setFocus(i int) {
	if d.focus >= 0 {
		d.items[d.focus].block.Blur()
	}

	d.focus = i
	d.items[i].block.Focus()

	d.refresh()
	d.scrollToFocus()
}

func (d *Document) scroll(delta int) {
	d.viewport.SetYOffset(d.viewport.YOffset + delta)
}

func (d *Document) scrollToFocus() {
	if d.focus < 0 || d.focus >= len(d.offsets) {
		return
	}

	top := d.offsets[d.focus]
	bottom := d.viewport.TotalLineCount()
	if d.focus+1 < len(d.offsets) {
		bottom = d.offsets[d.focus+1]
	}

	if top < d.viewport.YOffset || bottom > d.viewport.YOffset+d.viewport.Height {
		d.viewport.SetYOffset(top)
	}
}

// refresh re-renders every item into the viewport.
func (d *Document) refresh() {
	views := make([]string, 0, len(d.items))
	d.offsets = make([]int, 0, len(d.items))

	row := 0
	for _, item := range d.items {
		var view string
		if item.isBlock {
			view = item.block.View()
		} else {
			view = d.theme.ProseStyle.Width(max(1, d.width)).Render(item.prose)
		}

		d.offsets = append(d.offsets, row)
		row += lipgloss.Height(view)
		views = append(views, view)
	}

	d.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, views...))
}
