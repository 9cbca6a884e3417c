package widget

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"kubedash/internal/ansi"
	"kubedash/internal/tui/layout"
	"kubedash/internal/tui/render"
	"kubedash/internal/tui/text"
)

// For mocking in tests
var writeClipboard = clipboard.WriteAll

const wheelStep = 3

// Text displays reflowed, styled lines in a scrollable buffer.
type Text struct {
	base
	buf *text.Buffer
}

// TextOption configures a Text widget.
type TextOption func(*Text)

// WithFollow pins the view to new output while it is at the bottom.
func WithFollow(follow bool) TextOption {
	return func(t *Text) { t.buf.SetFollow(follow) }
}

// NewText returns an empty text widget.
func NewText(id ID, title string, opts text.Options, options ...TextOption) *Text {
	t := &Text{
		base: base{id: id, title: title},
		buf:  text.NewBuffer(opts),
	}
	for _, o := range options {
		o(t)
	}
	return t
}

func (t *Text) Activatable() bool { return true }

// Buffer exposes the underlying scroll buffer.
func (t *Text) Buffer() *text.Buffer { return t.buf }

func (t *Text) SetArea(area layout.Rect) {
	t.area = area
	t.buf.Resize(area.Width, area.Height)
}

// SetItems replaces the content.
func (t *Text) SetItems(items []string) {
	t.buf.ReplaceItems(items)
}

// Refresh replaces the content but keeps the scroll position, so periodic
// snapshots do not jump the view. A following view stays at the bottom.
func (t *Text) Refresh(items []string) {
	off, atBottom := t.buf.Offset(), t.buf.IsAtBottom()
	t.buf.ReplaceItems(items)
	if t.buf.Follow() && atBottom {
		t.buf.ScrollBottom()
		return
	}
	t.buf.ScrollTop()
	t.buf.ScrollDown(off)
}

// AppendItems adds items at the end of the content.
func (t *Text) AppendItems(items []string) {
	t.buf.AppendItems(items, t.area.Width, t.area.Height)
}

// Clear removes all content.
func (t *Text) Clear() {
	t.buf.Clear()
}

func (t *Text) page() int {
	return max(t.area.Height-text.BorderOverhead, 1)
}

func (t *Text) HandleKey(msg tea.KeyMsg) Result {
	switch {
	case key.Matches(msg, Keys.Up):
		t.buf.ScrollUp(1)
	case key.Matches(msg, Keys.Down):
		t.buf.ScrollDown(1)
	case key.Matches(msg, Keys.PageUp):
		t.buf.ScrollUp(t.page())
	case key.Matches(msg, Keys.PageDown):
		t.buf.ScrollDown(t.page())
	case key.Matches(msg, Keys.HalfUp):
		t.buf.ScrollUp(max(t.page()/2, 1))
	case key.Matches(msg, Keys.HalfDown):
		t.buf.ScrollDown(max(t.page()/2, 1))
	case key.Matches(msg, Keys.Top):
		t.buf.ScrollTop()
	case key.Matches(msg, Keys.Bottom):
		t.buf.ScrollBottom()
	case key.Matches(msg, Keys.Follow):
		t.buf.SetFollow(!t.buf.Follow())
		if t.buf.Follow() {
			t.buf.ScrollBottom()
		}
	case key.Matches(msg, Keys.Yank):
		return Run(t.yank())
	default:
		return Ignored()
	}
	return Consumed()
}

// yank copies the unstyled content to the system clipboard.
func (t *Text) yank() tea.Cmd {
	items := t.buf.Items()
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = ansi.Strip(it)
	}
	content := strings.Join(lines, "\n")
	id := t.id
	return func() tea.Msg {
		return YankedMsg{ID: id, Lines: len(lines), Err: writeClipboard(content)}
	}
}

func (t *Text) HandleMouse(msg tea.MouseMsg) Result {
	if !t.area.Contains(msg.X, msg.Y) {
		return Ignored()
	}
	if delta, ok := isWheel(msg); ok {
		if delta < 0 {
			t.buf.ScrollUp(wheelStep)
		} else {
			t.buf.ScrollDown(wheelStep)
		}
	}
	return Consumed()
}

func (t *Text) Render(c *render.Canvas, st RenderState) {
	title := t.title
	if t.buf.Follow() {
		title += " [follow]"
	}
	inner := t.frame(c, st, title)
	if inner.IsEmpty() {
		return
	}
	for i, line := range t.buf.Visible(inner.Height) {
		c.PrintLine(inner.X, inner.Y+i, line, inner.Width)
	}
}
