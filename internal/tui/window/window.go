package window

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"kubedash/internal/ansi"
	"kubedash/internal/tui/design"
	"kubedash/internal/tui/layout"
	"kubedash/internal/tui/render"
	"kubedash/internal/tui/widget"
)

const (
	popupWidthPercent  = 80
	popupHeightPercent = 80
	tabSeparator       = " │ "
)

// Context is the selection shown in the status line.
type Context struct {
	Cluster    string
	Namespaces []string
}

// resettable is implemented by popups that clear their filter on open.
type resettable interface {
	Reset()
}

// Window owns the tabs, the popups and the selection context. At most one
// popup is open; while it is, every key and mouse event goes to it.
type Window struct {
	tabs   []*Tab
	active int
	popups []widget.Widget
	popup  widget.Widget

	width, height int
	theme         *design.Theme
	ctx           Context
	status        string
	hint          string
}

// New returns a window over tabs. Popups are registered up front and
// opened by id.
func New(tabs []*Tab, popups []widget.Widget, theme *design.Theme) *Window {
	if theme == nil {
		th := design.DefaultTheme()
		theme = &th
	}
	return &Window{tabs: tabs, popups: popups, theme: theme}
}

// Resize lays out every tab and popup for a terminal of the given size.
func (w *Window) Resize(width, height int) {
	w.width, w.height = max(width, 0), max(height, 0)
	content := w.contentArea()
	for _, t := range w.tabs {
		t.SetArea(content)
	}
	popupArea := w.popupArea()
	for _, p := range w.popups {
		p.SetArea(popupArea)
	}
}

// Size returns the terminal size last passed to Resize.
func (w *Window) Size() (int, int) { return w.width, w.height }

// contentArea is the screen minus the tab bar and the status line.
func (w *Window) contentArea() layout.Rect {
	return layout.Rect{X: 0, Y: 1, Width: w.width, Height: max(w.height-2, 0)}
}

func (w *Window) popupArea() layout.Rect {
	return layout.Rect{Width: w.width, Height: w.height}.Centered(popupWidthPercent, popupHeightPercent)
}

// Tabs returns the tabs.
func (w *Window) Tabs() []*Tab { return w.tabs }

// ActiveTab returns the visible tab, or nil when there are none.
func (w *Window) ActiveTab() *Tab {
	if len(w.tabs) == 0 {
		return nil
	}
	return w.tabs[w.active]
}

// ActiveTabIndex returns the index of the visible tab.
func (w *Window) ActiveTabIndex() int { return w.active }

// SelectTab makes tab i visible. It reports whether i is valid.
func (w *Window) SelectTab(i int) bool {
	if i < 0 || i >= len(w.tabs) {
		return false
	}
	w.active = i
	return true
}

// NextTab switches to the next tab, wrapping.
func (w *Window) NextTab() {
	if len(w.tabs) > 0 {
		w.active = (w.active + 1) % len(w.tabs)
	}
}

// PrevTab switches to the previous tab, wrapping.
func (w *Window) PrevTab() {
	if len(w.tabs) > 0 {
		w.active = (w.active + len(w.tabs) - 1) % len(w.tabs)
	}
}

// OpenPopup opens the popup with id, replacing any open popup.
func (w *Window) OpenPopup(id widget.ID) bool {
	for _, p := range w.popups {
		if p.ID() == id {
			if r, ok := p.(resettable); ok {
				r.Reset()
			}
			w.popup = p
			return true
		}
	}
	return false
}

// ClosePopup closes the open popup, restoring routing to the active tab.
func (w *Window) ClosePopup() {
	w.popup = nil
}

// Popup returns the open popup.
func (w *Window) Popup() (widget.Widget, bool) {
	return w.popup, w.popup != nil
}

// Widget looks up a widget by id in every tab and popup.
func (w *Window) Widget(id widget.ID) (widget.Widget, bool) {
	for _, t := range w.tabs {
		if wd, ok := t.Widget(id); ok {
			return wd, true
		}
	}
	for _, p := range w.popups {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// Focus shows the tab holding id and focuses the widget.
func (w *Window) Focus(id widget.ID) bool {
	for i, t := range w.tabs {
		if t.ActivateByID(id) {
			w.active = i
			return true
		}
	}
	return false
}

// ToggleDirection flips the split direction of every tab.
func (w *Window) ToggleDirection() {
	for _, t := range w.tabs {
		t.ToggleDirection()
	}
}

// SetContext updates the selection shown in the status line.
func (w *Window) SetContext(ctx Context) { w.ctx = ctx }

// Context returns the current selection.
func (w *Window) Context() Context { return w.ctx }

// SetStatus sets a transient status message.
func (w *Window) SetStatus(s string) { w.status = s }

// SetHint sets the key hint shown at the right of the status line.
func (w *Window) SetHint(s string) { w.hint = s }

// HandleKey routes a key to the open popup or the focused widget.
func (w *Window) HandleKey(msg tea.KeyMsg) widget.Result {
	if w.popup != nil {
		return w.popup.HandleKey(msg)
	}
	if t := w.ActiveTab(); t != nil {
		return t.HandleKey(msg)
	}
	return widget.Ignored()
}

// HandleMouse routes a mouse event to the open popup, the tab bar or the
// active tab.
func (w *Window) HandleMouse(msg tea.MouseMsg) widget.Result {
	if w.popup != nil {
		return w.popup.HandleMouse(msg)
	}
	if msg.Y == 0 {
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return widget.Ignored()
		}
		for i, r := range w.tabRanges() {
			if msg.X >= r[0] && msg.X < r[1] {
				w.active = i
				return widget.Consumed()
			}
		}
		return widget.Ignored()
	}
	if t := w.ActiveTab(); t != nil {
		return t.HandleMouse(msg)
	}
	return widget.Ignored()
}

func tabLabel(i int, t *Tab) string {
	return fmt.Sprintf("%d:%s", i+1, t.Title())
}

// tabRanges returns the [start, end) columns of each tab label.
func (w *Window) tabRanges() [][2]int {
	ranges := make([][2]int, len(w.tabs))
	x := 1
	sep := xansi.StringWidth(tabSeparator)
	for i, t := range w.tabs {
		width := xansi.StringWidth(tabLabel(i, t))
		ranges[i] = [2]int{x, x + width}
		x += width + sep
	}
	return ranges
}

// Render draws the frame: tab bar, active tab, popup and status line.
func (w *Window) Render() *render.Canvas {
	c := render.NewCanvas(w.width, w.height)
	if w.width == 0 || w.height == 0 {
		return c
	}
	th := w.theme

	ranges := w.tabRanges()
	for i, t := range w.tabs {
		st := th.TabInactive
		if i == w.active {
			st = th.TabActive
		}
		x := ranges[i][0]
		if i > 0 {
			c.Print(x-xansi.StringWidth(tabSeparator), 0, tabSeparator, th.Muted, w.width)
		}
		c.Print(x, 0, tabLabel(i, t), st, w.width-x)
	}

	if t := w.ActiveTab(); t != nil {
		t.Render(c, th, w.popup == nil)
	}
	if w.popup != nil {
		w.popup.Render(c, widget.RenderState{Active: true, Popup: true, Theme: th})
	}

	w.renderStatus(c)
	return c
}

func (w *Window) renderStatus(c *render.Canvas) {
	y := w.height - 1
	if y < 1 {
		return
	}
	ns := strings.Join(w.ctx.Namespaces, ",")
	if ns == "" {
		ns = "-"
	}
	left := fmt.Sprintf(" ctx: %s  ns: %s", orDash(w.ctx.Cluster), ns)
	if w.status != "" {
		left += "  " + w.status
	}
	c.Print(0, y, left, w.theme.Status, w.width)

	if w.hint != "" {
		hint := xansi.Truncate(w.hint, w.width/2, "…")
		hw := xansi.StringWidth(hint)
		c.Print(w.width-hw-1, y, hint, w.theme.Status.Add(ansi.Dim), hw)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// View renders the frame as terminal output.
func (w *Window) View() string {
	return w.Render().String()
}
