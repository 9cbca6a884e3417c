package window

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"kubedash/internal/tui/design"
	"kubedash/internal/tui/layout"
	"kubedash/internal/tui/render"
	"kubedash/internal/tui/widget"
)

// Tab is a set of widgets laid out by a layout tree. Focus moves among
// the activatable widgets only.
type Tab struct {
	title       string
	widgets     []widget.Widget
	tree        *layout.Tree
	activatable []int // indexes into widgets
	active      int   // index into activatable
	hover       int   // index into widgets, -1 for none
	area        layout.Rect
}

// NewTab builds a tab. Every layout leaf must reference one of widgets.
func NewTab(title string, describe layout.Describe, dir layout.Direction, widgets ...widget.Widget) (*Tab, error) {
	tree, err := layout.New(describe, dir, len(widgets))
	if err != nil {
		return nil, fmt.Errorf("tab %q: %w", title, err)
	}
	t := &Tab{title: title, widgets: widgets, tree: tree, hover: -1}
	for i, w := range widgets {
		if w.Activatable() {
			t.activatable = append(t.activatable, i)
		}
	}
	return t, nil
}

// Title returns the tab label.
func (t *Tab) Title() string { return t.title }

// Widgets returns the tab's widgets in slot order.
func (t *Tab) Widgets() []widget.Widget { return t.widgets }

// Direction returns the root split direction.
func (t *Tab) Direction() layout.Direction { return t.tree.Direction() }

// Area returns the area last assigned to the tab.
func (t *Tab) Area() layout.Rect { return t.area }

// SetArea lays out the widgets inside area.
func (t *Tab) SetArea(area layout.Rect) {
	t.area = area
	layout.AssignAll(t.tree, area, t.widgets)
}

// ToggleDirection flips the split direction and re-lays out the widgets.
func (t *Tab) ToggleDirection() {
	layout.ToggleAll(t.tree, t.area, t.widgets)
}

// activeIndex returns the widgets index of the focused widget, or -1.
func (t *Tab) activeIndex() int {
	if len(t.activatable) == 0 {
		return -1
	}
	return t.activatable[t.active]
}

// ActiveWidget returns the focused widget, or nil when nothing can take
// focus.
func (t *Tab) ActiveWidget() widget.Widget {
	if i := t.activeIndex(); i >= 0 {
		return t.widgets[i]
	}
	return nil
}

// HoveredWidget returns the widget under the pointer, if any.
func (t *Tab) HoveredWidget() (widget.Widget, bool) {
	if t.hover < 0 {
		return nil, false
	}
	return t.widgets[t.hover], true
}

// ActivateNext moves focus to the next activatable widget, wrapping.
func (t *Tab) ActivateNext() {
	if len(t.activatable) == 0 {
		return
	}
	t.active = (t.active + 1) % len(t.activatable)
	t.hover = -1
}

// ActivatePrev moves focus to the previous activatable widget, wrapping.
func (t *Tab) ActivatePrev() {
	if len(t.activatable) == 0 {
		return
	}
	t.active = (t.active + len(t.activatable) - 1) % len(t.activatable)
	t.hover = -1
}

// ActivateByID focuses the widget with id. It reports whether the widget
// was found among the activatable widgets.
func (t *Tab) ActivateByID(id widget.ID) bool {
	for pos, i := range t.activatable {
		if t.widgets[i].ID() == id {
			t.active = pos
			t.hover = -1
			return true
		}
	}
	return false
}

// Widget looks up a widget by id.
func (t *Tab) Widget(id widget.ID) (widget.Widget, bool) {
	for _, w := range t.widgets {
		if w.ID() == id {
			return w, true
		}
	}
	return nil, false
}

func (t *Tab) hitTest(x, y int) int {
	for i, w := range t.widgets {
		if w.Area().Contains(x, y) {
			return i
		}
	}
	return -1
}

// HandleKey routes a key to the focused widget.
func (t *Tab) HandleKey(msg tea.KeyMsg) widget.Result {
	w := t.ActiveWidget()
	if w == nil {
		return widget.Ignored()
	}
	return w.HandleKey(msg)
}

// HandleMouse hit-tests the pointer against the widgets. A left press on
// another activatable widget moves focus to it and motion updates the
// hover; the event is then forwarded to the focused widget. Events that
// hit nothing are ignored without changing state.
func (t *Tab) HandleMouse(msg tea.MouseMsg) widget.Result {
	hit := t.hitTest(msg.X, msg.Y)
	if hit < 0 {
		return widget.Ignored()
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if hit != t.activeIndex() {
			for pos, i := range t.activatable {
				if i == hit {
					t.active = pos
					break
				}
			}
		}
	case msg.Action == tea.MouseActionMotion:
		t.hover = hit
	}

	w := t.ActiveWidget()
	if w == nil {
		return widget.Consumed()
	}
	if r := w.HandleMouse(msg); !r.IsIgnored() {
		return r
	}
	return widget.Consumed()
}

// Render paints every widget. focused is false while a popup covers the
// tab, so no widget is drawn as active.
func (t *Tab) Render(c *render.Canvas, theme *design.Theme, focused bool) {
	active := t.activeIndex()
	for i, w := range t.widgets {
		w.Render(c, widget.RenderState{
			Active:  focused && i == active,
			Hovered: i == t.hover && i != active,
			Theme:   theme,
		})
	}
}
