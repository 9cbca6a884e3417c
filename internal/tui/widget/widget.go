package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"kubedash/internal/ansi"
	"kubedash/internal/tui/design"
	"kubedash/internal/tui/layout"
	"kubedash/internal/tui/render"
)

// Widget is implemented by every pane and popup body.
type Widget interface {
	ID() ID
	Title() string
	// Activatable reports whether the widget can take keyboard focus.
	Activatable() bool
	Area() layout.Rect
	SetArea(layout.Rect)
	Render(c *render.Canvas, st RenderState)
	HandleKey(msg tea.KeyMsg) Result
	HandleMouse(msg tea.MouseMsg) Result
	SetItems(items []string)
	Clear()
}

// ResultKind classifies how an event was handled.
type ResultKind int

const (
	// Ignore means the event was not consumed; the caller may handle it.
	Ignore ResultKind = iota
	// Nop means the event was consumed without side effects.
	Nop
	// Command means the event was consumed and produced a command.
	Command
)

// Result is returned by event handlers.
type Result struct {
	Kind ResultKind
	Cmd  tea.Cmd
}

// Ignored returns a Result for an unhandled event.
func Ignored() Result { return Result{Kind: Ignore} }

// Consumed returns a Result for a handled event.
func Consumed() Result { return Result{Kind: Nop} }

// Emit returns a Result that delivers msg to the program.
func Emit(msg tea.Msg) Result {
	return Result{Kind: Command, Cmd: func() tea.Msg { return msg }}
}

// Run returns a Result carrying cmd.
func Run(cmd tea.Cmd) Result {
	if cmd == nil {
		return Consumed()
	}
	return Result{Kind: Command, Cmd: cmd}
}

// IsIgnored reports whether the event was left unhandled.
func (r Result) IsIgnored() bool { return r.Kind == Ignore }

// SelectedMsg is emitted when a row of a list or single select is chosen.
type SelectedMsg struct {
	ID    ID
	Index int
	Value string
	Row   []string
}

// MultiSelectedMsg is emitted when the selection of a multiple select
// changes. Values are in item order.
type MultiSelectedMsg struct {
	ID     ID
	Values []string
}

// YankedMsg reports the outcome of copying a text widget to the clipboard.
type YankedMsg struct {
	ID    ID
	Lines int
	Err   error
}

// RenderState carries per-frame focus state.
type RenderState struct {
	Active  bool
	Hovered bool
	Popup   bool
	Theme   *design.Theme
}

var defaultTheme = design.DefaultTheme()

func (st RenderState) theme() *design.Theme {
	if st.Theme == nil {
		return &defaultTheme
	}
	return st.Theme
}

type base struct {
	id    ID
	title string
	area  layout.Rect
}

func (b *base) ID() ID                   { return b.id }
func (b *base) Title() string            { return b.title }
func (b *base) Area() layout.Rect        { return b.area }
func (b *base) SetArea(area layout.Rect) { b.area = area }

// SetTitle replaces the title.
func (b *base) SetTitle(title string) { b.title = title }

// frame clears the widget area, draws its border and returns the inner area.
func (b *base) frame(c *render.Canvas, st RenderState, title string) layout.Rect {
	th := st.theme()
	border, titleStyle := th.Border, th.Title
	switch {
	case st.Active:
		border, titleStyle = th.BorderActive, th.TitleActive
	case st.Hovered:
		border = th.BorderHover
	}
	shape := th.BorderShape
	if st.Popup {
		shape = th.PopupShape
	}
	c.Fill(b.area, ansi.Style{})
	c.Box(b.area, shape, border, title, titleStyle)
	return b.area.Inner(1)
}

func isWheel(msg tea.MouseMsg) (delta int, ok bool) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return -1, true
	case tea.MouseButtonWheelDown:
		return 1, true
	}
	return 0, false
}

func isLeftPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}
