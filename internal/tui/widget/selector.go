package widget

import (
	"slices"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"kubedash/internal/ansi"
	"kubedash/internal/tui/design"
	"kubedash/internal/tui/layout"
	"kubedash/internal/tui/render"
)

// selector is a fuzzy-filtered item list shared by the select widgets. The
// first inner row holds the filter input.
type selector struct {
	items   []string
	matches []fuzzy.Match
	cursor  int
	offset  int
	input   textinput.Model
}

func newSelector() selector {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "filter"
	in.Cursor.SetMode(cursor.CursorStatic)
	in.Focus()
	return selector{input: in}
}

func (s *selector) setItems(items []string) {
	s.items = slices.Clone(items)
	s.refilter()
}

func (s *selector) refilter() {
	q := s.input.Value()
	if q == "" {
		s.matches = make([]fuzzy.Match, len(s.items))
		for i, it := range s.items {
			s.matches[i] = fuzzy.Match{Str: it, Index: i}
		}
	} else {
		s.matches = fuzzy.Find(q, s.items)
	}
	s.cursor = clamp(s.cursor, 0, max(len(s.matches)-1, 0))
	s.offset = min(s.offset, s.cursor)
}

func (s *selector) reset() {
	s.input.Reset()
	s.cursor, s.offset = 0, 0
	s.refilter()
}

func (s *selector) current() (fuzzy.Match, bool) {
	if s.cursor < 0 || s.cursor >= len(s.matches) {
		return fuzzy.Match{}, false
	}
	return s.matches[s.cursor], true
}

func (s *selector) move(delta int, viewHeight int) {
	if len(s.matches) == 0 {
		return
	}
	s.cursor = clamp(s.cursor+delta, 0, len(s.matches)-1)
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if viewHeight > 0 && s.cursor >= s.offset+viewHeight {
		s.offset = s.cursor - viewHeight + 1
	}
}

// listArea is the part of the inner area below the filter input.
func listArea(area layout.Rect) layout.Rect {
	inner := area.Inner(1)
	inner.Y++
	inner.Height = max(inner.Height-1, 0)
	return inner
}

// handleKey moves the cursor or edits the filter. It reports whether the
// key was consumed and returns the input's command.
func (s *selector) handleKey(msg tea.KeyMsg, viewHeight int) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.FilterUp):
		s.move(-1, viewHeight)
		return true, nil
	case key.Matches(msg, Keys.FilterDown):
		s.move(1, viewHeight)
		return true, nil
	case key.Matches(msg, Keys.PageUp):
		s.move(-max(viewHeight, 1), viewHeight)
		return true, nil
	case key.Matches(msg, Keys.PageDown):
		s.move(max(viewHeight, 1), viewHeight)
		return true, nil
	}
	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace &&
		msg.Type != tea.KeyBackspace && msg.Type != tea.KeyCtrlW &&
		msg.Type != tea.KeyLeft && msg.Type != tea.KeyRight {
		return false, nil
	}
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.cursor, s.offset = 0, 0
		s.refilter()
	}
	return true, cmd
}

// hit maps a mouse position to a match index.
func (s *selector) hit(area layout.Rect, msg tea.MouseMsg) (int, bool) {
	list := listArea(area)
	if !list.Contains(msg.X, msg.Y) {
		return 0, false
	}
	i := s.offset + msg.Y - list.Y
	return i, i < len(s.matches)
}

// render draws the filter and the visible matches. decorate returns a
// prefix and its style for a match.
func (s *selector) render(c *render.Canvas, area layout.Rect, th *design.Theme, active bool, decorate func(fuzzy.Match) (string, ansi.Style)) {
	inner := area.Inner(1)
	if inner.IsEmpty() {
		return
	}
	c.PrintANSI(inner.X, inner.Y, s.input.View(), inner.Width)

	list := listArea(area)
	for row := 0; row < list.Height; row++ {
		i := s.offset + row
		if i >= len(s.matches) {
			break
		}
		m := s.matches[i]
		y := list.Y + row
		x := list.X
		if decorate != nil {
			prefix, st := decorate(m)
			x += c.Print(x, y, prefix, st, list.Right()-x)
		}
		rowStyle := ansi.Style{}
		if i == s.cursor {
			rowStyle = th.SelectedInactive
			if active {
				rowStyle = th.Selected
			}
			c.Fill(layout.Rect{X: x, Y: y, Width: list.Right() - x, Height: 1}, rowStyle)
		}
		matched := make(map[int]bool, len(m.MatchedIndexes))
		for _, idx := range m.MatchedIndexes {
			matched[idx] = true
		}
		for bi, r := range m.Str {
			if x >= list.Right() {
				break
			}
			st := rowStyle
			if matched[bi] {
				st = rowStyle.WithFg(th.Match.Fg).Add(th.Match.Modifiers)
			}
			x += c.Set(x, y, r, st)
		}
	}
}
