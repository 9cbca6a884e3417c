package widget

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"kubedash/internal/ansi"
	"kubedash/internal/tui/render"
)

// SingleSelect is a filterable list; Enter emits a SelectedMsg. In free
// input mode the items act as a history: Enter picks the highlighted match
// and submits the typed filter only when nothing matches, alt+enter always
// submits the typed filter.
type SingleSelect struct {
	base
	selector
	freeInput bool
}

// NewSingleSelect returns an empty single select.
func NewSingleSelect(id ID, title string) *SingleSelect {
	return &SingleSelect{base: base{id: id, title: title}, selector: newSelector()}
}

func (s *SingleSelect) Activatable() bool { return true }

// SetFreeInput switches free input mode.
func (s *SingleSelect) SetFreeInput(on bool) { s.freeInput = on }

// SetItems replaces the candidates.
func (s *SingleSelect) SetItems(items []string) { s.setItems(items) }

// Items returns the candidates.
func (s *SingleSelect) Items() []string { return s.items }

// Clear removes candidates and filter.
func (s *SingleSelect) Clear() {
	s.items = nil
	s.reset()
}

// Reset clears the filter and moves the cursor to the top.
func (s *SingleSelect) Reset() { s.reset() }

// Filter returns the current filter text.
func (s *SingleSelect) Filter() string { return s.input.Value() }

// Matches returns the candidates passing the filter, best match first.
func (s *SingleSelect) Matches() []string {
	out := make([]string, len(s.matches))
	for i, m := range s.matches {
		out[i] = m.Str
	}
	return out
}

func (s *SingleSelect) choose() Result {
	m, ok := s.current()
	if !ok {
		return s.submitText()
	}
	return Emit(SelectedMsg{ID: s.id, Index: m.Index, Value: m.Str, Row: []string{m.Str}})
}

// submitText emits the typed filter as the value in free input mode.
func (s *SingleSelect) submitText() Result {
	q := s.input.Value()
	if !s.freeInput || q == "" {
		return Consumed()
	}
	return Emit(SelectedMsg{ID: s.id, Index: -1, Value: q, Row: []string{q}})
}

func (s *SingleSelect) HandleKey(msg tea.KeyMsg) Result {
	if key.Matches(msg, Keys.Select) {
		return s.choose()
	}
	if key.Matches(msg, Keys.SubmitText) {
		return s.submitText()
	}
	ok, cmd := s.handleKey(msg, listArea(s.area).Height)
	if !ok {
		return Ignored()
	}
	return Run(cmd)
}

func (s *SingleSelect) HandleMouse(msg tea.MouseMsg) Result {
	if !s.area.Contains(msg.X, msg.Y) {
		return Ignored()
	}
	if delta, ok := isWheel(msg); ok {
		s.move(delta, listArea(s.area).Height)
		return Consumed()
	}
	if i, ok := s.hit(s.area, msg); ok && isLeftPress(msg) {
		s.cursor = i
		return s.choose()
	}
	return Consumed()
}

func (s *SingleSelect) Render(c *render.Canvas, st RenderState) {
	title := fmt.Sprintf("%s (%d/%d)", s.title, len(s.matches), len(s.items))
	s.frame(c, st, title)
	s.render(c, s.area, st.theme(), st.Active, nil)
}

// MultipleSelect is a filterable list of toggles; Enter toggles the item
// under the cursor and emits a MultiSelectedMsg.
type MultipleSelect struct {
	base
	selector
	chosen map[string]bool
}

// NewMultipleSelect returns an empty multiple select.
func NewMultipleSelect(id ID, title string) *MultipleSelect {
	return &MultipleSelect{
		base:     base{id: id, title: title},
		selector: newSelector(),
		chosen:   map[string]bool{},
	}
}

func (m *MultipleSelect) Activatable() bool { return true }

// SetItems replaces the candidates. Chosen values that are no longer
// candidates are dropped.
func (m *MultipleSelect) SetItems(items []string) {
	m.setItems(items)
	present := make(map[string]bool, len(items))
	for _, it := range items {
		present[it] = true
	}
	for v := range m.chosen {
		if !present[v] {
			delete(m.chosen, v)
		}
	}
}

// Clear removes candidates, choices and filter.
func (m *MultipleSelect) Clear() {
	m.items = nil
	m.chosen = map[string]bool{}
	m.reset()
}

// Reset clears the filter and moves the cursor to the top.
func (m *MultipleSelect) Reset() { m.reset() }

// SetSelected replaces the chosen values.
func (m *MultipleSelect) SetSelected(values []string) {
	m.chosen = make(map[string]bool, len(values))
	for _, v := range values {
		m.chosen[v] = true
	}
}

// Selected returns the chosen values in item order.
func (m *MultipleSelect) Selected() []string {
	var out []string
	for _, it := range m.items {
		if m.chosen[it] {
			out = append(out, it)
		}
	}
	return out
}

func (m *MultipleSelect) toggle() Result {
	cur, ok := m.current()
	if !ok {
		return Consumed()
	}
	if m.chosen[cur.Str] {
		delete(m.chosen, cur.Str)
	} else {
		m.chosen[cur.Str] = true
	}
	return Emit(MultiSelectedMsg{ID: m.id, Values: m.Selected()})
}

func (m *MultipleSelect) HandleKey(msg tea.KeyMsg) Result {
	if key.Matches(msg, Keys.Select) {
		return m.toggle()
	}
	ok, cmd := m.handleKey(msg, listArea(m.area).Height)
	if !ok {
		return Ignored()
	}
	return Run(cmd)
}

func (m *MultipleSelect) HandleMouse(msg tea.MouseMsg) Result {
	if !m.area.Contains(msg.X, msg.Y) {
		return Ignored()
	}
	if delta, ok := isWheel(msg); ok {
		m.move(delta, listArea(m.area).Height)
		return Consumed()
	}
	if i, ok := m.hit(m.area, msg); ok && isLeftPress(msg) {
		m.cursor = i
		return m.toggle()
	}
	return Consumed()
}

func (m *MultipleSelect) Render(c *render.Canvas, st RenderState) {
	th := st.theme()
	title := fmt.Sprintf("%s (%d selected)", m.title, len(m.Selected()))
	m.frame(c, st, title)
	m.render(c, m.area, th, st.Active, func(fm fuzzy.Match) (string, ansi.Style) {
		if m.chosen[fm.Str] {
			return "[x] ", th.Marker
		}
		return "[ ] ", th.Muted
	})
}
