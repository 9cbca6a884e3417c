package widget

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"kubedash/internal/ansi"
	"kubedash/internal/tui/layout"
	"kubedash/internal/tui/render"
)

const columnGap = "   "

// List is a table of rows with an optional header. Choosing a row emits a
// SelectedMsg whose Value is the row's first column.
type List struct {
	base
	header   []string
	rows     [][]string
	widths   []int
	selected int
	offset   int
}

// NewList returns an empty list.
func NewList(id ID, title string) *List {
	return &List{base: base{id: id, title: title}}
}

func (l *List) Activatable() bool { return true }

// SetItems replaces the rows with single-column items.
func (l *List) SetItems(items []string) {
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{it}
	}
	l.SetTable(nil, rows)
}

// SetTable replaces the header and rows. The selection follows the
// previously selected row's first column when it is still present.
func (l *List) SetTable(header []string, rows [][]string) {
	prev, hadPrev := l.Selected()
	l.header = header
	l.rows = rows
	l.widths = columnWidths(header, rows)

	if hadPrev && len(prev) > 0 {
		for i, r := range rows {
			if len(r) > 0 && r[0] == prev[0] {
				l.selected = i
				l.ensureVisible()
				return
			}
		}
	}
	l.selected = clamp(l.selected, 0, max(len(rows)-1, 0))
	l.ensureVisible()
}

// Clear removes all rows.
func (l *List) Clear() {
	l.header, l.rows, l.widths = nil, nil, nil
	l.selected, l.offset = 0, 0
}

// Len returns the number of rows.
func (l *List) Len() int { return len(l.rows) }

// Header returns the column names.
func (l *List) Header() []string { return l.header }

// Selected returns the selected row.
func (l *List) Selected() ([]string, bool) {
	if l.selected < 0 || l.selected >= len(l.rows) {
		return nil, false
	}
	return l.rows[l.selected], true
}

// SelectedIndex returns the selected row index.
func (l *List) SelectedIndex() int { return l.selected }

// Offset returns the first visible row.
func (l *List) Offset() int { return l.offset }

// Select moves the selection to row i, clamped.
func (l *List) Select(i int) {
	if len(l.rows) == 0 {
		return
	}
	l.selected = clamp(i, 0, len(l.rows)-1)
	l.ensureVisible()
}

func (l *List) headerRows() int {
	if len(l.header) > 0 {
		return 1
	}
	return 0
}

func (l *List) viewHeight() int {
	return max(l.area.Inner(1).Height-l.headerRows(), 0)
}

func (l *List) ensureVisible() {
	vh := l.viewHeight()
	if vh == 0 {
		l.offset = 0
		return
	}
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+vh {
		l.offset = l.selected - vh + 1
	}
	l.offset = clamp(l.offset, 0, max(len(l.rows)-vh, 0))
}

func (l *List) SetArea(area layout.Rect) {
	l.area = area
	l.ensureVisible()
}

func (l *List) selectedMsg() tea.Msg {
	row, _ := l.Selected()
	value := ""
	if len(row) > 0 {
		value = row[0]
	}
	return SelectedMsg{ID: l.id, Index: l.selected, Value: value, Row: row}
}

func (l *List) HandleKey(msg tea.KeyMsg) Result {
	page := max(l.viewHeight(), 1)
	switch {
	case key.Matches(msg, Keys.Up):
		l.Select(l.selected - 1)
	case key.Matches(msg, Keys.Down):
		l.Select(l.selected + 1)
	case key.Matches(msg, Keys.PageUp):
		l.Select(l.selected - page)
	case key.Matches(msg, Keys.PageDown):
		l.Select(l.selected + page)
	case key.Matches(msg, Keys.HalfUp):
		l.Select(l.selected - max(page/2, 1))
	case key.Matches(msg, Keys.HalfDown):
		l.Select(l.selected + max(page/2, 1))
	case key.Matches(msg, Keys.Top):
		l.Select(0)
	case key.Matches(msg, Keys.Bottom):
		l.Select(len(l.rows) - 1)
	case key.Matches(msg, Keys.Select):
		if len(l.rows) == 0 {
			return Consumed()
		}
		return Emit(l.selectedMsg())
	default:
		return Ignored()
	}
	return Consumed()
}

func (l *List) HandleMouse(msg tea.MouseMsg) Result {
	if !l.area.Contains(msg.X, msg.Y) {
		return Ignored()
	}
	if delta, ok := isWheel(msg); ok {
		l.Select(l.selected + delta)
		return Consumed()
	}
	if !isLeftPress(msg) {
		return Consumed()
	}
	inner := l.area.Inner(1)
	row := msg.Y - inner.Y - l.headerRows()
	if !inner.Contains(msg.X, msg.Y) || row < 0 || l.offset+row >= len(l.rows) {
		return Consumed()
	}
	l.Select(l.offset + row)
	return Emit(l.selectedMsg())
}

func (l *List) Render(c *render.Canvas, st RenderState) {
	inner := l.frame(c, st, l.title)
	if inner.IsEmpty() {
		return
	}
	th := st.theme()
	y := inner.Y
	if len(l.header) > 0 {
		c.Print(inner.X, y, l.format(l.header), th.Header, inner.Width)
		y++
	}
	rowStyle := th.SelectedInactive
	if st.Active {
		rowStyle = th.Selected
	}
	for i := l.offset; i < len(l.rows) && y < inner.Bottom(); i++ {
		line := l.format(l.rows[i])
		if i == l.selected {
			line = runewidth.FillRight(runewidth.Truncate(ansi.Strip(line), inner.Width, ""), inner.Width)
			c.Print(inner.X, y, line, rowStyle, inner.Width)
		} else {
			c.PrintANSI(inner.X, y, line, inner.Width)
		}
		y++
	}
}

func (l *List) format(cols []string) string {
	var sb strings.Builder
	for i, col := range cols {
		if i > 0 {
			sb.WriteString(columnGap)
		}
		if i < len(l.widths) && i < len(cols)-1 {
			sb.WriteString(runewidth.FillRight(col, l.widths[i]))
		} else {
			sb.WriteString(col)
		}
	}
	return sb.String()
}

func columnWidths(header []string, rows [][]string) []int {
	var widths []int
	grow := func(cols []string) {
		for i, col := range cols {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(col))
		}
	}
	grow(header)
	for _, r := range rows {
		grow(r)
	}
	return widths
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
