package widget

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kubedash/internal/tui/layout"
	"kubedash/internal/tui/render"
)

func podRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("pod-%d", i), "Running"}
	}
	return rows
}

func newPodList(rows int) *List {
	l := NewList(PodList, "Pods")
	// Inner height 4, one header row: three visible rows.
	l.SetArea(layout.Rect{Width: 30, Height: 6})
	l.SetTable([]string{"NAME", "STATUS"}, podRows(rows))
	return l
}

func TestList_KeyNavigation(t *testing.T) {
	l := newPodList(10)

	for range 5 {
		assert.Equal(t, Nop, l.HandleKey(runes("j")).Kind)
	}
	assert.Equal(t, 5, l.SelectedIndex())
	assert.Equal(t, 3, l.Offset())

	l.HandleKey(runes("G"))
	assert.Equal(t, 9, l.SelectedIndex())
	assert.Equal(t, 7, l.Offset())

	l.HandleKey(runes("k"))
	assert.Equal(t, 8, l.SelectedIndex())
	assert.Equal(t, 7, l.Offset())

	l.HandleKey(runes("g"))
	assert.Equal(t, 0, l.SelectedIndex())
	assert.Equal(t, 0, l.Offset())

	l.HandleKey(keyOf(tea.KeyPgDown))
	assert.Equal(t, 3, l.SelectedIndex())

	l.HandleKey(runes("k"))
	l.HandleKey(runes("k"))
	l.HandleKey(runes("k"))
	l.HandleKey(runes("k"))
	assert.Equal(t, 0, l.SelectedIndex(), "selection is clamped at the top")

	assert.True(t, l.HandleKey(runes("x")).IsIgnored())
}

func TestList_Enter(t *testing.T) {
	l := newPodList(3)
	l.HandleKey(runes("j"))

	msg := message(t, l.HandleKey(keyOf(tea.KeyEnter)))
	assert.Equal(t, SelectedMsg{ID: PodList, Index: 1, Value: "pod-1", Row: []string{"pod-1", "Running"}}, msg)

	empty := NewList(ConfigList, "Config")
	assert.Equal(t, Nop, empty.HandleKey(keyOf(tea.KeyEnter)).Kind)
}

func TestList_SetTableKeepsSelection(t *testing.T) {
	l := newPodList(5)
	l.Select(3)

	rows := podRows(5)[2:]
	l.SetTable([]string{"NAME", "STATUS"}, rows)
	row, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "pod-3", row[0])
	assert.Equal(t, 1, l.SelectedIndex())

	l.SetTable(nil, podRows(1))
	assert.Equal(t, 0, l.SelectedIndex())

	l.Clear()
	_, ok = l.Selected()
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len())
}

func TestList_Mouse(t *testing.T) {
	l := newPodList(10)

	// Border row 0, header row 1, first item row 2.
	msg := message(t, l.HandleMouse(press(5, 4)))
	assert.Equal(t, 2, msg.(SelectedMsg).Index)

	assert.Equal(t, Nop, l.HandleMouse(wheel(5, 4, true)).Kind)
	assert.Equal(t, 3, l.SelectedIndex())

	assert.Equal(t, Nop, l.HandleMouse(press(5, 1)).Kind, "header click selects nothing")
	assert.Equal(t, 3, l.SelectedIndex())

	assert.True(t, l.HandleMouse(press(40, 2)).IsIgnored())
}

func TestList_Render(t *testing.T) {
	l := NewList(PodList, "Pods")
	l.SetArea(layout.Rect{Width: 30, Height: 5})
	l.SetTable([]string{"NAME", "STATUS"}, [][]string{{"pod-a", "Running"}, {"pod-bb", "Pending"}})

	c := render.NewCanvas(30, 5)
	l.Render(c, RenderState{Active: true})
	plain := c.Plain()

	assert.Contains(t, plain, "Pods")
	assert.Contains(t, plain, "NAME     STATUS")
	assert.Contains(t, plain, "pod-a    Running")
	assert.Contains(t, plain, "pod-bb   Pending")
	assert.True(t, c.At(1, 2).Style == defaultTheme.Selected)
}
