package render

import (
	"github.com/charmbracelet/lipgloss"

	"kubedash/internal/ansi"
)

// Lipgloss converts a resolved SGR style into a lipgloss style.
func Lipgloss(st ansi.Style) lipgloss.Style {
	ls := lipgloss.NewStyle()
	if st.Fg.IsSet() {
		ls = ls.Foreground(lipgloss.Color(st.Fg.String()))
	}
	if st.Bg.IsSet() {
		ls = ls.Background(lipgloss.Color(st.Bg.String()))
	}
	m := st.Modifiers
	if m.Has(ansi.Bold) {
		ls = ls.Bold(true)
	}
	if m.Has(ansi.Dim) {
		ls = ls.Faint(true)
	}
	if m.Has(ansi.Italic) {
		ls = ls.Italic(true)
	}
	if m.Has(ansi.Underline) {
		ls = ls.Underline(true)
	}
	if m.Has(ansi.SlowBlink) || m.Has(ansi.RapidBlink) {
		ls = ls.Blink(true)
	}
	if m.Has(ansi.Reverse) {
		ls = ls.Reverse(true)
	}
	if m.Has(ansi.CrossedOut) {
		ls = ls.Strikethrough(true)
	}
	return ls
}

func renderSegment(s string, st ansi.Style) string {
	if st.IsDefault() {
		return s
	}
	return Lipgloss(st).Render(s)
}
