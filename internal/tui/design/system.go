package design

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"kubedash/internal/ansi"
	"kubedash/internal/config"
)

// Color Palette - Semantic colors with light/dark mode support, used by
// components rendered through lipgloss.
var (
	ColorPrimary = lipgloss.AdaptiveColor{
		Light: "#5A56E0",
		Dark:  "#7571F9",
	}
	ColorError = lipgloss.AdaptiveColor{
		Light: "#DC2626",
		Dark:  "#EF4444",
	}
	ColorText = lipgloss.AdaptiveColor{
		Light: "#111827",
		Dark:  "#F9FAFB",
	}
	ColorTextSecondary = lipgloss.AdaptiveColor{
		Light: "#6B7280",
		Dark:  "#9CA3AF",
	}
	ColorTextMuted = lipgloss.AdaptiveColor{
		Light: "#9CA3AF",
		Dark:  "#6B7280",
	}
)

// HelpStyles styles the bubbles help view shown in the help popup.
func HelpStyles() help.Styles {
	return help.Styles{
		ShortKey:       lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
		ShortDesc:      lipgloss.NewStyle().Foreground(ColorTextSecondary),
		ShortSeparator: lipgloss.NewStyle().Foreground(ColorTextMuted),
		Ellipsis:       lipgloss.NewStyle().Foreground(ColorTextMuted),
		FullKey:        lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
		FullDesc:       lipgloss.NewStyle().Foreground(ColorText),
		FullSeparator:  lipgloss.NewStyle().Foreground(ColorTextMuted),
	}
}

// Theme holds the cell styles widgets paint with.
type Theme struct {
	BorderShape lipgloss.Border
	PopupShape  lipgloss.Border

	Border       ansi.Style
	BorderActive ansi.Style
	BorderHover  ansi.Style
	Title        ansi.Style
	TitleActive  ansi.Style

	Header           ansi.Style
	Selected         ansi.Style
	SelectedInactive ansi.Style
	Match            ansi.Style
	Marker           ansi.Style

	TabActive   ansi.Style
	TabInactive ansi.Style
	Status      ansi.Style
	Error       ansi.Style
	Muted       ansi.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		BorderShape: lipgloss.RoundedBorder(),
		PopupShape:  lipgloss.ThickBorder(),

		Border:       ansi.Style{Fg: ansi.Indexed(240)},
		BorderActive: ansi.Style{Fg: ansi.RGB(0x75, 0x71, 0xF9)},
		BorderHover:  ansi.Style{Fg: ansi.Indexed(250)},
		Title:        ansi.Style{}.Add(ansi.Dim),
		TitleActive:  ansi.Style{}.Add(ansi.Bold),

		Header:           ansi.Style{Fg: ansi.BrightBlack}.Add(ansi.Bold),
		Selected:         ansi.Style{}.Add(ansi.Reverse),
		SelectedInactive: ansi.Style{}.Add(ansi.Underline),
		Match:            ansi.Style{Fg: ansi.Cyan}.Add(ansi.Bold),
		Marker:           ansi.Style{Fg: ansi.Green},

		TabActive:   ansi.Style{Fg: ansi.RGB(0x75, 0x71, 0xF9)}.Add(ansi.Bold | ansi.Underline),
		TabInactive: ansi.Style{Fg: ansi.BrightBlack},
		Status:      ansi.Style{Fg: ansi.BrightBlack},
		Error:       ansi.Style{Fg: ansi.Red},
		Muted:       ansi.Style{}.Add(ansi.Dim),
	}
}

// FromConfig applies configured color overrides to the default theme.
func FromConfig(cfg config.ThemeConfig) (Theme, error) {
	t := DefaultTheme()
	overrides := []struct {
		name  string
		value string
		style *ansi.Style
	}{
		{"border", cfg.Border, &t.Border},
		{"borderActive", cfg.BorderActive, &t.BorderActive},
		{"borderHover", cfg.BorderHover, &t.BorderHover},
		{"header", cfg.Header, &t.Header},
		{"tabActive", cfg.TabActive, &t.TabActive},
		{"status", cfg.Status, &t.Status},
		{"error", cfg.Error, &t.Error},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		c, err := ParseColor(o.value)
		if err != nil {
			return Theme{}, fmt.Errorf("theme.%s: %w", o.name, err)
		}
		*o.style = o.style.WithFg(c)
	}
	if cfg.Selected != "" {
		c, err := ParseColor(cfg.Selected)
		if err != nil {
			return Theme{}, fmt.Errorf("theme.selected: %w", err)
		}
		// A colored selection replaces reverse video with a background.
		t.Selected = ansi.Style{Bg: c}.Add(ansi.Bold)
	}
	return t, nil
}

var colorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// ParseColor accepts "#rrggbb", a palette index "0".."255", or a color name
// optionally prefixed with "bright".
func ParseColor(s string) (ansi.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return ansi.Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return ansi.Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		return ansi.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		return ansi.Indexed(uint8(n)), nil
	}
	base, offset := s, 0
	if rest, ok := strings.CutPrefix(s, "bright"); ok {
		base, offset = rest, 8
	}
	for i, name := range colorNames {
		if base == name {
			return ansi.Indexed(uint8(i + offset)), nil
		}
	}
	return ansi.Color{}, fmt.Errorf("unknown color %q", s)
}
