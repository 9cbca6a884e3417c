package text

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"

	"kubedash/internal/ansi"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		width int
		want  []string
	}{
		{
			name:  "empty items keep their rows",
			items: []string{"hoge", "", "hoge"},
			width: 100,
			want:  []string{"hoge", "", "hoge"},
		},
		{
			name:  "short line untouched",
			items: []string{strings.Repeat("a", 31)},
			width: 100,
			want:  []string{strings.Repeat("a", 31)},
		},
		{
			name:  "fifteen chars at ten",
			items: []string{"aaaaaaaaaaaaaaa"},
			width: 10,
			want:  []string{"aaaaaaaaaa", "aaaaa"},
		},
		{
			name:  "three rows",
			items: []string{"aaaaaaaaaaaaaa"},
			width: 5,
			want:  []string{"aaaaa", "aaaaa", "aaaa"},
		},
		{
			name:  "exact multiple",
			items: []string{"aaaaaaaaaa"},
			width: 5,
			want:  []string{"aaaaa", "aaaaa"},
		},
		{
			name:  "embedded newlines",
			items: []string{strings.Repeat("123456789\n", 3)},
			width: 12,
			want:  []string{"123456789", "123456789", "123456789"},
		},
		{
			name:  "crlf",
			items: []string{"ab\r\ncd\r\n"},
			width: 10,
			want:  []string{"ab", "cd"},
		},
		{
			name:  "blank line between segments",
			items: []string{"a\n\nb"},
			width: 10,
			want:  []string{"a", "", "b"},
		},
		{
			name:  "escape sequences do not count",
			items: []string{"\x1b[31maaa\x1b[0mbbb"},
			width: 3,
			want:  []string{"\x1b[31maaa", "\x1b[0mbbb"},
		},
		{
			name:  "trailing escape stays on last row",
			items: []string{"aaaaa\x1b[0m"},
			width: 5,
			want:  []string{"aaaaa\x1b[0m"},
		},
		{
			name:  "multi-byte runes are not split",
			items: []string{"aéüñ"},
			width: 2,
			want:  []string{"aé", "üñ"},
		},
		{
			name:  "wide runes move to the next row",
			items: []string{"a日本"},
			width: 2,
			want:  []string{"a", "日", "本"},
		},
		{
			name:  "zero width is treated as one",
			items: []string{"abc"},
			width: 0,
			want:  []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.items, tt.width))
		})
	}
}

func TestWrap_WidthBound(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	pieces := []string{"a", "b", " ", "é", "日", "\x1b[31m", "\x1b[0m", "\x1b[1;38;5;100m", "\x1b", "\x1b[2K", "\n"}

	for range 300 {
		var sb strings.Builder
		for range rng.IntN(60) {
			sb.WriteString(pieces[rng.IntN(len(pieces))])
		}
		item := sb.String()
		width := rng.IntN(12)

		rows := WrapItem(item, width)
		assert.NotEmpty(t, rows)
		for _, row := range rows {
			visible := utf8.RuneCountInString(ansi.Strip(row))
			assert.LessOrEqual(t, visible, max(width, 1), "row %q of %q exceeds width %d", row, item, width)
			assert.True(t, utf8.ValidString(row))
		}
		// Rows concatenate back to the item minus line breaks.
		assert.Equal(t, strings.ReplaceAll(strings.TrimSuffix(item, "\n"), "\n", ""), strings.Join(rows, ""))
	}
}

func TestStyleLine(t *testing.T) {
	bold := ansi.Style{Modifiers: ansi.Bold}

	tests := []struct {
		name string
		row  string
		want Line
	}{
		{
			name: "plain",
			row:  "> react-scripts start",
			want: Line{{Text: "> react-scripts start"}},
		},
		{
			name: "empty",
			row:  "",
			want: Line{{}},
		},
		{
			name: "prefix then color",
			row:  "hoge\x1b[33mhoge\x1b[39m",
			want: Line{
				{Text: "hoge"},
				{Text: "hoge", Style: ansi.Style{Fg: ansi.Yellow}},
				{Text: ""},
			},
		},
		{
			name: "bold yellow",
			row:  "\x1b[1;33mhoge\x1b[39m",
			want: Line{
				{Text: "hoge", Style: bold.WithFg(ansi.Yellow)},
				{Text: "", Style: bold},
			},
		},
		{
			name: "indexed fg with bold",
			row:  "\x1b[1;38;5;33mhoge\x1b[39m",
			want: Line{
				{Text: "hoge", Style: bold.WithFg(ansi.Indexed(33))},
				{Text: "", Style: bold},
			},
		},
		{
			name: "rgb bg",
			row:  "\x1b[48;2;33;10;10mhoge\x1b[49m",
			want: Line{
				{Text: "hoge", Style: ansi.Style{Bg: ansi.RGB(33, 10, 10)}},
				{Text: ""},
			},
		},
		{
			name: "bg then bold order",
			row:  "\x1b[43;1mhoge\x1b[49m",
			want: Line{
				{Text: "hoge", Style: bold.WithBg(ansi.Yellow)},
				{Text: "", Style: bold},
			},
		},
		{
			name: "webpack output",
			row:  "\x1b[34mℹ\x1b[39m \x1b[90m｢wds｣\x1b[39m: 404s will fallback to /",
			want: Line{
				{Text: "ℹ", Style: ansi.Style{Fg: ansi.Blue}},
				{Text: " "},
				{Text: "｢wds｣", Style: ansi.Style{Fg: ansi.BrightBlack}},
				{Text: ": 404s will fallback to /"},
			},
		},
		{
			name: "non sgr controls are dropped",
			row:  "a\x1b[2Kb\x1bc",
			want: Line{{Text: "abc"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := StyleLine(tt.row, ansi.Style{})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReflow_Rainbow(t *testing.T) {
	var sb strings.Builder
	for i := range 11 {
		sb.WriteString("\x1b[48;2;" + string(rune('0'+i%10)) + ";0;0m ")
	}
	sb.WriteString("\x1b[0m")

	lines := Reflow([]string{sb.String()}, 3, Options{})

	assert.Len(t, lines, 4)
	for _, line := range lines[:3] {
		assert.Len(t, line, 3)
		for _, run := range line {
			assert.Equal(t, " ", run.Text)
			assert.Equal(t, ansi.ColorRGB, run.Style.Bg.Kind)
		}
	}
	last := lines[3]
	assert.Len(t, last, 3)
	assert.Equal(t, Run{Text: ""}, last[2])
}

func TestReflow_StyleAcrossWrap(t *testing.T) {
	red := ansi.Style{Fg: ansi.Red}
	item := "\x1b[31mabcdef\x1b[0m"

	t.Run("reset at wrap boundary", func(t *testing.T) {
		lines := Reflow([]string{item}, 3, Options{})
		assert.Equal(t, []Line{
			{{Text: "abc", Style: red}},
			{{Text: "def"}, {Text: ""}},
		}, lines)
	})

	t.Run("carry across wrap boundary", func(t *testing.T) {
		lines := Reflow([]string{item}, 3, Options{CarryStyle: true})
		assert.Equal(t, []Line{
			{{Text: "abc", Style: red}},
			{{Text: "def", Style: red}, {Text: ""}},
		}, lines)
	})

	t.Run("explicit newline always resets", func(t *testing.T) {
		lines := Reflow([]string{"\x1b[31mab\ncd"}, 10, Options{CarryStyle: true})
		assert.Equal(t, []Line{
			{{Text: "ab", Style: red}},
			{{Text: "cd"}},
		}, lines)
	})
}

func TestReflow_NoWrap(t *testing.T) {
	lines := Reflow([]string{strings.Repeat("x", 50)}, 5, Options{NoWrap: true})
	assert.Len(t, lines, 1)
	assert.Equal(t, strings.Repeat("x", 50), lines[0].Plain())
}
