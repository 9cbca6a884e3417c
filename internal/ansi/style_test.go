package ansi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyle_Apply(t *testing.T) {
	tests := []struct {
		name  string
		start Style
		codes []uint8
		want  Style
	}{
		{"reset", Style{Fg: Red, Modifiers: Bold}, []uint8{0}, Style{}},
		{"fg", Style{}, []uint8{35}, Style{Fg: Magenta}},
		{"fg bright", Style{}, []uint8{95}, Style{Fg: BrightMagenta}},
		{"bg", Style{}, []uint8{45}, Style{Bg: Magenta}},
		{"bg bright", Style{}, []uint8{105}, Style{Bg: BrightMagenta}},
		{"bold", Style{}, []uint8{1}, Style{Modifiers: Bold}},
		{"all modifiers", Style{}, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9},
			Style{Modifiers: Bold | Dim | Italic | Underline | SlowBlink | RapidBlink | Reverse | Hidden | CrossedOut}},
		{"22 clears bold and dim", Style{Modifiers: Bold | Dim | Italic}, []uint8{22}, Style{Modifiers: Italic}},
		{"23 clears italic", Style{Modifiers: Italic | Bold}, []uint8{23}, Style{Modifiers: Bold}},
		{"24 clears underline", Style{Modifiers: Underline}, []uint8{24}, Style{}},
		{"25 clears blinks", Style{Modifiers: SlowBlink | RapidBlink}, []uint8{25}, Style{}},
		{"27 clears reverse", Style{Modifiers: Reverse}, []uint8{27}, Style{}},
		{"29 clears crossed out", Style{Modifiers: CrossedOut}, []uint8{29}, Style{}},
		{"39 clears only fg", Style{Fg: Red, Bg: Blue, Modifiers: Bold}, []uint8{39}, Style{Bg: Blue, Modifiers: Bold}},
		{"49 clears only bg", Style{Fg: Red, Bg: Blue}, []uint8{49}, Style{Fg: Red}},
		{"unknown code is ignored", Style{Fg: Red, Modifiers: Bold}, []uint8{108}, Style{Fg: Red, Modifiers: Bold}},
		{"indexed fg", Style{}, []uint8{38, 5, 100}, Style{Fg: Indexed(100)}},
		{"indexed bg", Style{}, []uint8{48, 5, 100}, Style{Bg: Indexed(100)}},
		{"rgb fg", Style{}, []uint8{38, 2, 10, 11, 12}, Style{Fg: RGB(10, 11, 12)}},
		{"rgb bg", Style{}, []uint8{48, 2, 10, 11, 12}, Style{Bg: RGB(10, 11, 12)}},
		{"rgb missing components", Style{}, []uint8{38, 2, 10}, Style{Fg: RGB(10, 0, 0)}},
		{"indexed missing component", Style{}, []uint8{48, 5}, Style{Bg: Indexed(0)}},
		{"38 without args", Style{Fg: Red}, []uint8{38}, Style{Fg: Red}},
		{"38 with unknown mode", Style{}, []uint8{38, 7, 1}, Style{Modifiers: Bold}},
		{"bold then indexed", Style{}, []uint8{1, 38, 5, 100}, Style{Fg: Indexed(100), Modifiers: Bold}},
		{"indexed then bold", Style{}, []uint8{38, 5, 100, 1}, Style{Fg: Indexed(100), Modifiers: Bold}},
		{"rgb then bold", Style{}, []uint8{38, 2, 10, 10, 10, 1}, Style{Fg: RGB(10, 10, 10), Modifiers: Bold}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.Apply(tt.codes))
		})
	}
}

func TestStyle_ApplyIsAFold(t *testing.T) {
	combined := Resolve([]uint8{1, 38, 5, 100})
	sequential := Resolve([]uint8{1}).Apply([]uint8{38, 5, 100})

	assert.Equal(t, combined, sequential)
	assert.Equal(t, Style{Fg: Indexed(100), Modifiers: Bold}, combined)
	assert.True(t, combined.Apply([]uint8{0}).IsDefault())
}

func TestStyle_ApplyDoesNotMutate(t *testing.T) {
	base := Style{Fg: Red}
	_ = base.Apply([]uint8{1, 44})
	assert.Equal(t, Style{Fg: Red}, base)
}

func TestColor_String(t *testing.T) {
	assert.Equal(t, "", Color{}.String())
	assert.Equal(t, "3", Yellow.String())
	assert.Equal(t, "#0a0b0c", RGB(10, 11, 12).String())
}

func TestModifier_Has(t *testing.T) {
	m := Bold | Italic
	assert.True(t, m.Has(Bold))
	assert.True(t, m.Has(Bold|Italic))
	assert.False(t, m.Has(Underline))
}
