package ansi

import "fmt"

// ColorKind distinguishes how a Color is specified.
type ColorKind uint8

const (
	ColorUnset ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is either unset, an index into the 256 color palette or a 24-bit
// RGB triple. The zero value is unset.
type Color struct {
	Kind    ColorKind
	Index   uint8
	R, G, B uint8
}

// Indexed returns a palette color.
func Indexed(n uint8) Color {
	return Color{Kind: ColorIndexed, Index: n}
}

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// Named colors as selected by SGR 30–37 and 90–97.
var (
	Black         = Indexed(0)
	Red           = Indexed(1)
	Green         = Indexed(2)
	Yellow        = Indexed(3)
	Blue          = Indexed(4)
	Magenta       = Indexed(5)
	Cyan          = Indexed(6)
	White         = Indexed(7)
	BrightBlack   = Indexed(8)
	BrightRed     = Indexed(9)
	BrightGreen   = Indexed(10)
	BrightYellow  = Indexed(11)
	BrightBlue    = Indexed(12)
	BrightMagenta = Indexed(13)
	BrightCyan    = Indexed(14)
	BrightWhite   = Indexed(15)
)

// IsSet reports whether the color has a value.
func (c Color) IsSet() bool {
	return c.Kind != ColorUnset
}

// String renders the color the way lipgloss expects it: a palette index
// ("33") or a hex triple ("#0a0b0c"). Unset colors render as "".
func (c Color) String() string {
	switch c.Kind {
	case ColorIndexed:
		return fmt.Sprintf("%d", c.Index)
	case ColorRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	default:
		return ""
	}
}

// Modifier is a set of independent text attributes.
type Modifier uint16

const (
	Bold Modifier = 1 << iota
	Dim
	Italic
	Underline
	SlowBlink
	RapidBlink
	Reverse
	Hidden
	CrossedOut
)

// Has reports whether every flag in m2 is set in m.
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

// Style is the resolved result of a series of SGR codes. It is a value
// type; Apply returns a new Style and never mutates the receiver.
type Style struct {
	Fg        Color
	Bg        Color
	Modifiers Modifier
}

// IsDefault reports whether the style has no colors and no modifiers.
func (s Style) IsDefault() bool {
	return s == Style{}
}

// WithFg returns a copy of s with the foreground set.
func (s Style) WithFg(c Color) Style {
	s.Fg = c
	return s
}

// WithBg returns a copy of s with the background set.
func (s Style) WithBg(c Color) Style {
	s.Bg = c
	return s
}

// Add returns a copy of s with the modifiers added.
func (s Style) Add(m Modifier) Style {
	s.Modifiers |= m
	return s
}

// Remove returns a copy of s with the modifiers removed.
func (s Style) Remove(m Modifier) Style {
	s.Modifiers &^= m
	return s
}

// Resolve folds codes over the default style.
func Resolve(codes []uint8) Style {
	return Style{}.Apply(codes)
}

// Apply folds SGR codes over s from left to right. Unknown codes leave the
// style unchanged. Extended colors (38/48) consume their arguments; missing
// arguments are taken as 0.
func (s Style) Apply(codes []uint8) Style {
	for i := 0; i < len(codes); i++ {
		code := codes[i]
		switch {
		case code == 0:
			s = Style{}
		case code >= 1 && code <= 9:
			s.Modifiers |= modifierFor(code)
		case code == 22:
			s.Modifiers &^= Bold | Dim
		case code == 23:
			s.Modifiers &^= Italic
		case code == 24:
			s.Modifiers &^= Underline
		case code == 25:
			s.Modifiers &^= SlowBlink | RapidBlink
		case code == 27:
			s.Modifiers &^= Reverse
		case code == 28:
			s.Modifiers &^= Hidden
		case code == 29:
			s.Modifiers &^= CrossedOut
		case code >= 30 && code <= 37:
			s.Fg = Indexed(code - 30)
		case code >= 90 && code <= 97:
			s.Fg = Indexed(code - 90 + 8)
		case code == 39:
			s.Fg = Color{}
		case code >= 40 && code <= 47:
			s.Bg = Indexed(code - 40)
		case code >= 100 && code <= 107:
			s.Bg = Indexed(code - 100 + 8)
		case code == 49:
			s.Bg = Color{}
		case code == 38, code == 48:
			c, consumed, ok := extendedColor(codes[i+1:])
			i += consumed
			if !ok {
				continue
			}
			if code == 38 {
				s.Fg = c
			} else {
				s.Bg = c
			}
		}
	}
	return s
}

func modifierFor(code uint8) Modifier {
	return Modifier(1) << (code - 1)
}

// extendedColor parses the arguments following 38 or 48. It returns the
// color, the number of codes consumed and whether a color was selected.
func extendedColor(args []uint8) (Color, int, bool) {
	if len(args) == 0 {
		return Color{}, 0, false
	}
	at := func(i int) uint8 {
		if i < len(args) {
			return args[i]
		}
		return 0
	}
	consumed := func(want int) int {
		return min(want, len(args))
	}

	switch args[0] {
	case 5:
		return Indexed(at(1)), consumed(2), true
	case 2:
		return RGB(at(1), at(2), at(3)), consumed(4), true
	default:
		return Color{}, 1, false
	}
}
