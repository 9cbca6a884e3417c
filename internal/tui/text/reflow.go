package text

import (
	"strings"
	"unicode/utf8"

	"kubedash/internal/ansi"

	"github.com/mattn/go-runewidth"
)

// Run is a slice of text painted with a single style.
type Run struct {
	Text  string
	Style ansi.Style
}

// Line is one display row made of styled runs.
type Line []Run

// Plain returns the line's text without styling.
func (l Line) Plain() string {
	var b strings.Builder
	for _, r := range l {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Options controls how items are reflowed.
type Options struct {
	// NoWrap keeps every segment on a single row regardless of width.
	NoWrap bool
	// CarryStyle seeds each wrapped continuation row with the style that was
	// open at the end of the previous row of the same segment. When false
	// every row starts from the default style.
	CarryStyle bool
}

const noWrapWidth = 1 << 30

// Wrap splits every item into rows of at most width visible cells. See
// WrapItem.
func Wrap(items []string, width int) []string {
	var out []string
	for _, item := range items {
		out = append(out, WrapItem(item, width)...)
	}
	return out
}

// WrapItem splits item on embedded line breaks and wraps each segment to
// width visible cells. Escape sequences occupy no width and are never split;
// runes are never split. A width below 1 is treated as 1. An empty item
// yields a single empty row.
func WrapItem(item string, width int) []string {
	width = max(width, 1)
	if item == "" {
		return []string{""}
	}
	var out []string
	for _, seg := range splitLines(item) {
		out = append(out, wrapSegment(seg, width)...)
	}
	return out
}

// splitLines splits s on "\n", dropping a trailing "\r" from every segment.
// A single trailing newline does not produce an extra empty segment.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	segs := strings.Split(s, "\n")
	for i, seg := range segs {
		segs[i] = strings.TrimSuffix(seg, "\r")
	}
	return segs
}

// cellWidth is the number of cells a rune advances the wrap counter by.
// Zero-width runes still count as one so that a row never holds more runes
// than its width.
func cellWidth(r rune) int {
	return max(runewidth.RuneWidth(r), 1)
}

func wrapSegment(seg string, width int) []string {
	var out []string
	start, count, pos := 0, 0, 0

	for tok := range ansi.All(seg) {
		if tok.Kind != ansi.Literal {
			pos += len(tok.Text)
			continue
		}
		for i := 0; i < len(tok.Text); {
			r, size := utf8.DecodeRuneInString(tok.Text[i:])
			at := pos + i
			w := cellWidth(r)

			// A wide rune that does not fit moves to the next row.
			if count > 0 && count+w > width {
				out = append(out, seg[start:at])
				start, count = at, 0
			}

			count += w
			i += size
			if count >= width {
				end := pos + i
				out = append(out, seg[start:end])
				start, count = end, 0
			}
		}
		pos += len(tok.Text)
	}

	if start < len(seg) {
		rest := seg[start:]
		if count == 0 && len(out) > 0 {
			// Only escape sequences remain; keep them with the last row.
			out[len(out)-1] += rest
		} else {
			out = append(out, rest)
		}
	}
	if len(out) == 0 {
		out = append(out, "")
	}
	return out
}

// StyleLine converts a row into styled runs, starting from the given style.
// Text before the first SGR sequence forms a run in the start style; every
// SGR sequence opens a new, possibly empty, run in the updated style. Other
// control sequences are not displayable and are dropped. The style in effect
// at the end of the row is returned alongside.
func StyleLine(row string, start ansi.Style) (Line, ansi.Style) {
	var (
		line    Line
		pending strings.Builder
		sawSGR  bool
	)
	style := start

	for tok := range ansi.All(row) {
		switch tok.Kind {
		case ansi.Literal:
			pending.WriteString(tok.Text)
		case ansi.SGR:
			if sawSGR || pending.Len() > 0 {
				line = append(line, Run{Text: pending.String(), Style: style})
			}
			pending.Reset()
			style = style.Apply(tok.Params)
			sawSGR = true
		}
	}

	if sawSGR || pending.Len() > 0 || len(line) == 0 {
		line = append(line, Run{Text: pending.String(), Style: style})
	}
	return line, style
}

// Reflow wraps items to width and converts every row into a Line.
func Reflow(items []string, width int, opts Options) []Line {
	if opts.NoWrap {
		width = noWrapWidth
	}
	width = max(width, 1)

	var lines []Line
	for _, item := range items {
		if item == "" {
			lines = append(lines, Line{{}})
			continue
		}
		for _, seg := range splitLines(item) {
			var style ansi.Style
			for _, row := range wrapSegment(seg, width) {
				line, end := StyleLine(row, style)
				lines = append(lines, line)
				if opts.CarryStyle {
					style = end
				}
			}
		}
	}
	return lines
}
