package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"kubedash/internal/ansi"
	"kubedash/internal/tui/layout"
	"kubedash/internal/tui/text"
)

// Cell is one screen cell. A wide rune occupies its cell and marks the
// following cell as a continuation.
type Cell struct {
	Rune  rune
	Style ansi.Style
	cont  bool
}

var blank = Cell{Rune: ' '}

// Canvas is a fixed-size grid of styled cells.
type Canvas struct {
	width, height int
	cells         []Cell
}

// NewCanvas returns a blank canvas. Negative sizes are treated as zero.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{width: width, height: height, cells: make([]Cell, width*height)}
	for i := range c.cells {
		c.cells[i] = blank
	}
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.height }

// Bounds returns the canvas area.
func (c *Canvas) Bounds() layout.Rect {
	return layout.Rect{Width: c.width, Height: c.height}
}

// At returns the cell at (x, y), or a blank cell when out of bounds.
func (c *Canvas) At(x, y int) Cell {
	if !c.inside(x, y) {
		return blank
	}
	return c.cells[y*c.width+x]
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// Set writes r at (x, y) and returns the number of cells it occupies. A
// wide rune that does not fit before limit is replaced by a space.
func (c *Canvas) Set(x, y int, r rune, st ansi.Style) int {
	return c.set(x, y, r, st, c.width)
}

func (c *Canvas) set(x, y int, r rune, st ansi.Style, limit int) int {
	if !c.inside(x, y) || x >= limit {
		return 0
	}
	if r < 0x20 || r == 0x7f {
		r = ' '
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		w = 1
		r = ' '
	}
	if w == 2 && (x+1 >= limit || x+1 >= c.width) {
		r, w = ' ', 1
	}

	c.unlinkWide(x, y)
	c.cells[y*c.width+x] = Cell{Rune: r, Style: st}
	if w == 2 {
		c.unlinkWide(x+1, y)
		c.cells[y*c.width+x+1] = Cell{Style: st, cont: true}
	}
	return w
}

// unlinkWide blanks the other half of a wide rune about to be overwritten.
func (c *Canvas) unlinkWide(x, y int) {
	i := y*c.width + x
	cell := c.cells[i]
	if cell.cont && x > 0 {
		c.cells[i-1] = Cell{Rune: ' ', Style: c.cells[i-1].Style}
	}
	if !cell.cont && x+1 < c.width && c.cells[i+1].cont {
		c.cells[i+1] = Cell{Rune: ' ', Style: cell.Style}
	}
}

// Print writes s starting at (x, y) clipped to maxWidth cells and returns
// the number of cells written.
func (c *Canvas) Print(x, y int, s string, st ansi.Style, maxWidth int) int {
	limit := min(x+max(maxWidth, 0), c.width)
	col := x
	for _, r := range s {
		if col >= limit {
			break
		}
		n := c.set(col, y, r, st, limit)
		if n == 0 {
			break
		}
		col += n
	}
	return col - x
}

// PrintLine writes styled runs starting at (x, y) clipped to maxWidth.
// Runs with the Hidden modifier are drawn as spaces.
func (c *Canvas) PrintLine(x, y int, line text.Line, maxWidth int) int {
	written := 0
	for _, run := range line {
		if written >= maxWidth {
			break
		}
		s := run.Text
		if run.Style.Modifiers.Has(ansi.Hidden) {
			s = strings.Repeat(" ", runewidth.StringWidth(s))
		}
		written += c.Print(x+written, y, s, run.Style, maxWidth-written)
	}
	return written
}

// PrintANSI writes a string that may carry SGR escapes, such as the output
// of a bubbles component, starting at (x, y).
func (c *Canvas) PrintANSI(x, y int, s string, maxWidth int) int {
	line, _ := text.StyleLine(s, ansi.Style{})
	return c.PrintLine(x, y, line, maxWidth)
}

// Fill paints every cell of r with spaces in style st.
func (c *Canvas) Fill(r layout.Rect, st ansi.Style) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if c.inside(x, y) {
				c.unlinkWide(x, y)
				c.cells[y*c.width+x] = Cell{Rune: ' ', Style: st}
			}
		}
	}
}

// Box draws a border around r with title embedded in the top edge.
func (c *Canvas) Box(r layout.Rect, border lipgloss.Border, st ansi.Style, title string, titleStyle ansi.Style) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	top, bottom := r.Y, r.Bottom()-1
	left, right := r.X, r.Right()-1

	for x := left + 1; x < right; x++ {
		c.Print(x, top, border.Top, st, 1)
		c.Print(x, bottom, border.Bottom, st, 1)
	}
	for y := top + 1; y < bottom; y++ {
		c.Print(left, y, border.Left, st, 1)
		c.Print(right, y, border.Right, st, 1)
	}
	c.Print(left, top, border.TopLeft, st, 1)
	c.Print(right, top, border.TopRight, st, 1)
	c.Print(left, bottom, border.BottomLeft, st, 1)
	c.Print(right, bottom, border.BottomRight, st, 1)

	if title == "" || r.Width <= 4 {
		return
	}
	title = xansi.Truncate(" "+title+" ", r.Width-2, "… ")
	c.Print(left+1, top, title, titleStyle, r.Width-2)
}

// Plain returns the canvas content without styling, one line per row with
// trailing spaces trimmed.
func (c *Canvas) Plain() string {
	var sb strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var row strings.Builder
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			if !cell.cont {
				row.WriteRune(cell.Rune)
			}
		}
		sb.WriteString(strings.TrimRight(row.String(), " "))
	}
	return sb.String()
}

// String serializes the canvas into terminal output. Consecutive cells
// with the same style are rendered as one lipgloss segment.
func (c *Canvas) String() string {
	var sb strings.Builder
	var seg strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var cur ansi.Style
		flush := func() {
			if seg.Len() == 0 {
				return
			}
			sb.WriteString(renderSegment(seg.String(), cur))
			seg.Reset()
		}
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			if cell.cont {
				continue
			}
			if cell.Style != cur {
				flush()
				cur = cell.Style
			}
			seg.WriteRune(cell.Rune)
		}
		flush()
	}
	return sb.String()
}
