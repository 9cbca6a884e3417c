package text

// BorderOverhead is the number of rows and columns a widget border takes
// from its area.
const BorderOverhead = 2

// Buffer owns the growing collection of display lines of a text widget
// together with its scroll position.
//
// Width and height passed to the buffer are the outer dimensions of the
// widget area; the border overhead is subtracted internally. Until the
// buffer has seen a positive width, lines are kept unwrapped.
type Buffer struct {
	opts   Options
	follow bool

	items  []string
	lines  []Line
	offset int
	rows   int

	width  int
	height int
}

// NewBuffer returns an empty buffer.
func NewBuffer(opts Options) *Buffer {
	return &Buffer{opts: opts}
}

// SetFollow makes appends keep the view at the bottom when it was at the
// bottom before the append.
func (b *Buffer) SetFollow(follow bool) {
	b.follow = follow
}

// Follow reports whether follow mode is enabled.
func (b *Buffer) Follow() bool {
	return b.follow
}

// AppendItems wraps only the new items and appends them.
func (b *Buffer) AppendItems(items []string, width, height int) {
	wasAtBottom := b.IsAtBottom()

	b.width, b.height = width, height
	b.items = append(b.items, items...)
	b.lines = append(b.lines, Reflow(items, b.innerWidth(), b.opts)...)
	b.updateRows()

	if b.follow && wasAtBottom {
		b.ScrollBottom()
	}
}

// ReplaceItems replaces the content with items, re-wrapping at the last
// known width, and scrolls to the top, whether or not follow is on.
func (b *Buffer) ReplaceItems(items []string) {
	b.items = append([]string(nil), items...)
	b.lines = Reflow(b.items, b.innerWidth(), b.opts)
	b.offset = 0
	b.updateRows()
}

// Resize records new outer dimensions. All items are re-wrapped when the
// width changed.
func (b *Buffer) Resize(width, height int) {
	if width != b.width {
		b.width = width
		b.lines = Reflow(b.items, b.innerWidth(), b.opts)
	}
	b.height = height
	wasAtBottom := b.IsAtBottom()
	b.updateRows()
	if b.follow && wasAtBottom {
		b.ScrollBottom()
	}
}

// Clear resets the buffer to empty, keeping its dimensions and options.
func (b *Buffer) Clear() {
	b.items = nil
	b.lines = nil
	b.offset = 0
	b.rows = 0
}

// ScrollTop moves to the first line.
func (b *Buffer) ScrollTop() {
	b.offset = 0
}

// ScrollBottom moves to the last scroll position.
func (b *Buffer) ScrollBottom() {
	b.offset = b.rows
}

// ScrollDown moves the view n lines down, clamped to the row count.
func (b *Buffer) ScrollDown(n int) {
	b.offset = clamp(b.offset+n, 0, b.rows)
}

// ScrollUp moves the view n lines up, clamped at zero.
func (b *Buffer) ScrollUp(n int) {
	b.offset = clamp(b.offset-n, 0, b.rows)
}

// IsAtBottom reports whether the view shows the last line.
func (b *Buffer) IsAtBottom() bool {
	return b.offset == b.rows
}

// Offset is the index of the first visible line.
func (b *Buffer) Offset() int {
	return b.offset
}

// Rows is the number of scroll positions past the first page.
func (b *Buffer) Rows() int {
	return b.rows
}

// Len is the number of display lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Items returns the raw items in insertion order.
func (b *Buffer) Items() []string {
	return b.items
}

// Lines returns all display lines.
func (b *Buffer) Lines() []Line {
	return b.lines
}

// Visible returns the lines of a viewport of the given height.
func (b *Buffer) Visible(height int) []Line {
	start := min(b.offset, len(b.lines))
	end := min(start+max(height, 0), len(b.lines))
	return b.lines[start:end]
}

func (b *Buffer) innerWidth() int {
	if b.width <= 0 {
		return noWrapWidth
	}
	return max(b.width-BorderOverhead, 1)
}

func (b *Buffer) updateRows() {
	visible := max(b.height-BorderOverhead, 0)
	b.rows = max(len(b.lines)-visible, 0)
	b.offset = clamp(b.offset, 0, b.rows)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
