package layout

// Rect is a rectangular screen area in cells. X and Y are the zero-based
// column and row of the top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// IsEmpty reports whether the rect covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the cell at (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Inner returns r shrunk by margin cells on every side.
func (r Rect) Inner(margin int) Rect {
	inner := Rect{
		X:      r.X + margin,
		Y:      r.Y + margin,
		Width:  r.Width - 2*margin,
		Height: r.Height - 2*margin,
	}
	inner.Width = max(inner.Width, 0)
	inner.Height = max(inner.Height, 0)
	return inner
}

// Centered returns a rect centered in r covering the given percentages of
// its width and height.
func (r Rect) Centered(percentWidth, percentHeight int) Rect {
	w := r.Width * percentWidth / 100
	h := r.Height * percentHeight / 100
	return Rect{
		X:      r.X + (r.Width-w)/2,
		Y:      r.Y + (r.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// Bottom returns the row just below r.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Right returns the column just right of r.
func (r Rect) Right() int {
	return r.X + r.Width
}
